package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-welfare-dashboard/internal/adapters/storage/memory"
	pg "pet-welfare-dashboard/internal/adapters/storage/postgres"
	"pet-welfare-dashboard/internal/platform/config"
	"pet-welfare-dashboard/internal/platform/logger"
	"pet-welfare-dashboard/internal/router"
)

// Backend de referencia para desarrollo: sirve los endpoints que consume el dashboard.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("invalid config", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    "welfare-api",
	})

	addr := ":8081"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		if err := pg.EnsureSchema(ctx, db); err != nil {
			log.Error("schema setup failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}

	r := router.NewBackendRouter(router.BackendOptions{
		DB:   db,
		Seed: memory.DevSeed(),
		Log:  log,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting welfare api", map[string]any{"addr": addr, "postgres": db != nil})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
