package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-welfare-dashboard/internal/adapters/natsbus"
	"pet-welfare-dashboard/internal/adapters/welfareapi"
	"pet-welfare-dashboard/internal/dashboard"
	"pet-welfare-dashboard/internal/mutation"
	"pet-welfare-dashboard/internal/platform/config"
	"pet-welfare-dashboard/internal/platform/httpclient"
	"pet-welfare-dashboard/internal/platform/logger"
	"pet-welfare-dashboard/internal/platform/metrics"
	"pet-welfare-dashboard/internal/realtime"
	"pet-welfare-dashboard/internal/router"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// @title Pet Welfare Dashboard API
// @version 1.0
// @description Backend-for-frontend del dashboard de bienestar animal.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("invalid config", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	gw, err := httpclient.NewWithBaseURL(cfg.WelfareAPI.BaseURL, cfg.WelfareAPI.Timeout)
	if err != nil {
		log.Error("invalid welfare api base url", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	gw.Log = log.With(map[string]any{"component": "gateway"})
	gw.Metrics = m

	origin := uuid.NewString()
	opts := dashboard.Options{
		Log:        log,
		Metrics:    m,
		StaleGuard: cfg.StaleGuard,
		Origin:     origin,
	}

	// NATS es opcional: sin URL cada instancia solo ve sus propias mutaciones.
	var bus *natsbus.Bus
	if cfg.NATS.URL != "" {
		bus, err = natsbus.Connect(natsbus.Config{
			URL:     cfg.NATS.URL,
			Subject: cfg.NATS.Subject,
			Origin:  origin,
		}, log.With(map[string]any{"component": "nats"}))
		if err != nil {
			log.Error("nats connect failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer bus.Close()
		opts.Notifier = bus
	}

	o := dashboard.New(welfareapi.NewClient(gw), opts)

	if bus != nil {
		if _, err := bus.Subscribe(func(ev mutation.Event) {
			if err := o.HandleRemoteMutation(ctx, ev); err != nil {
				log.Warn("remote mutation reload", map[string]any{"error": err.Error()})
			}
		}); err != nil {
			log.Error("nats subscribe failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}

	hub := realtime.NewHub(log.With(map[string]any{"component": "ws"}))
	go hub.Run(ctx)
	o.OnChange(func() {
		data, err := json.Marshal(o.View())
		if err != nil {
			return
		}
		hub.Broadcast(data)
	})

	// los errores de carga quedan en cada vista; no impiden arrancar
	if err := o.Mount(ctx); err != nil {
		log.Warn("initial mount interrupted", map[string]any{"error": err.Error()})
	}

	r := router.NewRouter(router.Options{
		Dashboard: o,
		Hub:       hub,
		Gatherer:  reg,
		Log:       log,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.WelfareAPI.Timeout + 5*time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting dashboard server", map[string]any{
		"addr":        cfg.Addr,
		"welfare_api": cfg.WelfareAPI.BaseURL,
		"stale_guard": cfg.StaleGuard,
	})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
