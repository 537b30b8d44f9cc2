package router

import (
	"database/sql"
	"encoding/json"
	"net/http"

	_ "pet-welfare-dashboard/docs"
	mem "pet-welfare-dashboard/internal/adapters/storage/memory"
	pg "pet-welfare-dashboard/internal/adapters/storage/postgres"
	"pet-welfare-dashboard/internal/dashboard"
	"pet-welfare-dashboard/internal/domain/animals"
	"pet-welfare-dashboard/internal/middleware"
	"pet-welfare-dashboard/internal/platform/logger"
	"pet-welfare-dashboard/internal/realtime"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Dashboard *dashboard.Orchestrator

	Hub      *realtime.Hub       // puede ser nil (sin /ws)
	Gatherer prometheus.Gatherer // puede ser nil (sin /metrics)
	Log      logger.Logger
}

// NewRouter arma la API del dashboard que consume el navegador.
func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Recover(log))

	r.Get("/health", health)

	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	o := opts.Dashboard
	dashboard.RegisterRoutes(r, o)

	if opts.Hub != nil {
		r.Get("/ws", realtime.Handler(opts.Hub, func() ([]byte, error) {
			return json.Marshal(o.View())
		}))
	}

	return r
}

type BackendOptions struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory con Seed.
	DB   *sql.DB
	Seed mem.Seed

	Log logger.Logger
}

// NewBackendRouter sirve los seis endpoints remotos que consume el dashboard.
func NewBackendRouter(opts BackendOptions) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Recover(log))

	r.Get("/health", health)

	var repo animals.Repository
	if opts.DB != nil {
		repo = pg.NewAnimalsRepo(opts.DB)
	} else {
		repo = mem.NewAnimalsRepo(opts.Seed)
	}

	animals.RegisterRoutes(r, animals.NewService(repo))

	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
