package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GregMSThompson/widget-dashboard/internal/handlers"
	"github.com/GregMSThompson/widget-dashboard/internal/middleware"
)

// Options selects how dashboard routes identify their owner.
type Options struct {
	// Auth verifies Firebase ID tokens. When nil every request is served
	// as LocalUID.
	Auth     *middleware.Middleware
	LocalUID string
	Gatherer prometheus.Gatherer
}

func NewRouter(deps *handlers.Deps, opts Options) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	dh := handlers.NewDashboardHandlers(deps)
	r.Group(func(r chi.Router) {
		if opts.Auth != nil {
			r.Use(opts.Auth.FirebaseAuth)
		} else {
			r.Use(middleware.StaticUID(opts.LocalUID))
		}
		r.Mount("/dashboard", dh.DashboardRoutes())
	})
	return r
}
