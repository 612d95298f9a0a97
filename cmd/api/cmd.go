package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/GregMSThompson/widget-dashboard/internal/bootstrap"
	"github.com/GregMSThompson/widget-dashboard/internal/config"
	"github.com/GregMSThompson/widget-dashboard/internal/handlers"
	"github.com/GregMSThompson/widget-dashboard/internal/middleware"
	"github.com/GregMSThompson/widget-dashboard/internal/response"
	"github.com/GregMSThompson/widget-dashboard/internal/router"
	"github.com/GregMSThompson/widget-dashboard/internal/session"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg, nil)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// sessions
	pool, err := session.NewPool(cfg.SessionCacheSize, bs.Factory.New, bs.Log)
	exitOnError("session cache init failed", err, bs.Log)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Catalog = bs.Widgets
	deps.Sessions = func(ctx context.Context, uid string) handlers.DashboardSession {
		return pool.Get(ctx, uid)
	}

	opts := router.Options{Gatherer: bs.Prom}
	if bs.Firebase != nil {
		opts.Auth = middleware.NewMiddleware(bs.Firebase)
	}

	// router
	r := router.NewRouter(deps, opts)
	bs.Log.Info("listening", "addr", cfg.HTTPAddr)
	err = http.ListenAndServe(cfg.HTTPAddr, r)
	exitOnError("server start failed", err, bs.Log)
}
