package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/GregMSThompson/widget-dashboard/internal/config"
	"github.com/GregMSThompson/widget-dashboard/internal/metrics"
	"github.com/GregMSThompson/widget-dashboard/internal/registry"
	"github.com/GregMSThompson/widget-dashboard/internal/services"
	"github.com/GregMSThompson/widget-dashboard/internal/session"
	"github.com/GregMSThompson/widget-dashboard/internal/store"
	"github.com/GregMSThompson/widget-dashboard/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Prom      *prometheus.Registry
	Metrics   *metrics.Metrics
	Firestore *firestore.Client
	Firebase  *auth.Client
	Redis     *redis.Client
	Widgets   *registry.Registry
	Settings  *store.SettingsStore
	Factory   session.Factory

	closers []func() error
}

// Run wires the storage backend, metrics and dashboard factory selected by
// cfg. When log is nil the Cloud Run stdout logger is used.
func Run(cfg *config.Config, log *slog.Logger) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	if log == nil {
		log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	}
	bs.Log = log
	applicationCtx = logger.ToContext(applicationCtx, log)

	bs.Prom = prometheus.NewRegistry()
	bs.Prom.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	bs.Metrics = metrics.MustNewMetrics(bs.Prom)
	bs.Widgets = registry.New()

	backend, err := bs.initBackend(applicationCtx, cfg)
	if err != nil {
		return bs, err
	}
	bs.Settings = store.NewSettingsStore(backend, cfg.StoreNamespace, bs.Metrics)

	if cfg.AuthEnabled {
		bs.Firebase, err = InitFirebase(applicationCtx)
		if err != nil {
			return bs, fmt.Errorf("init firebase: %w", err)
		}
	}

	// Owner profiles live in Firestore when it is the configured backend.
	profiles := services.NewProfileService(nil, registry.StaticData)
	if bs.Firestore != nil {
		profiles = services.NewProfileService(store.NewUserStore(bs.Firestore), registry.StaticData)
	}

	bs.Factory = session.Factory{
		Store:     bs.Settings,
		Registry:  bs.Widgets,
		Profiles:  profiles,
		Metrics:   bs.Metrics,
		Key:       cfg.StoreKey,
		Reconcile: cfg.Reconcile,
	}

	log.Info("bootstrap complete",
		"backend", backend.Name(),
		"namespace", cfg.StoreNamespace,
		"auth", cfg.AuthEnabled,
		"reconcile", cfg.Reconcile,
	)
	return bs, nil
}

func (bs *Bootstrap) initBackend(ctx context.Context, cfg *config.Config) (store.Backend, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return store.NewMemoryBackend(), nil

	case config.BackendRedis:
		client, err := InitRedis(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("init redis: %w", err)
		}
		bs.Redis = client
		bs.closers = append(bs.closers, client.Close)
		return store.NewRedisBackend(client), nil

	case config.BackendFirestore:
		client, err := InitFirestore(ctx, cfg.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("init firestore: %w", err)
		}
		bs.Firestore = client
		bs.closers = append(bs.closers, client.Close)
		return store.NewFirestoreBackend(client), nil

	default:
		return store.NewFileBackend(cfg.StoreDir)
	}
}

// Close releases every client Run opened.
func (bs *Bootstrap) Close() error {
	var errList []error
	for _, c := range bs.closers {
		if err := c(); err != nil {
			errList = append(errList, err)
		}
	}
	bs.closers = nil
	return errors.Join(errList...)
}
