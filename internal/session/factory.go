package session

import (
	"context"

	"github.com/GregMSThompson/widget-dashboard/internal/dto"
	"github.com/GregMSThompson/widget-dashboard/internal/metrics"
	"github.com/GregMSThompson/widget-dashboard/internal/presentation"
	"github.com/GregMSThompson/widget-dashboard/internal/registry"
	"github.com/GregMSThompson/widget-dashboard/internal/services"
	"github.com/GregMSThompson/widget-dashboard/internal/store"
)

type profileSource interface {
	Snapshot(ctx context.Context, uid string) dto.DashboardData
}

// Factory builds an initialized dashboard for one owner.
type Factory struct {
	Store     *store.SettingsStore
	Registry  *registry.Registry
	Profiles  profileSource
	Metrics   *metrics.Metrics
	Key       string
	Reconcile bool
}

// KeyFor returns the storage key of uid's dashboard. The empty uid is the
// local single-owner dashboard.
func (f Factory) KeyFor(uid string) string {
	if uid == "" {
		return f.Key
	}
	return uid + ":" + f.Key
}

// New loads uid's dashboard from the store and wraps it in an adapter.
func (f Factory) New(ctx context.Context, uid string) *presentation.Adapter {
	engine := services.NewDashboardService(f.Store, f.Registry, services.DashboardConfig{
		Key:       f.KeyFor(uid),
		Reconcile: f.Reconcile,
	}, f.Metrics)
	engine.Initialize(ctx)

	data := func(ctx context.Context) dto.DashboardData {
		if f.Profiles == nil {
			return registry.StaticData()
		}
		return f.Profiles.Snapshot(ctx, uid)
	}
	return presentation.NewAdapter(engine, f.Registry, data)
}
