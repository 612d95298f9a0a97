package session

import (
	"context"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/GregMSThompson/widget-dashboard/internal/presentation"
	"github.com/GregMSThompson/widget-dashboard/pkg/logger"
)

// NewFunc builds the dashboard of one owner.
type NewFunc func(ctx context.Context, uid string) *presentation.Adapter

// Pool caches one dashboard per owner. Evicted dashboards lose nothing: their
// state was persisted on every change and is reloaded on next use.
//
// A request still holding an evicted dashboard can save it once more after a
// fresh copy has been loaded. Every save is a full snapshot, so the owner's
// stored layout is whichever of the two saved last.
type Pool struct {
	cache *lru.Cache[string, *presentation.Adapter]
	loads singleflight.Group
	build NewFunc
}

func NewPool(size int, build NewFunc, log *slog.Logger) (*Pool, error) {
	if log == nil {
		log = logger.NewDiscard()
	}
	cache, err := lru.NewWithEvict(size, func(uid string, _ *presentation.Adapter) {
		log.Debug("dashboard evicted from session cache", "uid", uid)
	})
	if err != nil {
		return nil, err
	}
	return &Pool{cache: cache, build: build}, nil
}

// Get returns uid's dashboard, loading it on first use. Concurrent first
// requests for the same owner share one load; other owners are not held up.
func (p *Pool) Get(ctx context.Context, uid string) *presentation.Adapter {
	if a, ok := p.cache.Get(uid); ok {
		return a
	}
	v, _, _ := p.loads.Do(uid, func() (any, error) {
		if a, ok := p.cache.Get(uid); ok {
			return a, nil
		}
		logger.FromContext(ctx).Debug("loading dashboard into session cache")
		a := p.build(ctx, uid)
		p.cache.Add(uid, a)
		return a, nil
	})
	return v.(*presentation.Adapter)
}

func (p *Pool) Len() int {
	return p.cache.Len()
}
