package store

import (
	"context"
	"errors"

	"github.com/tidwall/gjson"

	"github.com/GregMSThompson/widget-dashboard/internal/errs"
	"github.com/GregMSThompson/widget-dashboard/internal/metrics"
	"github.com/GregMSThompson/widget-dashboard/pkg/logger"
)

// SettingsStore is the soft persistence boundary for dashboard state. Load
// reports absent instead of failing and Save never reports failure; both are
// logged and counted.
type SettingsStore struct {
	backend   Backend
	namespace string
	metrics   *metrics.Metrics
}

func NewSettingsStore(backend Backend, namespace string, m *metrics.Metrics) *SettingsStore {
	return &SettingsStore{
		backend:   backend,
		namespace: namespace,
		metrics:   m,
	}
}

// Key returns the namespaced storage key for key.
func (s *SettingsStore) Key(key string) string {
	if s.namespace == "" {
		return key
	}
	return s.namespace + ":" + key
}

// Load returns the blob stored under key. The second result is false when the
// key is missing, unreadable or does not hold valid JSON.
func (s *SettingsStore) Load(ctx context.Context, key string) ([]byte, bool) {
	log := logger.FromContext(ctx).With("backend", s.backend.Name(), "key", s.Key(key))

	data, err := s.backend.Get(ctx, s.Key(key))
	if err != nil {
		var nf *errs.NotFoundError
		if errors.As(err, &nf) {
			log.Debug("no persisted settings")
			s.metrics.StoreOp(s.backend.Name(), "load", metrics.OutcomeAbsent)
			return nil, false
		}
		log.Warn("failed to load settings", "error", err)
		s.metrics.StoreOp(s.backend.Name(), "load", metrics.OutcomeError)
		return nil, false
	}

	if !gjson.ValidBytes(data) {
		log.Warn("persisted settings are not valid JSON", "bytes", len(data))
		s.metrics.StoreOp(s.backend.Name(), "load", metrics.OutcomeMalformed)
		return nil, false
	}

	s.metrics.StoreOp(s.backend.Name(), "load", metrics.OutcomeOK)
	return data, true
}

// Save writes value under key. Failures are logged and counted; the caller's
// in-memory state stays authoritative and the next save rewrites it in full.
func (s *SettingsStore) Save(ctx context.Context, key string, value []byte) {
	if err := s.backend.Put(ctx, s.Key(key), value); err != nil {
		logger.FromContext(ctx).Error("failed to save settings",
			"backend", s.backend.Name(),
			"key", s.Key(key),
			"error", err,
		)
		s.metrics.StoreOp(s.backend.Name(), "save", metrics.OutcomeError)
		return
	}
	s.metrics.StoreOp(s.backend.Name(), "save", metrics.OutcomeOK)
}
