package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/GregMSThompson/widget-dashboard/internal/errs"
	"github.com/GregMSThompson/widget-dashboard/internal/metrics"
	"github.com/GregMSThompson/widget-dashboard/internal/models"
	"github.com/GregMSThompson/widget-dashboard/pkg/logger"
)

// Mutation operation names, as reported to metrics and logs.
const (
	OpToggle = "toggle"
	OpPatch  = "patch"
	OpMove   = "move"
	OpReset  = "reset"
)

// settingsStore is the soft persistence boundary the engine owns.
type settingsStore interface {
	Load(ctx context.Context, key string) ([]byte, bool)
	Save(ctx context.Context, key string, value []byte)
}

// widgetRegistry supplies the canonical default entries.
type widgetRegistry interface {
	Defaults() []models.WidgetEntry
}

type DashboardConfig struct {
	// Key is the storage key of this dashboard, before namespacing.
	Key string
	// Reconcile appends default entries for known ids missing from
	// persisted state.
	Reconcile bool
}

// dashboardService is the widget configuration engine. It owns the ordered
// entry sequence and writes it back to the store after every change.
type dashboardService struct {
	mu       sync.Mutex
	store    settingsStore
	registry widgetRegistry
	cfg      DashboardConfig
	metrics  *metrics.Metrics
	entries  []models.WidgetEntry
}

func NewDashboardService(store settingsStore, registry widgetRegistry, cfg DashboardConfig, m *metrics.Metrics) *dashboardService {
	return &dashboardService{
		store:    store,
		registry: registry,
		cfg:      cfg,
		metrics:  m,
		entries:  registry.Defaults(),
	}
}

// --- Lifecycle ---

// Initialize adopts the persisted sequence when it is present and well
// formed, and the registry defaults otherwise. Loaded state is trusted as-is
// unless reconciliation is enabled.
func (s *dashboardService) Initialize(ctx context.Context) {
	log := logger.FromContext(ctx).With("key", s.cfg.Key)

	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.store.Load(ctx, s.cfg.Key)
	if !ok {
		log.Info("no persisted dashboard, using defaults")
		s.entries = s.registry.Defaults()
		s.metrics.Initialized("defaults")
		return
	}

	entries, recovered, err := parseSnapshot(data, s.registry.Defaults())
	if err != nil {
		log.Warn("persisted dashboard is malformed, using defaults", "error", err)
		s.entries = s.registry.Defaults()
		s.metrics.Initialized("defaults")
		return
	}
	for _, id := range recovered {
		log.Warn("persisted widget settings are malformed, using defaults for that widget", "widget_id", id)
	}

	if s.cfg.Reconcile {
		var added int
		entries, added = reconcile(entries, s.registry.Defaults())
		if added > 0 {
			log.Info("reconciled dashboard with registry", "added", added)
		}
	}

	s.entries = entries
	s.metrics.Initialized("persisted")
	log.Debug("dashboard loaded", "entries", len(entries))
}

// --- Mutations ---

// ToggleVisibility flips the visible flag of id. Absent ids are a no-op.
func (s *dashboardService) ToggleVisibility(ctx context.Context, id models.WidgetID) {
	log := logger.FromContext(ctx).With("widget_id", id)

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		log.Debug("toggle ignored, widget not configured")
		s.metrics.Mutation(OpToggle, metrics.OutcomeNoop)
		return
	}

	s.entries[i].Visible = !s.entries[i].Visible
	s.persist(ctx)
	s.metrics.Mutation(OpToggle, metrics.OutcomeApplied)
	log.Debug("widget visibility toggled", "visible", s.entries[i].Visible)
}

// PatchSettings merges patch into the settings of id. A patch that fails to
// merge or leaves the settings invalid is rejected with a ValidationError
// and the prior settings are kept. Absent ids are a no-op.
func (s *dashboardService) PatchSettings(ctx context.Context, id models.WidgetID, patch models.Patch) error {
	log := logger.FromContext(ctx).With("widget_id", id)

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		log.Debug("patch ignored, widget not configured")
		s.metrics.Mutation(OpPatch, metrics.OutcomeNoop)
		return nil
	}

	merged, err := models.MergeSettings(s.entries[i].Settings, patch)
	if err != nil {
		log.Info("settings patch rejected", "error", err)
		s.metrics.Mutation(OpPatch, metrics.OutcomeRejected)
		return errs.NewValidationError(fmt.Sprintf("invalid settings for %s: %v", id, err))
	}
	if err := validateSettings(s.entries[i].Settings, merged); err != nil {
		log.Info("settings patch rejected", "error", err)
		s.metrics.Mutation(OpPatch, metrics.OutcomeRejected)
		return err
	}

	s.entries[i].Settings = merged
	s.persist(ctx)
	s.metrics.Mutation(OpPatch, metrics.OutcomeApplied)
	log.Debug("widget settings updated")
	return nil
}

// MoveWidget swaps the entry at index with its neighbour in direction. Moves
// off either end of the sequence are a no-op.
func (s *dashboardService) MoveWidget(ctx context.Context, index int, direction models.Direction) {
	log := logger.FromContext(ctx).With("index", index, "direction", direction)

	s.mu.Lock()
	defer s.mu.Unlock()

	target := -1
	switch direction {
	case models.DirectionUp:
		target = index - 1
	case models.DirectionDown:
		target = index + 1
	}
	if index < 0 || index >= len(s.entries) || target < 0 || target >= len(s.entries) {
		log.Debug("move ignored, out of bounds")
		s.metrics.Mutation(OpMove, metrics.OutcomeNoop)
		return
	}

	s.entries[index], s.entries[target] = s.entries[target], s.entries[index]
	s.persist(ctx)
	s.metrics.Mutation(OpMove, metrics.OutcomeApplied)
	log.Debug("widget moved", "widget_id", s.entries[target].ID)
}

// Reset replaces the sequence with the registry defaults.
func (s *dashboardService) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = s.registry.Defaults()
	s.persist(ctx)
	s.metrics.Mutation(OpReset, metrics.OutcomeApplied)
	logger.FromContext(ctx).Info("dashboard reset to defaults", "key", s.cfg.Key)
}

// --- Queries ---

// VisibleEntries returns copies of the visible entries in display order.
func (s *dashboardService) VisibleEntries() []models.WidgetEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.WidgetEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Visible {
			out = append(out, e.Clone())
		}
	}
	return out
}

// AllEntries returns a copy of the full sequence.
func (s *dashboardService) AllEntries() []models.WidgetEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneEntries(s.entries)
}

// Entry returns a copy of the entry for id.
func (s *dashboardService) Entry(id models.WidgetID) (models.WidgetEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.WidgetEntry{}, false
	}
	return s.entries[i].Clone(), true
}

// --- Helpers ---

func (s *dashboardService) indexOf(id models.WidgetID) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with mu held.
func (s *dashboardService) persist(ctx context.Context) {
	data, err := json.Marshal(s.entries)
	if err != nil {
		logger.FromContext(ctx).Error("failed to encode dashboard", "error", err)
		return
	}
	s.store.Save(ctx, s.cfg.Key, data)
}
