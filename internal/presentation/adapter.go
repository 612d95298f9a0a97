package presentation

import (
	"context"
	"sync"

	"github.com/GregMSThompson/widget-dashboard/internal/dto"
	"github.com/GregMSThompson/widget-dashboard/internal/errs"
	"github.com/GregMSThompson/widget-dashboard/internal/models"
	"github.com/GregMSThompson/widget-dashboard/pkg/helpers"
)

// engine is the configuration engine surface the adapter reads and mutates.
type engine interface {
	VisibleEntries() []models.WidgetEntry
	AllEntries() []models.WidgetEntry
	Entry(id models.WidgetID) (models.WidgetEntry, bool)
	ToggleVisibility(ctx context.Context, id models.WidgetID)
	PatchSettings(ctx context.Context, id models.WidgetID, patch models.Patch) error
	MoveWidget(ctx context.Context, index int, direction models.Direction)
	Reset(ctx context.Context)
}

type renderer interface {
	Render(id models.WidgetID, settings models.Settings, data dto.DashboardData) dto.WidgetView
	RenderConfigPanel(entry models.WidgetEntry, update func(models.Patch) error) dto.ConfigPanel
}

// DataFunc supplies the data snapshot widget bodies render from.
type DataFunc func(ctx context.Context) dto.DashboardData

// Adapter turns engine state into the dashboard and management views and
// routes user actions back into the engine. The only state it owns is which
// settings panel is expanded, and that is never persisted.
type Adapter struct {
	mu       sync.Mutex
	engine   engine
	registry renderer
	data     DataFunc
	expanded models.WidgetID
}

func NewAdapter(engine engine, registry renderer, data DataFunc) *Adapter {
	return &Adapter{
		engine:   engine,
		registry: registry,
		data:     data,
	}
}

// Dashboard renders every visible entry in display order.
func (a *Adapter) Dashboard(ctx context.Context) dto.DashboardView {
	data := a.data(ctx)
	entries := a.engine.VisibleEntries()
	view := dto.DashboardView{Widgets: make([]dto.WidgetView, 0, len(entries))}
	for _, e := range entries {
		view.Widgets = append(view.Widgets, a.registry.Render(e.ID, e.Settings, data))
	}
	return view
}

// Manage renders the management list over every entry, visible or hidden.
// The expanded entry carries its settings panel.
func (a *Adapter) Manage(ctx context.Context) dto.ManageView {
	expanded := a.Expanded()
	entries := a.engine.AllEntries()

	view := dto.ManageView{
		Rows:     make([]dto.ManageRow, 0, len(entries)),
		Expanded: expanded,
	}
	for i, e := range entries {
		row := dto.ManageRow{
			Index:       i,
			ID:          e.ID,
			Label:       e.Label,
			Visible:     e.Visible,
			CanMoveUp:   i > 0,
			CanMoveDown: i < len(entries)-1,
			Expanded:    e.ID == expanded,
		}
		if row.Expanded {
			row.Panel = helpers.Ptr(a.panel(ctx, e))
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}

// ToggleExpanded opens the settings panel of id, closing any other, or
// closes it when it is already open. Ids that are not configured are ignored.
func (a *Adapter) ToggleExpanded(id models.WidgetID) {
	if _, ok := a.engine.Entry(id); !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.expanded == id {
		a.expanded = ""
		return
	}
	a.expanded = id
}

func (a *Adapter) Expanded() models.WidgetID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.expanded
}

// --- Mutations ---

func (a *Adapter) ToggleVisibility(ctx context.Context, id models.WidgetID) {
	a.engine.ToggleVisibility(ctx, id)
}

func (a *Adapter) PatchSettings(ctx context.Context, id models.WidgetID, patch models.Patch) error {
	return a.engine.PatchSettings(ctx, id, patch)
}

func (a *Adapter) MoveWidget(ctx context.Context, index int, direction models.Direction) {
	a.engine.MoveWidget(ctx, index, direction)
}

func (a *Adapter) Reset(ctx context.Context) {
	a.mu.Lock()
	a.expanded = ""
	a.mu.Unlock()
	a.engine.Reset(ctx)
}

// ActivateControl activates control i of the expanded settings panel.
func (a *Adapter) ActivateControl(ctx context.Context, i int) error {
	panel, err := a.expandedPanel(ctx)
	if err != nil {
		return err
	}
	return panel.Activate(i)
}

// SetControlValue sets range control i of the expanded settings panel to v.
func (a *Adapter) SetControlValue(ctx context.Context, i, v int) error {
	panel, err := a.expandedPanel(ctx)
	if err != nil {
		return err
	}
	return panel.SetValue(i, v)
}

func (a *Adapter) expandedPanel(ctx context.Context) (dto.ConfigPanel, error) {
	id := a.Expanded()
	if id == "" {
		return dto.ConfigPanel{}, errs.NewValidationError("no settings panel is open")
	}
	e, ok := a.engine.Entry(id)
	if !ok {
		return dto.ConfigPanel{}, errs.NewValidationError("no settings panel is open")
	}
	return a.panel(ctx, e), nil
}

func (a *Adapter) panel(ctx context.Context, e models.WidgetEntry) dto.ConfigPanel {
	return a.registry.RenderConfigPanel(e, func(p models.Patch) error {
		return a.engine.PatchSettings(ctx, e.ID, p)
	})
}
