package handlers

import (
	"context"
	"log/slog"

	"github.com/GregMSThompson/widget-dashboard/internal/dto"
	"github.com/GregMSThompson/widget-dashboard/internal/models"
	"github.com/GregMSThompson/widget-dashboard/internal/response"
)

// DashboardSession is one owner's dashboard as the HTTP surface drives it.
type DashboardSession interface {
	Dashboard(ctx context.Context) dto.DashboardView
	Manage(ctx context.Context) dto.ManageView
	ToggleVisibility(ctx context.Context, id models.WidgetID)
	ToggleExpanded(id models.WidgetID)
	PatchSettings(ctx context.Context, id models.WidgetID, patch models.Patch) error
	MoveWidget(ctx context.Context, index int, direction models.Direction)
	Reset(ctx context.Context)
}

// SessionSource returns the dashboard of uid.
type SessionSource func(ctx context.Context, uid string) DashboardSession

type widgetCatalog interface {
	Catalog() []dto.WidgetTypeEntry
}

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Sessions        SessionSource
	Catalog         widgetCatalog
}
