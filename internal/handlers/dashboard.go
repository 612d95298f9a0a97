package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/widget-dashboard/internal/dto"
	"github.com/GregMSThompson/widget-dashboard/internal/errs"
	"github.com/GregMSThompson/widget-dashboard/internal/middleware"
	"github.com/GregMSThompson/widget-dashboard/internal/models"
	"github.com/GregMSThompson/widget-dashboard/internal/response"
)

type dashboardHandlers struct {
	ResponseHandler response.ResponseHandler
	Sessions        SessionSource
	Catalog         widgetCatalog
}

func NewDashboardHandlers(deps *Deps) *dashboardHandlers {
	return &dashboardHandlers{
		ResponseHandler: deps.ResponseHandler,
		Sessions:        deps.Sessions,
		Catalog:         deps.Catalog,
	}
}

func (h *dashboardHandlers) DashboardRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetDashboard)
	r.Get("/widgets", h.ListWidgets)
	r.Post("/widgets/move", h.MoveWidget) // must be before /{widgetId}
	r.Post("/widgets/reset", h.ResetDashboard)
	r.Post("/widgets/{widgetId}/toggle", h.ToggleWidget)
	r.Post("/widgets/{widgetId}/expand", h.ExpandWidget)
	r.Patch("/widgets/{widgetId}/settings", h.PatchSettings)
	r.Get("/widget-types", h.GetWidgetTypes)
	return r
}

func (h *dashboardHandlers) session(r *http.Request) DashboardSession {
	return h.Sessions(r.Context(), middleware.UID(r.Context()))
}

func widgetID(r *http.Request) models.WidgetID {
	return models.WidgetID(chi.URLParam(r, "widgetId"))
}

func (h *dashboardHandlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	view := h.session(r).Dashboard(r.Context())
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *dashboardHandlers) ListWidgets(w http.ResponseWriter, r *http.Request) {
	view := h.session(r).Manage(r.Context())
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *dashboardHandlers) ToggleWidget(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	s.ToggleVisibility(r.Context(), widgetID(r))
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, s.Manage(r.Context()))
}

func (h *dashboardHandlers) ExpandWidget(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	s.ToggleExpanded(widgetID(r))
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, s.Manage(r.Context()))
}

func (h *dashboardHandlers) PatchSettings(w http.ResponseWriter, r *http.Request) {
	var req dto.PatchSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	if req.Settings == nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("settings is required"))
		return
	}
	s := h.session(r)
	if err := s.PatchSettings(r.Context(), widgetID(r), req.Settings); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, s.Manage(r.Context()))
}

func (h *dashboardHandlers) MoveWidget(w http.ResponseWriter, r *http.Request) {
	var req dto.MoveWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	direction, ok := models.ParseDirection(req.Direction)
	if !ok {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError(`direction must be "up" or "down"`))
		return
	}
	s := h.session(r)
	s.MoveWidget(r.Context(), req.Index, direction)
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, s.Manage(r.Context()))
}

func (h *dashboardHandlers) ResetDashboard(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	s.Reset(r.Context())
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, s.Manage(r.Context()))
}

// GetWidgetTypes returns the catalog of widget kinds with their defaults and
// accepted settings values.
func (h *dashboardHandlers) GetWidgetTypes(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.Catalog.Catalog())
}
