package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/GregMSThompson/widget-dashboard/internal/dto"
	"github.com/GregMSThompson/widget-dashboard/internal/handlers"
	"github.com/GregMSThompson/widget-dashboard/internal/metrics"
	"github.com/GregMSThompson/widget-dashboard/internal/registry"
	"github.com/GregMSThompson/widget-dashboard/internal/response"
	"github.com/GregMSThompson/widget-dashboard/internal/session"
	"github.com/GregMSThompson/widget-dashboard/internal/store"
	"github.com/GregMSThompson/widget-dashboard/pkg/logger"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.MustNewMetrics(reg)
	widgets := registry.New()
	factory := session.Factory{
		Store:    store.NewSettingsStore(store.NewMemoryBackend(), "test", m),
		Registry: widgets,
		Metrics:  m,
		Key:      "widget_config_v2",
	}
	pool, err := session.NewPool(4, factory.New, nil)
	if err != nil {
		t.Fatalf("pool error: %v", err)
	}
	log := logger.NewDiscard()
	deps := &handlers.Deps{
		Log:             log,
		ResponseHandler: response.New(log),
		Catalog:         widgets,
		Sessions: func(ctx context.Context, uid string) handlers.DashboardSession {
			return pool.Get(ctx, uid)
		},
	}
	return NewRouter(deps, Options{LocalUID: "local", Gatherer: reg})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

type envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var env envelope[T]
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decode error: %v (body %s)", err, rr.Body.String())
	}
	return env.Data
}

func TestRouter_DashboardFlow(t *testing.T) {
	srv := newTestServer(t)

	rr := do(t, srv, http.MethodGet, "/dashboard", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if view := decode[dto.DashboardView](t, rr); len(view.Widgets) != 4 {
		t.Fatalf("expected 4 widgets, got %d", len(view.Widgets))
	}

	rr = do(t, srv, http.MethodPost, "/dashboard/widgets/rewards_card/toggle", "")
	manage := decode[dto.ManageView](t, rr)
	if manage.Rows[1].Visible {
		t.Error("expected rewards_card hidden")
	}

	rr = do(t, srv, http.MethodPost, "/dashboard/widgets/move", `{"index":0,"direction":"down"}`)
	manage = decode[dto.ManageView](t, rr)
	if manage.Rows[0].ID != "rewards_card" || manage.Rows[1].ID != "skills_radar" {
		t.Errorf("unexpected order after move: %s, %s", manage.Rows[0].ID, manage.Rows[1].ID)
	}

	rr = do(t, srv, http.MethodPatch, "/dashboard/widgets/critique_panel/settings", `{"settings":{"limit":2}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = do(t, srv, http.MethodGet, "/dashboard", "")
	view := decode[dto.DashboardView](t, rr)
	if len(view.Widgets) != 3 {
		t.Fatalf("expected 3 visible widgets, got %d", len(view.Widgets))
	}
	if view.Widgets[2].Subtitle != "Latest 2 Reviews" {
		t.Errorf("expected patched critique limit, got %q", view.Widgets[2].Subtitle)
	}

	rr = do(t, srv, http.MethodPost, "/dashboard/widgets/reset", "")
	manage = decode[dto.ManageView](t, rr)
	if manage.Rows[0].ID != "skills_radar" || !manage.Rows[1].Visible {
		t.Errorf("reset did not restore defaults: %+v", manage.Rows)
	}
}

func TestRouter_Rejections(t *testing.T) {
	srv := newTestServer(t)

	rr := do(t, srv, http.MethodPatch, "/dashboard/widgets/skills_radar/settings", `{"settings":{"enabledMetrics":[]}}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty selection, got %d", rr.Code)
	}
	var body response.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil || body.Code != "invalid_input" {
		t.Errorf("expected invalid_input error body, got %+v (%v)", body, err)
	}

	rr = do(t, srv, http.MethodPost, "/dashboard/widgets/move", `{"index":0,"direction":"left"}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad direction, got %d", rr.Code)
	}

	rr = do(t, srv, http.MethodPost, "/dashboard/widgets/nonexistent/toggle", "")
	if rr.Code != http.StatusOK {
		t.Errorf("expected unknown id toggle to be a 200 no-op, got %d", rr.Code)
	}
}

func TestRouter_ExpandAndCatalog(t *testing.T) {
	srv := newTestServer(t)

	rr := do(t, srv, http.MethodPost, "/dashboard/widgets/student_list/expand", "")
	manage := decode[dto.ManageView](t, rr)
	if manage.Expanded != "student_list" || manage.Rows[2].Panel == nil {
		t.Errorf("expected student_list panel expanded, got %+v", manage)
	}
	if n := len(manage.Rows[2].Panel.Controls); n != 3 {
		t.Errorf("expected 3 time range choices, got %d", n)
	}

	rr = do(t, srv, http.MethodGet, "/dashboard/widget-types", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var cat envelope[[]map[string]any]
	if err := json.NewDecoder(rr.Body).Decode(&cat); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(cat.Data) != 4 {
		t.Errorf("expected 4 catalog entries, got %d", len(cat.Data))
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	if rr := do(t, srv, http.MethodGet, "/healthz", ""); rr.Code != http.StatusOK {
		t.Errorf("expected healthz 200, got %d", rr.Code)
	}

	do(t, srv, http.MethodPost, "/dashboard/widgets/skills_radar/toggle", "")
	rr := do(t, srv, http.MethodGet, "/metrics", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected metrics 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `dashboard_mutations_total{operation="toggle",outcome="applied"} 1`) {
		t.Errorf("expected toggle counter in metrics output")
	}
}
