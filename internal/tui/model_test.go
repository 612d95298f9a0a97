package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/GregMSThompson/widget-dashboard/internal/dto"
	"github.com/GregMSThompson/widget-dashboard/internal/models"
	"github.com/GregMSThompson/widget-dashboard/internal/presentation"
	"github.com/GregMSThompson/widget-dashboard/internal/registry"
	"github.com/GregMSThompson/widget-dashboard/internal/services"
	"github.com/GregMSThompson/widget-dashboard/internal/store"
	"github.com/GregMSThompson/widget-dashboard/pkg/helpers"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	ctx := helpers.TestCtx()
	reg := registry.New()
	settings := store.NewSettingsStore(store.NewMemoryBackend(), "test", nil)
	engine := services.NewDashboardService(settings, reg, services.DashboardConfig{Key: "dash"}, nil)
	engine.Initialize(ctx)
	adapter := presentation.NewAdapter(engine, reg, func(context.Context) dto.DashboardData { return registry.StaticData() })
	return New(ctx, adapter)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(keyMsg(k))
		m = updated.(Model)
	}
	return m
}

func rowIDs(m Model) []models.WidgetID {
	ids := make([]models.WidgetID, 0, len(m.manage.Rows))
	for _, r := range m.manage.Rows {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestModel_SwitchTab(t *testing.T) {
	m := newTestModel(t)
	if m.tab != tabDashboard {
		t.Fatalf("expected dashboard tab first, got %d", m.tab)
	}
	m = press(t, m, "tab")
	if m.tab != tabManage {
		t.Errorf("expected manage tab, got %d", m.tab)
	}
	m = press(t, m, "tab")
	if m.tab != tabDashboard {
		t.Errorf("expected dashboard tab, got %d", m.tab)
	}
}

func TestModel_ListKeysIgnoredOnDashboardTab(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "j", " ")
	if m.cursor != 0 {
		t.Errorf("cursor moved on dashboard tab: %d", m.cursor)
	}
	if len(m.dashboard.Widgets) != 4 {
		t.Errorf("expected 4 visible widgets, got %d", len(m.dashboard.Widgets))
	}
}

func TestModel_ToggleVisibility(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "tab", "j", " ")

	if m.manage.Rows[1].Visible {
		t.Error("expected rewards card to be hidden")
	}
	if len(m.dashboard.Widgets) != 3 {
		t.Fatalf("expected 3 visible widgets, got %d", len(m.dashboard.Widgets))
	}
	for _, w := range m.dashboard.Widgets {
		if w.ID == models.WidgetRewardsCard {
			t.Error("hidden widget still rendered on the dashboard")
		}
	}
}

func TestModel_MoveKeepsCursorOnWidget(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "tab", "J")

	want := []models.WidgetID{models.WidgetRewardsCard, models.WidgetSkillsRadar, models.WidgetStudentList, models.WidgetCritiquePanel}
	got := rowIDs(m)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
	if m.cursor != 1 {
		t.Errorf("expected cursor to follow the moved widget to 1, got %d", m.cursor)
	}

	// Moving the first row up is unavailable and leaves the order alone.
	m = press(t, m, "k", "K")
	if rowIDs(m)[0] != models.WidgetRewardsCard || m.cursor != 0 {
		t.Errorf("unexpected move at the top: %v cursor=%d", rowIDs(m), m.cursor)
	}
}

func TestModel_ExpandAndActivateSwitch(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "tab", "j", "enter")

	p := m.openPanel()
	if p == nil || p.WidgetID != models.WidgetRewardsCard {
		t.Fatalf("expected rewards card panel open, got %+v", p)
	}

	m = press(t, m, "x")
	for _, w := range m.dashboard.Widgets {
		if w.ID == models.WidgetRewardsCard && w.Data.(dto.RewardsCardData).Badge != "" {
			t.Error("expected mastery badge hidden after switching showStats off")
		}
	}

	m = press(t, m, "enter")
	if m.openPanel() != nil {
		t.Error("expected enter to close the open panel")
	}
}

func TestModel_RangeControl(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "tab", "j", "j", "j", "enter", "-")

	if v := m.openPanel().Controls[0].Value; v != 3 {
		t.Fatalf("expected limit 3, got %d", v)
	}

	m = press(t, m, "+", "+")
	if v := m.openPanel().Controls[0].Value; v != 4 {
		t.Errorf("expected limit to stay at 4, got %d", v)
	}
	if !m.statusErr || !strings.Contains(m.status, "between 1 and 4") {
		t.Errorf("expected range error in status, got %q", m.status)
	}
}

func TestModel_LastMetricRejected(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "tab", "enter")
	m = press(t, m, "x", "l", "x", "l", "x", "l", "x")

	if m.statusErr {
		t.Fatalf("unexpected error %q", m.status)
	}
	m = press(t, m, "l", "x")
	if !m.statusErr {
		t.Error("expected removing the last metric to be rejected")
	}
	radar := m.dashboard.Widgets[0].Data.(dto.SkillsRadarData)
	if len(radar.Metrics) != 1 || radar.Metrics[0].Subject != dto.MetricSpirit {
		t.Errorf("expected only Spirit enabled, got %+v", radar.Metrics)
	}
}

func TestModel_ControlCursorStaysInPanel(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "tab", "j", "enter", "l", "l")
	if m.control != 0 {
		t.Errorf("expected control cursor clamped to the single switch, got %d", m.control)
	}
	m = press(t, m, "h")
	if m.control != 0 {
		t.Errorf("expected control cursor to stay at 0, got %d", m.control)
	}
}

func TestModel_ActivateWithoutPanel(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "tab", "x")
	if !m.statusErr {
		t.Error("expected an error status when no panel is open")
	}
}

func TestModel_Reset(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "tab", "j", "j", " ", "enter", "R")

	if m.openPanel() != nil {
		t.Error("expected reset to close the open panel")
	}
	if m.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", m.cursor)
	}
	if len(m.dashboard.Widgets) != 4 {
		t.Errorf("expected defaults restored, got %d visible widgets", len(m.dashboard.Widgets))
	}
	if m.statusErr || m.status == "" {
		t.Errorf("expected reset status, got %q", m.status)
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)

	out := m.View()
	for _, want := range []string{"Skills Radar", "Dragon Point Milestone", "Judge Telemetry", "Koji Tanaka"} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard view missing %q", want)
		}
	}

	m = press(t, m, "tab", "j", "j", "j", "enter")
	out = m.View()
	for _, want := range []string{"Manage Widgets", "critique_panel", "Critique Limit"} {
		if !strings.Contains(out, want) {
			t.Errorf("manage view missing %q", want)
		}
	}
}

func TestModel_ViewEmptyDashboard(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "tab", " ", "j", " ", "j", " ", "j", " ", "tab")
	if !strings.Contains(m.View(), "No widgets are visible") {
		t.Error("expected empty dashboard message")
	}
}

func TestBar(t *testing.T) {
	if got := bar(50, 100, 10); got != "█████░░░░░" {
		t.Errorf("unexpected bar %q", got)
	}
	if got := bar(150, 100, 4); got != "████" {
		t.Errorf("expected bar clamped to width, got %q", got)
	}
	if got := bar(1, 0, 4); got != "" {
		t.Errorf("expected empty bar for zero full mark, got %q", got)
	}
}
