package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/GregMSThompson/widget-dashboard/internal/dto"
	"github.com/GregMSThompson/widget-dashboard/internal/models"
	"github.com/GregMSThompson/widget-dashboard/pkg/logger"
)

// Dashboard is the presentation surface the TUI drives.
type Dashboard interface {
	Dashboard(ctx context.Context) dto.DashboardView
	Manage(ctx context.Context) dto.ManageView
	ToggleVisibility(ctx context.Context, id models.WidgetID)
	ToggleExpanded(id models.WidgetID)
	MoveWidget(ctx context.Context, index int, direction models.Direction)
	Reset(ctx context.Context)
	ActivateControl(ctx context.Context, i int) error
	SetControlValue(ctx context.Context, i, v int) error
}

type tab int

const (
	tabDashboard tab = iota
	tabManage
)

// Model is the bubbletea model of the dashboard TUI. It keeps the most
// recently rendered views and refreshes them after every action.
type Model struct {
	ctx  context.Context
	dash Dashboard
	keys KeyMap
	help help.Model

	tab     tab
	cursor  int // row in the management list
	control int // control in the expanded settings panel
	width   int

	dashboard dto.DashboardView
	manage    dto.ManageView

	status    string
	statusErr bool
}

func New(ctx context.Context, dash Dashboard) Model {
	m := Model{
		ctx:  ctx,
		dash: dash,
		keys: DefaultKeyMap,
		help: help.New(),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.SwitchTab):
		if m.tab == tabDashboard {
			m.tab = tabManage
		} else {
			m.tab = tabDashboard
		}
		m.clearStatus()
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.dash.Reset(m.ctx)
		m.cursor, m.control = 0, 0
		m.setStatus("layout reset to defaults")
		m.refresh()
		return m, nil
	}

	if m.tab != tabManage || len(m.manage.Rows) == 0 {
		return m, nil
	}
	row := m.manage.Rows[m.cursor]

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.manage.Rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Visible):
		m.dash.ToggleVisibility(m.ctx, row.ID)
		m.clearStatus()

	case key.Matches(msg, m.keys.MoveUp):
		if row.CanMoveUp {
			m.dash.MoveWidget(m.ctx, row.Index, models.DirectionUp)
			m.cursor--
		}

	case key.Matches(msg, m.keys.MoveDown):
		if row.CanMoveDown {
			m.dash.MoveWidget(m.ctx, row.Index, models.DirectionDown)
			m.cursor++
		}

	case key.Matches(msg, m.keys.Expand):
		m.dash.ToggleExpanded(row.ID)
		m.control = 0
		m.clearStatus()

	case key.Matches(msg, m.keys.PrevControl):
		if m.control > 0 {
			m.control--
		}

	case key.Matches(msg, m.keys.NextControl):
		if p := m.openPanel(); p != nil && m.control < len(p.Controls)-1 {
			m.control++
		}

	case key.Matches(msg, m.keys.Activate):
		m.apply(m.dash.ActivateControl(m.ctx, m.control))

	case key.Matches(msg, m.keys.Increase):
		m.stepControl(1)

	case key.Matches(msg, m.keys.Decrease):
		m.stepControl(-1)
	}

	m.refresh()
	return m, nil
}

func (m *Model) stepControl(sign int) {
	p := m.openPanel()
	if p == nil || m.control >= len(p.Controls) {
		m.apply(m.dash.SetControlValue(m.ctx, m.control, 0))
		return
	}
	c := p.Controls[m.control]
	step := max(c.Step, 1)
	m.apply(m.dash.SetControlValue(m.ctx, m.control, c.Value+sign*step))
}

func (m *Model) apply(err error) {
	if err != nil {
		logger.FromContext(m.ctx).Debug("control rejected", "error", err)
		m.status, m.statusErr = err.Error(), true
		return
	}
	m.clearStatus()
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) clearStatus() {
	m.status, m.statusErr = "", false
}

// openPanel returns the settings panel of the expanded row, if any.
func (m Model) openPanel() *dto.ConfigPanel {
	for _, r := range m.manage.Rows {
		if r.Panel != nil {
			return r.Panel
		}
	}
	return nil
}

func (m *Model) refresh() {
	m.dashboard = m.dash.Dashboard(m.ctx)
	m.manage = m.dash.Manage(m.ctx)
	if n := len(m.manage.Rows); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	if p := m.openPanel(); p != nil && m.control >= len(p.Controls) {
		m.control = max(len(p.Controls)-1, 0)
	}
}
