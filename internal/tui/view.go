package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/GregMSThompson/widget-dashboard/internal/dto"
)

const (
	gridColumns   = 3
	minColumn     = 24
	defaultWidth  = 96
	barWidthRatio = 2
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.tabs())
	b.WriteString("\n\n")

	if m.tab == tabDashboard {
		b.WriteString(m.dashboardView())
	} else {
		b.WriteString(m.manageView())
	}

	b.WriteString("\n")
	if m.status != "" {
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(mutedStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	bindings := m.keys.dashboardHelp()
	if m.tab == tabManage {
		bindings = m.keys.manageHelp(m.openPanel() != nil)
	}
	b.WriteString(m.help.ShortHelpView(bindings))
	return b.String()
}

func (m Model) tabs() string {
	dash, manage := tabStyle, tabStyle
	if m.tab == tabDashboard {
		dash = activeTabStyle
	} else {
		manage = activeTabStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		dash.Render("Dashboard"),
		manage.Render("Manage Widgets"),
	)
}

// --- Dashboard ---

// dashboardView lays the visible widgets out on a three column grid, each
// widget taking its span.
func (m Model) dashboardView() string {
	if len(m.dashboard.Widgets) == 0 {
		return mutedStyle.Render("No widgets are visible. Press tab to manage widgets.")
	}

	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	column := max(width/gridColumns, minColumn)

	var rows []string
	var line []string
	used := 0
	for _, w := range m.dashboard.Widgets {
		span := min(max(w.Span, 1), gridColumns)
		if used+span > gridColumns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
			line, used = nil, 0
		}
		line = append(line, renderCard(w, column*span))
		used += span
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(w dto.WidgetView, width int) string {
	inner := width - 4 // border and padding
	lines := []string{titleStyle.Render(w.Title)}
	if w.Subtitle != "" {
		lines = append(lines, subtitleStyle.Render(w.Subtitle))
	}
	lines = append(lines, "")
	lines = append(lines, cardBody(w.Data, inner)...)
	return cardStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func cardBody(data any, width int) []string {
	barWidth := max(width/barWidthRatio, 8)

	switch d := data.(type) {
	case dto.SkillsRadarData:
		out := make([]string, 0, len(d.Metrics))
		for _, s := range d.Metrics {
			out = append(out, fmt.Sprintf("%-8s %s %3d", s.Subject, bar(s.Value, s.FullMark, barWidth), s.Value))
		}
		return out

	case dto.RewardsCardData:
		out := []string{
			fmt.Sprintf("%d / %d pts", d.Points, d.MilestonePoints),
			fmt.Sprintf("%s %d%%", bar(d.ProgressPercent, 100, barWidth), d.ProgressPercent),
			mutedStyle.Render("Next: " + d.LockedReward),
		}
		if d.Badge != "" {
			out = append(out, badgeStyle.Render("★ "+d.Badge))
		}
		return out

	case dto.StudentListData:
		out := make([]string, 0, len(d.Students))
		for _, s := range d.Students {
			out = append(out, fmt.Sprintf("#%d %-16s %4.1f", s.Rank, s.Name, s.Score))
		}
		return out

	case dto.CritiquePanelData:
		out := make([]string, 0, len(d.Critiques)*2)
		for _, c := range d.Critiques {
			out = append(out,
				fmt.Sprintf("%s  %s", titleStyle.Render(c.Judge), badgeStyle.Render(c.Score)),
				mutedStyle.Render(c.Comment),
			)
		}
		return out
	}

	return []string{mutedStyle.Render("This widget is no longer available.")}
}

func bar(value, full, width int) string {
	if full <= 0 || width <= 0 {
		return ""
	}
	filled := min(max(value*width/full, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// --- Manage ---

func (m Model) manageView() string {
	var b strings.Builder
	for i, r := range m.manage.Rows {
		cursor := "  "
		label := r.Label
		if label == "" {
			label = string(r.ID)
		}
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
			label = cursorStyle.Render(label)
		}

		check := "[ ]"
		if r.Visible {
			check = "[x]"
		}
		arrows := mutedStyle.Render(arrow(r.CanMoveUp, "↑") + arrow(r.CanMoveDown, "↓"))

		fmt.Fprintf(&b, "%s%s %s %s %s\n", cursor, check, label, mutedStyle.Render(string(r.ID)), arrows)
		if r.Panel != nil {
			b.WriteString(m.panelView(*r.Panel))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func arrow(ok bool, s string) string {
	if ok {
		return s
	}
	return " "
}

func (m Model) panelView(p dto.ConfigPanel) string {
	if len(p.Controls) == 0 {
		return panelStyle.Render(mutedStyle.Render("No settings for this widget."))
	}
	lines := make([]string, 0, len(p.Controls))
	for i, c := range p.Controls {
		text := controlText(c)
		if i == m.control {
			text = cursorStyle.Render("› ") + text
		} else {
			text = "  " + text
		}
		lines = append(lines, text)
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func controlText(c dto.Control) string {
	switch c.Kind {
	case dto.ControlToggle:
		mark := "[ ]"
		if c.Active {
			mark = "[x]"
		}
		text := mark + " " + c.Label
		if c.Disabled {
			text += mutedStyle.Render(" (required)")
		}
		return text

	case dto.ControlChoice:
		if c.Active {
			return "(•) " + c.Label
		}
		return "( ) " + c.Label

	case dto.ControlSwitch:
		state := "off"
		if c.Active {
			state = "on"
		}
		return fmt.Sprintf("%s: %s", c.Label, state)

	case dto.ControlRange:
		return fmt.Sprintf("%s  ◂ %d ▸  %s", c.Label, c.Value, mutedStyle.Render(fmt.Sprintf("(%d-%d)", c.Min, c.Max)))
	}
	return c.Label
}
