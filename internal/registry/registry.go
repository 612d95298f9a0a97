package registry

import (
	"fmt"
	"slices"

	"github.com/GregMSThompson/widget-dashboard/internal/dto"
	"github.com/GregMSThompson/widget-dashboard/internal/models"
)

const masteryBadge = "Top 5% Student"

type kind struct {
	id       models.WidgetID
	label    string
	defaults func() models.Settings
	options  map[string]any
}

// kinds is the closed catalog, in declared order.
var kinds = []kind{
	{
		id:    models.WidgetSkillsRadar,
		label: "Skills Radar",
		defaults: func() models.Settings {
			return models.SkillsRadarSettings{EnabledMetrics: slices.Clone(dto.SkillMetricNames)}
		},
		options: map[string]any{"enabledMetrics": dto.SkillMetricNames},
	},
	{
		id:       models.WidgetRewardsCard,
		label:    "Rewards Progress",
		defaults: func() models.Settings { return models.RewardsCardSettings{ShowStats: true} },
		options:  map[string]any{"showStats": []bool{true, false}},
	},
	{
		id:       models.WidgetStudentList,
		label:    "Active Students",
		defaults: func() models.Settings { return models.StudentListSettings{TimeRange: dto.TimeRangeThisWeek} },
		options:  map[string]any{"timeRange": dto.TimeRanges},
	},
	{
		id:       models.WidgetCritiquePanel,
		label:    "Judge Critiques",
		defaults: func() models.Settings { return models.CritiquePanelSettings{Limit: dto.CritiqueLimitMax} },
		options: map[string]any{"limit": map[string]int{
			"min":  dto.CritiqueLimitMin,
			"max":  dto.CritiqueLimitMax,
			"step": 1,
		}},
	},
}

// Registry maps widget ids to their defaults and render functions. It holds
// no mutable state.
type Registry struct{}

func New() *Registry {
	return &Registry{}
}

// Defaults returns one visible entry per known widget, in declared order.
func (r *Registry) Defaults() []models.WidgetEntry {
	out := make([]models.WidgetEntry, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, models.WidgetEntry{
			ID:       k.id,
			Label:    k.label,
			Visible:  true,
			Settings: k.defaults(),
		})
	}
	return out
}

// Default returns the default entry for id.
func (r *Registry) Default(id models.WidgetID) (models.WidgetEntry, bool) {
	for _, e := range r.Defaults() {
		if e.ID == id {
			return e, true
		}
	}
	return models.WidgetEntry{}, false
}

func (r *Registry) Known(id models.WidgetID) bool {
	return id.IsKnown()
}

// Catalog lists every widget kind with its default settings and the values
// its settings accept.
func (r *Registry) Catalog() []dto.WidgetTypeEntry {
	out := make([]dto.WidgetTypeEntry, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, dto.WidgetTypeEntry{
			ID:              k.id,
			Label:           k.label,
			DefaultSettings: k.defaults(),
			ConfigOptions:   k.options,
		})
	}
	return out
}

// Render builds the body of one widget from its settings and the data
// snapshot.
func (r *Registry) Render(id models.WidgetID, settings models.Settings, data dto.DashboardData) dto.WidgetView {
	switch s := settings.(type) {
	case models.SkillsRadarSettings:
		metrics := make([]dto.SkillMetric, 0, len(s.EnabledMetrics))
		for _, m := range data.Skills {
			if slices.Contains(s.EnabledMetrics, m.Subject) {
				metrics = append(metrics, m)
			}
		}
		return dto.WidgetView{
			ID:       id,
			Title:    "Skills Radar",
			Subtitle: fmt.Sprintf("Analysis of %d metrics.", len(s.EnabledMetrics)),
			Span:     2,
			Data:     dto.SkillsRadarData{Metrics: metrics},
		}

	case models.RewardsCardSettings:
		body := dto.RewardsCardData{
			MilestonePoints: data.Milestone.Points,
			Points:          data.User.Points,
			ProgressPercent: progress(data.User.Points, data.Milestone.Points),
			LockedReward:    data.Milestone.LockedReward,
		}
		if s.ShowStats {
			body.Badge = masteryBadge
		}
		return dto.WidgetView{
			ID:    id,
			Title: "Dragon Point Milestone",
			Span:  1,
			Data:  body,
		}

	case models.StudentListSettings:
		ranked := make([]dto.RankedStudent, len(data.Students))
		for i, st := range data.Students {
			ranked[i] = dto.RankedStudent{Rank: i + 1, Name: st.Name, Score: st.Score}
		}
		return dto.WidgetView{
			ID:       id,
			Title:    "Active Students",
			Subtitle: s.TimeRange,
			Span:     1,
			Data:     dto.StudentListData{TimeRange: s.TimeRange, Students: ranked},
		}

	case models.CritiquePanelSettings:
		n := min(max(s.Limit, 0), len(data.Critiques))
		return dto.WidgetView{
			ID:       id,
			Title:    "Judge Telemetry",
			Subtitle: fmt.Sprintf("Latest %d Reviews", s.Limit),
			Span:     3,
			Data: dto.CritiquePanelData{
				Limit:     s.Limit,
				Critiques: slices.Clone(data.Critiques[:n]),
			},
		}
	}

	return dto.WidgetView{
		ID:       id,
		Title:    string(id),
		Subtitle: "Unavailable widget",
		Span:     1,
	}
}

// RenderConfigPanel builds the settings panel of entry. Every patch a control
// produces is handed to update.
func (r *Registry) RenderConfigPanel(entry models.WidgetEntry, update func(models.Patch) error) dto.ConfigPanel {
	panel := dto.ConfigPanel{
		WidgetID: entry.ID,
		Title:    entry.Label,
		Controls: []dto.Control{},
		OnChange: update,
	}

	switch s := entry.Settings.(type) {
	case models.SkillsRadarSettings:
		for _, name := range dto.SkillMetricNames {
			active := slices.Contains(s.EnabledMetrics, name)
			var next []string
			if active {
				next = slices.DeleteFunc(slices.Clone(s.EnabledMetrics), func(m string) bool { return m == name })
			} else {
				next = append(slices.Clone(s.EnabledMetrics), name)
			}
			panel.Controls = append(panel.Controls, dto.Control{
				Key:      "enabledMetrics",
				Kind:     dto.ControlToggle,
				Label:    name,
				Active:   active,
				Disabled: active && len(next) == 0,
				Patch:    models.MustPatch(map[string]any{"enabledMetrics": next}),
			})
		}

	case models.RewardsCardSettings:
		panel.Controls = append(panel.Controls, dto.Control{
			Key:    "showStats",
			Kind:   dto.ControlSwitch,
			Label:  "Show Mastery Badge",
			Active: s.ShowStats,
			Patch:  models.MustPatch(map[string]any{"showStats": !s.ShowStats}),
		})

	case models.StudentListSettings:
		for _, tr := range dto.TimeRanges {
			panel.Controls = append(panel.Controls, dto.Control{
				Key:    "timeRange",
				Kind:   dto.ControlChoice,
				Label:  tr,
				Active: s.TimeRange == tr,
				Patch:  models.MustPatch(map[string]any{"timeRange": tr}),
			})
		}

	case models.CritiquePanelSettings:
		panel.Controls = append(panel.Controls, dto.Control{
			Key:   "limit",
			Kind:  dto.ControlRange,
			Label: "Critique Limit",
			Value: s.Limit,
			Min:   dto.CritiqueLimitMin,
			Max:   dto.CritiqueLimitMax,
			Step:  1,
		})
	}

	return panel
}

func progress(points, milestone int) int {
	if milestone <= 0 {
		return 0
	}
	return min(points*100/milestone, 100)
}
