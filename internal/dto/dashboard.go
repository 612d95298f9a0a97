package dto

import (
	"github.com/GregMSThompson/widget-dashboard/internal/models"
)

// Skill metric names (skills_radar enabledMetrics members)
const (
	MetricPower   = "Power"
	MetricVFX     = "VFX"
	MetricAgility = "Agility"
	MetricForm    = "Form"
	MetricSpirit  = "Spirit"
)

// SkillMetricNames is the canonical metric order.
var SkillMetricNames = []string{MetricPower, MetricVFX, MetricAgility, MetricForm, MetricSpirit}

// Time ranges (student_list timeRange)
const (
	TimeRangeToday     = "Today"
	TimeRangeThisWeek  = "This Week"
	TimeRangeThisMonth = "This Month"
)

var TimeRanges = []string{TimeRangeToday, TimeRangeThisWeek, TimeRangeThisMonth}

// Critique feed page size bounds (critique_panel limit)
const (
	CritiqueLimitMin = 1
	CritiqueLimitMax = 4
)

// --- Request types ---

type PatchSettingsRequest struct {
	Settings models.Patch `json:"settings"`
}

type MoveWidgetRequest struct {
	Index     int    `json:"index"`
	Direction string `json:"direction"`
}

// --- Data snapshot supplied by external collaborators ---

type SkillMetric struct {
	Subject  string `json:"subject"`
	Value    int    `json:"value"`
	FullMark int    `json:"fullMark"`
}

type RewardMilestone struct {
	Points       int    `json:"points"`
	LockedReward string `json:"lockedReward"`
}

type StudentItem struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	ImageURL string  `json:"imageUrl"`
}

type CritiqueItem struct {
	Judge   string `json:"judge"`
	Comment string `json:"comment"`
	Score   string `json:"score"`
}

// DashboardData is the plain data snapshot widget bodies render from.
type DashboardData struct {
	User      models.User     `json:"user"`
	Skills    []SkillMetric   `json:"skills"`
	Milestone RewardMilestone `json:"milestone"`
	Students  []StudentItem   `json:"students"`
	Critiques []CritiqueItem  `json:"critiques"`
}

// --- Rendered views ---

// WidgetView is one rendered widget body.
type WidgetView struct {
	ID       models.WidgetID `json:"id"`
	Title    string          `json:"title"`
	Subtitle string          `json:"subtitle,omitempty"`
	Span     int             `json:"span"` // grid columns out of 3
	Data     any             `json:"data,omitempty"`
}

type SkillsRadarData struct {
	Metrics []SkillMetric `json:"metrics"`
}

type RewardsCardData struct {
	MilestonePoints int    `json:"milestonePoints"`
	Points          int    `json:"points"`
	ProgressPercent int    `json:"progressPercent"`
	LockedReward    string `json:"lockedReward"`
	Badge           string `json:"badge,omitempty"`
}

type RankedStudent struct {
	Rank  int     `json:"rank"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

type StudentListData struct {
	TimeRange string          `json:"timeRange"`
	Students  []RankedStudent `json:"students"`
}

type CritiquePanelData struct {
	Limit     int            `json:"limit"`
	Critiques []CritiqueItem `json:"critiques"`
}

// DashboardView is the visible dashboard, in display order.
type DashboardView struct {
	Widgets []WidgetView `json:"widgets"`
}

// ManageRow is one row of the management surface.
type ManageRow struct {
	Index       int             `json:"index"`
	ID          models.WidgetID `json:"id"`
	Label       string          `json:"label"`
	Visible     bool            `json:"visible"`
	CanMoveUp   bool            `json:"canMoveUp"`
	CanMoveDown bool            `json:"canMoveDown"`
	Expanded    bool            `json:"expanded"`
	Panel       *ConfigPanel    `json:"panel,omitempty"`
}

// ManageView lists every entry, visible and hidden.
type ManageView struct {
	Rows     []ManageRow     `json:"rows"`
	Expanded models.WidgetID `json:"expanded,omitempty"`
}

// --- Catalog ---

type WidgetTypeEntry struct {
	ID              models.WidgetID `json:"id"`
	Label           string          `json:"label"`
	DefaultSettings models.Settings `json:"defaultSettings"`
	ConfigOptions   map[string]any  `json:"configOptions"`
}
