package registry

import (
	"slices"

	"github.com/GregMSThompson/widget-dashboard/internal/dto"
	"github.com/GregMSThompson/widget-dashboard/internal/models"
)

// StaticData returns the built-in data snapshot the widget bodies render
// from when no external profile or feed is wired. Each call returns a fresh
// copy.
func StaticData() dto.DashboardData {
	return dto.DashboardData{
		User: models.User{
			Name:    "Alex",
			Points:  1500,
			Ranking: 42,
		},
		Skills: slices.Clone(staticSkills),
		Milestone: dto.RewardMilestone{
			Points:       2000,
			LockedReward: "Golden Katana VFX Asset",
		},
		Students:  slices.Clone(staticStudents),
		Critiques: slices.Clone(staticCritiques),
	}
}

var staticSkills = []dto.SkillMetric{
	{Subject: dto.MetricPower, Value: 85, FullMark: 100},
	{Subject: dto.MetricVFX, Value: 95, FullMark: 100},
	{Subject: dto.MetricAgility, Value: 70, FullMark: 100},
	{Subject: dto.MetricForm, Value: 80, FullMark: 100},
	{Subject: dto.MetricSpirit, Value: 90, FullMark: 100},
}

var staticStudents = []dto.StudentItem{
	{Name: "Koji Tanaka", Score: 9.8, ImageURL: "https://api.dicebear.com/7.x/pixel-art/svg?seed=koji"},
	{Name: "Luna Stark", Score: 9.5, ImageURL: "https://api.dicebear.com/7.x/pixel-art/svg?seed=luna"},
	{Name: "Marcus Jin", Score: 9.2, ImageURL: "https://api.dicebear.com/7.x/pixel-art/svg?seed=marcus"},
}

var staticCritiques = []dto.CritiqueItem{
	{Judge: "Sensei Stone", Comment: "Excellent form on the roundhouse. Needs more spark.", Score: "8.5"},
	{Judge: "Master Blaze", Comment: "The particle flow was organic but color grading is off.", Score: "9.0"},
	{Judge: "Elder Cipher", Comment: "Technical precision in tracking is spot on.", Score: "9.2"},
	{Judge: "Sifu Gale", Comment: "Enhance the blur effects for intensity.", Score: "8.8"},
}
