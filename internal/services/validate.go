package services

import (
	"fmt"
	"slices"

	"github.com/GregMSThompson/widget-dashboard/internal/dto"
	"github.com/GregMSThompson/widget-dashboard/internal/errs"
	"github.com/GregMSThompson/widget-dashboard/internal/models"
)

// validateSettings checks a merged settings record against the closed value
// sets of its widget kind. Metric names carried over from prev are accepted
// as they are; only names the patch adds must be known and unique. Opaque
// settings are never validated.
func validateSettings(prev, merged models.Settings) error {
	switch v := merged.(type) {
	case models.SkillsRadarSettings:
		if len(v.EnabledMetrics) == 0 {
			return errs.NewValidationError("enabledMetrics must keep at least one metric")
		}
		carried := make(map[string]int)
		if p, ok := prev.(models.SkillsRadarSettings); ok {
			for _, m := range p.EnabledMetrics {
				carried[m]++
			}
		}
		seen := make(map[string]int, len(v.EnabledMetrics))
		for _, m := range v.EnabledMetrics {
			seen[m]++
			if carried[m] == 0 && !slices.Contains(dto.SkillMetricNames, m) {
				return errs.NewValidationError(fmt.Sprintf("unknown metric %q", m))
			}
			if seen[m] > max(carried[m], 1) {
				return errs.NewValidationError(fmt.Sprintf("metric %q listed twice", m))
			}
		}

	case models.StudentListSettings:
		if !slices.Contains(dto.TimeRanges, v.TimeRange) {
			return errs.NewValidationError(fmt.Sprintf("timeRange must be one of: %s, %s, %s",
				dto.TimeRangeToday, dto.TimeRangeThisWeek, dto.TimeRangeThisMonth))
		}

	case models.CritiquePanelSettings:
		if v.Limit < dto.CritiqueLimitMin || v.Limit > dto.CritiqueLimitMax {
			return errs.NewValidationError(fmt.Sprintf("limit must be between %d and %d",
				dto.CritiqueLimitMin, dto.CritiqueLimitMax))
		}
	}
	return nil
}
