package prompt

import (
	"fmt"
	"strings"

	"github.com/davidbz/fitforge/internal/domain"
)

//nolint:gochecknoglobals // Render order
var ruleOrder = []domain.ReadinessLevel{domain.ReadinessLow, domain.ReadinessMedium, domain.ReadinessHigh}

// ReadinessRules states domain.ReadinessBands as declarative rules, one per level.
func ReadinessRules() []string {
	rules := make([]string, 0, len(ruleOrder))
	for _, level := range ruleOrder {
		rules = append(rules, fmt.Sprintf("%s: %s", level, describeBand(domain.ReadinessBands[level])))
	}
	return rules
}

func describeBand(b domain.ReadinessBand) string {
	parts := []string{
		describeRange("training volume and intensity", b.VolumeMinPct, b.VolumeMaxPct),
		describeRange("calories", b.CalorieMinPct, b.CalorieMaxPct),
	}
	if b.ExtraWaterMl > 0 {
		parts = append(parts, fmt.Sprintf("emphasize recovery foods and add %d ml water", b.ExtraWaterMl))
	}
	return strings.Join(parts, "; ")
}

func describeRange(subject string, lo, hi int) string {
	switch {
	case hi < 0:
		return fmt.Sprintf("reduce %s by %d-%d%%", subject, -hi, -lo)
	case lo > 0:
		return fmt.Sprintf("increase %s by %d-%d%%", subject, lo, hi)
	default:
		return fmt.Sprintf("keep %s unchanged", subject)
	}
}
