// Package readiness supplies the optional readiness context used to bias requests.
package readiness

import (
	"context"
	"fmt"
	"strings"

	"github.com/davidbz/fitforge/internal/domain"
)

// Score thresholds on the 1-5 composite scale.
const (
	LowBelow     = 2.5
	HighAtLeast  = 3.75
	neutral      = 3
	weakAtOrLess = 2
)

// FromSignals derives a readiness level from self-reported signals. Out-of-range signals
// count as neutral. Stress is inverted before averaging.
func FromSignals(s domain.ReadinessSignals) domain.ReadinessContext {
	named := []struct {
		weak  string
		value int
	}{
		{"low mood", clampSignal(s.Mood)},
		{"low energy", clampSignal(s.Energy)},
		{"high stress", 6 - clampSignal(s.Stress)},
		{"poor sleep", clampSignal(s.Sleep)},
		{"low confidence", clampSignal(s.Confidence)},
	}

	total := 0
	var weak []string
	for _, n := range named {
		total += n.value
		if n.value <= weakAtOrLess {
			weak = append(weak, n.weak)
		}
	}
	score := float64(total) / float64(len(named))

	level := domain.ReadinessMedium
	switch {
	case score < LowBelow:
		level = domain.ReadinessLow
	case score >= HighAtLeast:
		level = domain.ReadinessHigh
	}

	descriptor := fmt.Sprintf("score %.1f/5", score)
	if len(weak) > 0 {
		descriptor += "; " + strings.Join(weak, ", ")
	}

	return domain.ReadinessContext{Level: level, Descriptor: descriptor}
}

func clampSignal(v int) int {
	if v < 1 || v > 5 {
		return neutral
	}
	return v
}

// None never has a readiness signal.
type None struct{}

func (None) Current(context.Context) (*domain.ReadinessContext, error) {
	return nil, nil //nolint:nilnil // Absent context is a valid state
}
