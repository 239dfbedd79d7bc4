// Package reward derives gamification reward events from completed domain results.
// Every function here is pure: identifiers and timestamps are supplied by the caller.
package reward

import (
	"fmt"
	"math"
	"time"

	"github.com/davidbz/fitforge/internal/domain"
)

const (
	// WorkoutBaseXP is granted per started 15-minute block of training.
	WorkoutBaseXP = 50
	// NutritionXP is the fixed grant for daily nutrition targets.
	NutritionXP = 25
	// MacroXP is the fixed grant for a macro split.
	MacroXP = 15

	workoutBlockMinutes = 15
)

const (
	CategoryWorkout   = "workout"
	CategoryNutrition = "nutrition"
	CategoryMacros    = "macros"
)

// Stamp carries the non-deterministic parts of an event.
type Stamp struct {
	ID   string
	Date time.Time
}

// DifficultyMultiplier is monotonic over beginner < intermediate < advanced.
// Unknown difficulties count as beginner.
func DifficultyMultiplier(d domain.Difficulty) float64 {
	switch d {
	case domain.DifficultyIntermediate:
		return 1.5
	case domain.DifficultyAdvanced:
		return 2
	default:
		return 1
	}
}

func workoutBlocks(minutes int) int {
	if minutes <= 0 {
		return 0
	}
	return int(math.Ceil(float64(minutes) / workoutBlockMinutes))
}

// WorkoutXP is base × difficultyMultiplier × ceil(minutes/15).
func WorkoutXP(d domain.Difficulty, minutes int) int {
	return int(math.Round(float64(WorkoutBaseXP*workoutBlocks(minutes)) * DifficultyMultiplier(d)))
}

// ForWorkout builds the event for a completed workout plan.
func ForWorkout(plan domain.WorkoutPlan, stamp Stamp) domain.RewardEvent {
	return domain.RewardEvent{
		ID:          stamp.ID,
		Category:    CategoryWorkout,
		BaseAmount:  WorkoutBaseXP * workoutBlocks(plan.DurationMinutes),
		Multiplier:  DifficultyMultiplier(plan.Difficulty),
		Date:        stamp.Date,
		Description: fmt.Sprintf("Completed %s (%s, %d min)", plan.Name, plan.Difficulty, plan.DurationMinutes),
		Completed:   true,
	}
}

// ForNutrition builds the event for daily nutrition targets. band only tags the category.
func ForNutrition(band string, stamp Stamp) domain.RewardEvent {
	return adviceEvent(CategoryNutrition, NutritionXP, band, "Daily nutrition targets set", stamp)
}

// ForMacros builds the event for a macro split. band only tags the category.
func ForMacros(band string, stamp Stamp) domain.RewardEvent {
	return adviceEvent(CategoryMacros, MacroXP, band, "Macro split planned", stamp)
}

func adviceEvent(category string, amount int, band, description string, stamp Stamp) domain.RewardEvent {
	if band == "" {
		band = "unknown"
	}
	return domain.RewardEvent{
		ID:          stamp.ID,
		Category:    category + ":" + band,
		BaseAmount:  amount,
		Multiplier:  1,
		Date:        stamp.Date,
		Description: description,
		Completed:   true,
	}
}
