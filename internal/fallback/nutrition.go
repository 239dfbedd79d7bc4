package fallback

import (
	"fmt"
	"math"
	"strings"

	"github.com/davidbz/fitforge/internal/domain"
)

// Goal is the coarse classification of a caller's primary goal.
type Goal string

const (
	GoalFatLoss     Goal = "fat_loss"
	GoalMuscleGain  Goal = "muscle_gain"
	GoalMaintenance Goal = "maintenance"
)

const (
	defaultWaterMl  = 2500
	waterMlPerKg    = 35
	minCalories     = 1200
	maxCalories     = 6000
	maxWaterMl      = 10000
	midpointSexBias = -78
)

//nolint:gochecknoglobals // Read-only lookup tables
var (
	baseCalories = map[Goal]int{
		GoalFatLoss:     1800,
		GoalMuscleGain:  2600,
		GoalMaintenance: 2200,
	}

	goalFactor = map[Goal]float64{
		GoalFatLoss:     0.8,
		GoalMuscleGain:  1.1,
		GoalMaintenance: 1.0,
	}

	goalPreset = map[Goal]string{
		GoalFatLoss:     PresetHighProtein,
		GoalMuscleGain:  PresetHighProtein,
		GoalMaintenance: PresetBalanced,
	}

	fatLossKeywords    = []string{"fat", "lose", "loss", "cut", "lean", "slim", "tone", "shred"}
	muscleGainKeywords = []string{"muscle", "gain", "bulk", "mass", "strength", "build", "hypertrophy"}
)

// ClassifyGoal classifies the first non-blank goal by keyword. Fat-loss keywords win ties.
func ClassifyGoal(goals []string) Goal {
	for _, g := range goals {
		g = strings.ToLower(strings.TrimSpace(g))
		if g == "" {
			continue
		}
		switch {
		case containsAny(g, fatLossKeywords):
			return GoalFatLoss
		case containsAny(g, muscleGainKeywords):
			return GoalMuscleGain
		default:
			return GoalMaintenance
		}
	}
	return GoalMaintenance
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// NutritionInput carries everything the offline targets depend on.
type NutritionInput struct {
	Goals     []string
	Body      *domain.BodyStats
	Readiness *domain.ReadinessContext
}

// BaseCalories returns the goal-adjusted daily energy before readiness is applied. With
// complete body stats it uses Mifflin-St Jeor × activity × goal factor.
func BaseCalories(goal Goal, body *domain.BodyStats) float64 {
	if !body.Complete() {
		return float64(baseCalories[goal])
	}

	bias := float64(midpointSexBias)
	switch domain.Sex(strings.ToLower(string(body.Sex))) {
	case domain.SexMale:
		bias = 5
	case domain.SexFemale:
		bias = -161
	}

	bmr := 10*body.WeightKg + 6.25*body.HeightCm - 5*float64(body.Age) + bias
	return bmr * body.Activity.ActivityFactor() * goalFactor[goal]
}

// NutritionTargets computes daily targets from the goal table, body stats and readiness.
func NutritionTargets(in NutritionInput) domain.DailyNutritionTargets {
	goal := ClassifyGoal(in.Goals)
	band := domain.BandFor(in.Readiness)

	calories := int(math.Round(BaseCalories(goal, in.Body) * band.CalorieFactor()))
	calories = min(max(calories, minCalories), maxCalories)

	water := defaultWaterMl
	if in.Body != nil && in.Body.WeightKg > 0 {
		water = int(math.Round(in.Body.WeightKg * waterMlPerKg))
	}
	water = min(water+band.ExtraWaterMl, maxWaterMl)

	preset := goalPreset[goal]
	split := splitGrams(calories, presets[preset])

	return domain.DailyNutritionTargets{
		Calories:     calories,
		ProteinGrams: split.ProteinGrams,
		CarbGrams:    split.CarbGrams,
		FatGrams:     split.FatGrams,
		WaterMl:      water,
		Rationale: fmt.Sprintf("Offline estimate for %s at %s readiness using a %s split.",
			strings.ReplaceAll(string(goal), "_", " "), domain.BandTag(in.Readiness), preset),
	}
}
