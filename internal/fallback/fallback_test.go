package fallback_test

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/fitforge/internal/domain"
	"github.com/davidbz/fitforge/internal/fallback"
	"github.com/davidbz/fitforge/internal/normalize"
	"github.com/davidbz/fitforge/internal/reward"
)

func readiness(level domain.ReadinessLevel) *domain.ReadinessContext {
	return &domain.ReadinessContext{Level: level, Descriptor: "test"}
}

func TestMacroSplit_Keto(t *testing.T) {
	split, err := fallback.MacroSplit(2000, "keto")

	require.NoError(t, err)
	require.Equal(t, 125, split.ProteinGrams)
	require.Equal(t, 25, split.CarbGrams)
	require.Equal(t, 156, split.FatGrams)
	require.Contains(t, split.Note, "keto")
}

func TestMacroSplit_Conservation(t *testing.T) {
	for _, preset := range fallback.Presets() {
		for calories := 800; calories <= 5000; calories += 37 {
			split, err := fallback.MacroSplit(calories, preset)
			require.NoError(t, err)

			kcal := domain.MacroKcal(split.ProteinGrams, split.CarbGrams, split.FatGrams)
			gap := math.Abs(float64(kcal-calories)) / float64(calories)
			require.LessOrEqual(t, gap, 0.02, "preset %s calories %d kcal %d", preset, calories, kcal)
		}
	}
}

func TestLookupPreset(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: fallback.PresetBalanced},
		{input: "  ", want: fallback.PresetBalanced},
		{input: "Balanced", want: fallback.PresetBalanced},
		{input: "KETO", want: fallback.PresetKeto},
		{input: "high-protein", want: fallback.PresetHighProtein},
		{input: "High Protein", want: fallback.PresetHighProtein},
		{input: "high_protein", want: fallback.PresetHighProtein},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			name, _, err := fallback.LookupPreset(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, name)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := fallback.MacroSplit(2000, "carnivore")
		require.ErrorIs(t, err, fallback.ErrUnknownPreset)
	})
}

func TestMacroSplit_NonPositiveCalories(t *testing.T) {
	split, err := fallback.MacroSplit(0, "")
	require.NoError(t, err)

	want, err := fallback.MacroSplit(fallback.DefaultCalories, fallback.PresetBalanced)
	require.NoError(t, err)
	require.Equal(t, want, split)
}

func TestClassifyGoal(t *testing.T) {
	tests := []struct {
		goals []string
		want  fallback.Goal
	}{
		{goals: []string{"fat loss"}, want: fallback.GoalFatLoss},
		{goals: []string{"Lose 5kg before summer"}, want: fallback.GoalFatLoss},
		{goals: []string{"build muscle"}, want: fallback.GoalMuscleGain},
		{goals: []string{"  ", "Gain strength"}, want: fallback.GoalMuscleGain},
		{goals: []string{"run a marathon", "fat loss"}, want: fallback.GoalMaintenance},
		{goals: nil, want: fallback.GoalMaintenance},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.goals, ","), func(t *testing.T) {
			require.Equal(t, tt.want, fallback.ClassifyGoal(tt.goals))
		})
	}
}

func TestNutritionTargets_ReadinessBands(t *testing.T) {
	goals := []string{"fat loss"}

	low := fallback.NutritionTargets(fallback.NutritionInput{Goals: goals, Readiness: readiness(domain.ReadinessLow)})
	medium := fallback.NutritionTargets(fallback.NutritionInput{Goals: goals})
	high := fallback.NutritionTargets(fallback.NutritionInput{Goals: goals, Readiness: readiness(domain.ReadinessHigh)})

	require.Equal(t, 1800, medium.Calories)
	require.Equal(t, 1620, low.Calories)
	require.Equal(t, 1980, high.Calories)
	require.Less(t, low.Calories, high.Calories)

	gap := float64(high.Calories-low.Calories) / float64(medium.Calories)
	require.GreaterOrEqual(t, gap, 0.10)
	require.LessOrEqual(t, gap, 0.30)

	require.Equal(t, medium.WaterMl+250, low.WaterMl)
	require.Contains(t, low.Rationale, "low readiness")
	require.Contains(t, medium.Rationale, "unknown readiness")
}

func TestNutritionTargets_BodyStats(t *testing.T) {
	body := &domain.BodyStats{WeightKg: 80, HeightCm: 180, Age: 30, Sex: domain.SexMale, Activity: domain.ActivityModerate}

	got := fallback.NutritionTargets(fallback.NutritionInput{Goals: []string{"stay healthy"}, Body: body})

	// (800 + 1125 - 150 + 5) × 1.55
	require.Equal(t, 2759, got.Calories)
	require.Equal(t, 2800, got.WaterMl)

	cut := fallback.NutritionTargets(fallback.NutritionInput{Goals: []string{"cut"}, Body: body})
	require.Equal(t, int(math.Round(1780*1.55*0.8)), cut.Calories)

	partial := fallback.NutritionTargets(fallback.NutritionInput{Goals: []string{"bulk"}, Body: &domain.BodyStats{WeightKg: 90}})
	require.Equal(t, 2600, partial.Calories)
	require.Equal(t, 3150, partial.WaterMl)
}

func TestNutritionTargets_PassStrictValidation(t *testing.T) {
	goals := [][]string{{"fat loss"}, {"muscle gain"}, {"maintenance"}, nil}
	levels := []*domain.ReadinessContext{nil, readiness(domain.ReadinessLow), readiness(domain.ReadinessMedium), readiness(domain.ReadinessHigh)}
	bodies := []*domain.BodyStats{
		nil,
		{WeightKg: 45, HeightCm: 150, Age: 70, Sex: domain.SexFemale, Activity: domain.ActivitySedentary},
		{WeightKg: 140, HeightCm: 200, Age: 20, Sex: domain.SexMale, Activity: domain.ActivityVeryActive},
	}

	for _, g := range goals {
		for _, rc := range levels {
			for _, body := range bodies {
				targets := fallback.NutritionTargets(fallback.NutritionInput{Goals: g, Body: body, Readiness: rc})

				require.Positive(t, targets.Calories)
				require.GreaterOrEqual(t, targets.ProteinGrams, 0)
				require.GreaterOrEqual(t, targets.CarbGrams, 0)
				require.GreaterOrEqual(t, targets.FatGrams, 0)
				require.Positive(t, targets.WaterMl)
				require.NotEmpty(t, targets.Rationale)

				encoded, err := json.Marshal(targets)
				require.NoError(t, err)
				require.NoError(t, normalize.ValidateNutritionTargets(domain.RawCompletion(encoded)))
				require.Equal(t, targets, normalize.NutritionTargets(domain.RawCompletion(encoded), domain.DailyNutritionTargets{}))
			}
		}
	}
}

func TestExerciseCount(t *testing.T) {
	low := domain.ReadinessBands[domain.ReadinessLow].VolumeFactor()
	high := domain.ReadinessBands[domain.ReadinessHigh].VolumeFactor()

	require.Equal(t, 5, fallback.ExerciseCount(30, 1))
	require.Equal(t, 4, fallback.ExerciseCount(30, low))
	require.Equal(t, 6, fallback.ExerciseCount(30, high))
	require.Equal(t, 4, fallback.ExerciseCount(5, 1))
	require.Equal(t, 8, fallback.ExerciseCount(240, high))
}

func TestWorkoutPlan_Invariants(t *testing.T) {
	difficulties := []domain.Difficulty{domain.DifficultyBeginner, domain.DifficultyIntermediate, domain.DifficultyAdvanced, "bogus"}
	durations := []int{0, 5, 20, 45, 90, 240, 1000}
	levels := []*domain.ReadinessContext{nil, readiness(domain.ReadinessLow), readiness(domain.ReadinessHigh)}
	goals := [][]string{{"fat loss"}, {"muscle"}, nil}

	for _, d := range difficulties {
		for _, minutes := range durations {
			for _, rc := range levels {
				for _, g := range goals {
					in := fallback.WorkoutInput{
						Goals:     g,
						Shape:     normalize.WorkoutShape{Difficulty: d, DurationMinutes: minutes},
						Readiness: rc,
					}
					plan := fallback.WorkoutPlan(in)

					require.NotEmpty(t, plan.Name)
					require.NotEmpty(t, plan.Description)
					require.NotEmpty(t, plan.Category)
					require.GreaterOrEqual(t, len(plan.Exercises), 4)
					require.LessOrEqual(t, len(plan.Exercises), 8)
					require.LessOrEqual(t, len(plan.MuscleGroups), domain.MaxMuscleGroups)
					require.Equal(t, []string{"bodyweight"}, plan.Equipment)
					require.Equal(t, reward.WorkoutXP(plan.Difficulty, plan.DurationMinutes), plan.XPReward)
					require.Positive(t, plan.Calories)

					for _, e := range plan.Exercises {
						require.NotEmpty(t, e.Name)
						require.Positive(t, e.Sets)
						require.Positive(t, e.Reps)
						require.Positive(t, e.RestSeconds)
						require.NotEmpty(t, e.MuscleGroups)
					}

					encoded, err := json.Marshal(plan)
					require.NoError(t, err)
					require.Equal(t, plan, normalize.WorkoutPlan(domain.RawCompletion(encoded), in.Shape))
				}
			}
		}
	}
}

func TestWorkoutPlan_ReadinessScalesVolume(t *testing.T) {
	shape := normalize.WorkoutShape{Difficulty: domain.DifficultyIntermediate, DurationMinutes: 30}

	low := fallback.WorkoutPlan(fallback.WorkoutInput{Shape: shape, Readiness: readiness(domain.ReadinessLow)})
	medium := fallback.WorkoutPlan(fallback.WorkoutInput{Shape: shape})
	high := fallback.WorkoutPlan(fallback.WorkoutInput{Shape: shape, Readiness: readiness(domain.ReadinessHigh)})

	require.Less(t, len(low.Exercises), len(medium.Exercises))
	require.Less(t, len(medium.Exercises), len(high.Exercises))
	require.LessOrEqual(t, low.Exercises[0].Sets, medium.Exercises[0].Sets)
	require.Greater(t, low.Exercises[0].RestSeconds, medium.Exercises[0].RestSeconds)
}
