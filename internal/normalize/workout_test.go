package normalize_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/fitforge/internal/domain"
	"github.com/davidbz/fitforge/internal/normalize"
	"github.com/davidbz/fitforge/internal/reward"
)

func requireCompletePlan(t *testing.T, plan domain.WorkoutPlan) {
	t.Helper()

	require.NotEmpty(t, strings.TrimSpace(plan.Name))
	require.NotEmpty(t, strings.TrimSpace(plan.Description))
	require.NotEmpty(t, strings.TrimSpace(plan.Category))
	_, ok := domain.ParseDifficulty(string(plan.Difficulty))
	require.True(t, ok, "difficulty %q", plan.Difficulty)
	require.Positive(t, plan.DurationMinutes)
	require.Positive(t, plan.Calories)
	require.Equal(t, reward.WorkoutXP(plan.Difficulty, plan.DurationMinutes), plan.XPReward)

	require.GreaterOrEqual(t, len(plan.Exercises), 1)
	require.LessOrEqual(t, len(plan.Exercises), domain.MaxExercises)
	require.NotEmpty(t, plan.Equipment)
	require.NotEmpty(t, plan.MuscleGroups)
	require.LessOrEqual(t, len(plan.MuscleGroups), domain.MaxMuscleGroups)

	for _, e := range plan.Exercises {
		require.NotEmpty(t, strings.TrimSpace(e.Name))
		require.NotEmpty(t, strings.TrimSpace(e.Description))
		require.Positive(t, e.Sets)
		require.Positive(t, e.Reps)
		require.GreaterOrEqual(t, e.RestSeconds, 0)
		require.NotEmpty(t, e.MuscleGroups)
		require.NotEmpty(t, e.Equipment)
		_, ok := domain.ParseDifficulty(string(e.Difficulty))
		require.True(t, ok)
	}
}

func TestWorkoutPlan_ValidPayload(t *testing.T) {
	raw := domain.RawCompletion(`{
		"name": "Upper Body Strength",
		"description": "Push and pull supersets.",
		"difficulty": "advanced",
		"durationMinutes": 45,
		"category": "strength",
		"exercises": [
			{"name": "Push-up", "sets": 4, "reps": 15, "restSeconds": 45,
			 "description": "Chest to floor.", "muscleGroups": ["Chest", "triceps"],
			 "equipment": ["bodyweight"], "difficulty": "intermediate"},
			{"name": "Plank", "sets": 3, "reps": 1, "durationSeconds": 60, "restSeconds": 30,
			 "description": "Brace the core.", "muscleGroups": ["core"], "equipment": ["mat"]}
		],
		"equipment": ["barbell"],
		"muscleGroups": ["legs"],
		"calories": 380,
		"xpReward": 99999
	}`)

	plan := normalize.WorkoutPlan(raw, normalize.DefaultWorkoutShape())

	requireCompletePlan(t, plan)
	require.Equal(t, "Upper Body Strength", plan.Name)
	require.Equal(t, domain.DifficultyAdvanced, plan.Difficulty)
	require.Equal(t, 45, plan.DurationMinutes)
	require.Equal(t, "strength", plan.Category)
	require.Equal(t, 380, plan.Calories)
	require.Len(t, plan.Exercises, 2)

	require.Equal(t, domain.DifficultyIntermediate, plan.Exercises[0].Difficulty)
	require.Equal(t, []string{"chest", "triceps"}, plan.Exercises[0].MuscleGroups)
	require.Equal(t, 60, plan.Exercises[1].DurationSeconds)
	require.Equal(t, domain.DifficultyAdvanced, plan.Exercises[1].Difficulty, "inherits plan difficulty")

	// Aggregates come from the exercises, not the payload.
	require.Equal(t, []string{"bodyweight", "mat"}, plan.Equipment)
	require.Equal(t, []string{"chest", "triceps", "core"}, plan.MuscleGroups)
	require.Equal(t, reward.WorkoutXP(domain.DifficultyAdvanced, 45), plan.XPReward)
}

func TestWorkoutPlan_Unparsable(t *testing.T) {
	shape := normalize.WorkoutShape{
		Difficulty:      domain.DifficultyBeginner,
		DurationMinutes: 20,
		Category:        "mobility",
	}

	plan := normalize.WorkoutPlan("the model is having a bad day", shape)

	requireCompletePlan(t, plan)
	require.Equal(t, normalize.DefaultPlanName, plan.Name)
	require.Equal(t, domain.DifficultyBeginner, plan.Difficulty)
	require.Equal(t, 20, plan.DurationMinutes)
	require.Equal(t, "mobility", plan.Category)
	require.Len(t, plan.Exercises, 1)
	require.Equal(t, "Exercise 1", plan.Exercises[0].Name)
	require.Equal(t, domain.EstimateWorkoutCalories(domain.DifficultyBeginner, 20), plan.Calories)
}

func TestWorkoutPlan_ProsePrefixedEmptyExercises(t *testing.T) {
	plan := normalize.WorkoutPlan(`Sure! {"name":"Leg Day","exercises":[]}`, normalize.DefaultWorkoutShape())

	requireCompletePlan(t, plan)
	require.Equal(t, "Leg Day", plan.Name)
	require.Len(t, plan.Exercises, 1)
	require.Equal(t, "Exercise 1", plan.Exercises[0].Name)
}

func TestWorkoutPlan_FieldDefaults(t *testing.T) {
	raw := domain.RawCompletion(`{
		"name": "   ",
		"difficulty": "legendary",
		"durationMinutes": "forty",
		"calories": -50,
		"exercises": [
			{"sets": 0, "reps": 1000, "restSeconds": -1, "muscleGroups": [1, "", "Glutes"], "difficulty": 3},
			"Jumping Jacks",
			42,
			{"name": "Lunge", "sets": 2.6}
		]
	}`)
	shape := normalize.WorkoutShape{Difficulty: domain.DifficultyBeginner, DurationMinutes: 25}

	plan := normalize.WorkoutPlan(raw, shape)

	requireCompletePlan(t, plan)
	require.Equal(t, normalize.DefaultPlanName, plan.Name)
	require.Equal(t, domain.DifficultyBeginner, plan.Difficulty)
	require.Equal(t, 25, plan.DurationMinutes)
	require.Equal(t, normalize.DefaultCategory, plan.Category)
	require.Equal(t, domain.EstimateWorkoutCalories(domain.DifficultyBeginner, 25), plan.Calories)

	require.Len(t, plan.Exercises, 4)
	first := plan.Exercises[0]
	require.Equal(t, "Exercise 1", first.Name)
	require.Equal(t, 3, first.Sets)
	require.Equal(t, 10, first.Reps)
	require.Equal(t, 60, first.RestSeconds)
	require.Equal(t, []string{"glutes"}, first.MuscleGroups)
	require.Equal(t, []string{"bodyweight"}, first.Equipment)
	require.Equal(t, domain.DifficultyBeginner, first.Difficulty)

	require.Equal(t, "Jumping Jacks", plan.Exercises[1].Name)
	require.Equal(t, "Exercise 3", plan.Exercises[2].Name)
	require.Equal(t, "Lunge", plan.Exercises[3].Name)
	require.Equal(t, 3, plan.Exercises[3].Sets, "2.6 rounds to 3")
}

func TestWorkoutPlan_Caps(t *testing.T) {
	items := make([]string, 0, 20)
	for i := range 20 {
		items = append(items, fmt.Sprintf(`{"name":"Move %d","muscleGroups":["group-%d"]}`, i+1, i))
	}
	raw := domain.RawCompletion(`{"name":"Marathon","exercises":[` + strings.Join(items, ",") + `]}`)

	plan := normalize.WorkoutPlan(raw, normalize.DefaultWorkoutShape())

	requireCompletePlan(t, plan)
	require.Len(t, plan.Exercises, domain.MaxExercises)
	require.Equal(t, "Move 12", plan.Exercises[11].Name)
	require.Len(t, plan.MuscleGroups, domain.MaxMuscleGroups)
	require.Equal(t, "group-0", plan.MuscleGroups[0])
	require.Equal(t, "group-7", plan.MuscleGroups[7])
}

func TestWorkoutPlan_InvalidShapeIsSanitized(t *testing.T) {
	plan := normalize.WorkoutPlan("", normalize.WorkoutShape{Difficulty: "nope", DurationMinutes: -3})

	requireCompletePlan(t, plan)
	require.Equal(t, domain.DifficultyIntermediate, plan.Difficulty)
	require.Equal(t, normalize.DefaultDuration, plan.DurationMinutes)
}

func TestWorkoutPlan_Idempotent(t *testing.T) {
	inputs := []domain.RawCompletion{
		"",
		"garbage",
		`Sure! {"name":"Leg Day","exercises":[]}`,
		`{"name":" Full Body ","difficulty":"beginner","durationMinutes":31.4,"exercises":[
			{"name":"Squat","sets":3,"reps":12,"muscleGroups":["Quads","quads","Glutes"]},
			{"name":"Hold","durationSeconds":45,"equipment":["Mat"]}]}`,
	}

	for _, raw := range inputs {
		t.Run(string(raw), func(t *testing.T) {
			shape := normalize.DefaultWorkoutShape()
			first := normalize.WorkoutPlan(raw, shape)

			encoded, err := json.Marshal(first)
			require.NoError(t, err)

			second := normalize.WorkoutPlan(domain.RawCompletion(encoded), shape)
			require.Equal(t, first, second)
		})
	}
}
