package normalize

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/davidbz/fitforge/internal/domain"
	"github.com/davidbz/fitforge/internal/reward"
)

// Workout defaults.
const (
	DefaultPlanName        = "Personalized Workout"
	DefaultPlanDescription = "A balanced session built around your goals."
	DefaultCategory        = "general"
	DefaultDuration        = 30

	defaultSets                = 3
	defaultReps                = 10
	defaultRestSeconds         = 60
	defaultExerciseDescription = "Perform with controlled form and steady breathing."
	defaultMuscleGroup         = "full body"
	defaultEquipment           = "bodyweight"

	minDuration       = 5
	maxDuration       = 240
	maxSets           = 10
	maxReps           = 100
	maxRest           = 600
	maxHold           = 3600
	maxCalories       = 5000
	placeholderFormat = "Exercise %d"
)

// WorkoutShape supplies the caller's defaults for fields the completion leaves unusable.
type WorkoutShape struct {
	Difficulty      domain.Difficulty
	DurationMinutes int
	Category        string
}

// DefaultWorkoutShape returns an intermediate, 30-minute, general session.
func DefaultWorkoutShape() WorkoutShape {
	return WorkoutShape{
		Difficulty:      domain.DifficultyIntermediate,
		DurationMinutes: DefaultDuration,
		Category:        DefaultCategory,
	}
}

// Sanitize replaces unusable shape fields with the package defaults.
func (s WorkoutShape) Sanitize() WorkoutShape {
	if _, ok := domain.ParseDifficulty(string(s.Difficulty)); !ok {
		s.Difficulty = domain.DifficultyIntermediate
	}
	if s.DurationMinutes < minDuration || s.DurationMinutes > maxDuration {
		s.DurationMinutes = DefaultDuration
	}
	if s.Category == "" {
		s.Category = DefaultCategory
	}
	return s
}

// PlaceholderExerciseName names a synthesized exercise by its 1-based position.
func PlaceholderExerciseName(position int) string {
	return fmt.Sprintf(placeholderFormat, position)
}

func workoutFields(shape WorkoutShape) []field[domain.WorkoutPlan] {
	return []field[domain.WorkoutPlan]{
		{paths: []string{"name", "title"}, apply: func(v gjson.Result, p *domain.WorkoutPlan) {
			p.Name = stringOr(v, DefaultPlanName)
		}},
		{paths: []string{"description"}, apply: func(v gjson.Result, p *domain.WorkoutPlan) {
			p.Description = stringOr(v, DefaultPlanDescription)
		}},
		{paths: []string{"difficulty"}, apply: func(v gjson.Result, p *domain.WorkoutPlan) {
			p.Difficulty = difficultyOr(v, shape.Difficulty)
		}},
		{paths: []string{"durationMinutes", "duration_minutes", "duration"}, apply: func(v gjson.Result, p *domain.WorkoutPlan) {
			p.DurationMinutes = intOr(v, minDuration, maxDuration, shape.DurationMinutes)
		}},
		{paths: []string{"category"}, apply: func(v gjson.Result, p *domain.WorkoutPlan) {
			p.Category = stringOr(v, shape.Category)
		}},
		// Exercise defaults inherit the plan difficulty, so this row runs after "difficulty".
		{paths: []string{"exercises"}, apply: func(v gjson.Result, p *domain.WorkoutPlan) {
			p.Exercises = exercises(v, p.Difficulty)
		}},
		{paths: []string{"calories", "estimatedCalories"}, apply: func(v gjson.Result, p *domain.WorkoutPlan) {
			p.Calories = intOr(v, 1, maxCalories, domain.EstimateWorkoutCalories(p.Difficulty, p.DurationMinutes))
		}},
	}
}

func exerciseFields(position int, planDifficulty domain.Difficulty) []field[domain.Exercise] {
	return []field[domain.Exercise]{
		{paths: []string{"name"}, apply: func(v gjson.Result, e *domain.Exercise) {
			e.Name = stringOr(v, PlaceholderExerciseName(position))
		}},
		{paths: []string{"sets"}, apply: func(v gjson.Result, e *domain.Exercise) {
			e.Sets = intOr(v, 1, maxSets, defaultSets)
		}},
		{paths: []string{"reps"}, apply: func(v gjson.Result, e *domain.Exercise) {
			e.Reps = intOr(v, 1, maxReps, defaultReps)
		}},
		{paths: []string{"durationSeconds", "duration_seconds"}, apply: func(v gjson.Result, e *domain.Exercise) {
			e.DurationSeconds = intOr(v, 0, maxHold, 0)
		}},
		{paths: []string{"restSeconds", "rest_seconds", "rest"}, apply: func(v gjson.Result, e *domain.Exercise) {
			e.RestSeconds = intOr(v, 0, maxRest, defaultRestSeconds)
		}},
		{paths: []string{"description", "instructions"}, apply: func(v gjson.Result, e *domain.Exercise) {
			e.Description = stringOr(v, defaultExerciseDescription)
		}},
		{paths: []string{"muscleGroups", "muscle_groups"}, apply: func(v gjson.Result, e *domain.Exercise) {
			e.MuscleGroups = tagList(v)
			if len(e.MuscleGroups) == 0 {
				e.MuscleGroups = []string{defaultMuscleGroup}
			}
		}},
		{paths: []string{"equipment"}, apply: func(v gjson.Result, e *domain.Exercise) {
			e.Equipment = tagList(v)
			if len(e.Equipment) == 0 {
				e.Equipment = []string{defaultEquipment}
			}
		}},
		{paths: []string{"difficulty"}, apply: func(v gjson.Result, e *domain.Exercise) {
			e.Difficulty = difficultyOr(v, planDifficulty)
		}},
	}
}

func exercises(v gjson.Result, planDifficulty domain.Difficulty) []domain.Exercise {
	var items []gjson.Result
	if v.IsArray() {
		items = v.Array()
	}
	if len(items) > domain.MaxExercises {
		items = items[:domain.MaxExercises]
	}

	out := make([]domain.Exercise, 0, max(len(items), 1))
	for i, item := range items {
		out = append(out, exercise(item, i+1, planDifficulty))
	}

	if len(out) == 0 {
		out = append(out, exercise(gjson.Result{}, 1, planDifficulty))
	}

	return out
}

func exercise(item gjson.Result, position int, planDifficulty domain.Difficulty) domain.Exercise {
	var e domain.Exercise
	applyFields(item, exerciseFields(position, planDifficulty), &e)

	// A bare string element is taken as the exercise name.
	if item.Type == gjson.String {
		e.Name = stringOr(item, e.Name)
	}

	return e
}

// WorkoutPlan normalizes raw into a fully populated plan. Equipment, muscle groups and XP are
// derived from the normalized exercises and never read from the payload.
func WorkoutPlan(raw domain.RawCompletion, shape WorkoutShape) domain.WorkoutPlan {
	shape = shape.Sanitize()

	var plan domain.WorkoutPlan
	applyFields(Extract(raw), workoutFields(shape), &plan)
	Derive(&plan)

	return plan
}

// Derive recomputes the aggregate fields of plan from its exercises.
func Derive(plan *domain.WorkoutPlan) {
	var equipment, muscles []string
	for _, e := range plan.Exercises {
		equipment = appendUnique(equipment, e.Equipment...)
		muscles = appendUnique(muscles, e.MuscleGroups...)
	}
	if len(muscles) > domain.MaxMuscleGroups {
		muscles = muscles[:domain.MaxMuscleGroups]
	}

	plan.Equipment = equipment
	plan.MuscleGroups = muscles
	plan.XPReward = reward.WorkoutXP(plan.Difficulty, plan.DurationMinutes)
}
