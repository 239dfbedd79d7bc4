package fallback

import (
	"fmt"
	"math"

	"github.com/davidbz/fitforge/internal/domain"
	"github.com/davidbz/fitforge/internal/normalize"
)

const (
	minFallbackExercises = 4
	maxFallbackExercises = 8
	minutesPerExercise   = 6

	minSets, maxSets       = 1, 5
	minReps, maxReps       = 5, 20
	minHold, maxHold       = 15, 90
	minRest, maxRest       = 30, 120
	fallbackEquipment      = "bodyweight"
	fallbackDescriptionFmt = "%s Built offline from safe bodyweight movements."
)

type movement struct {
	name        string
	description string
	muscles     []string
	reps        int
	hold        int // seconds; 0 for rep-based work
}

//nolint:gochecknoglobals // Read-only movement pool
var pool = []movement{
	{name: "Bodyweight Squat", description: "Sit back to parallel, drive through the heels.", muscles: []string{"quads", "glutes"}, reps: 12},
	{name: "Push-up", description: "Keep a straight line from head to heels; knees down if needed.", muscles: []string{"chest", "triceps", "shoulders"}, reps: 10},
	{name: "Glute Bridge", description: "Squeeze the glutes at the top and pause for a second.", muscles: []string{"glutes", "hamstrings"}, reps: 12},
	{name: "Plank", description: "Brace the core and breathe steadily.", muscles: []string{"core"}, reps: 1, hold: 30},
	{name: "Reverse Lunge", description: "Step back softly and keep the front knee over the ankle.", muscles: []string{"quads", "glutes"}, reps: 10},
	{name: "Mountain Climber", description: "Drive the knees under the chest at a steady pace.", muscles: []string{"core", "shoulders"}, reps: 16},
	{name: "Superman Hold", description: "Lift arms and legs gently without straining the neck.", muscles: []string{"lower back"}, reps: 1, hold: 20},
	{name: "Dead Bug", description: "Press the lower back into the floor while alternating limbs.", muscles: []string{"core"}, reps: 10},
	{name: "Wall Sit", description: "Hold thighs parallel to the floor with the back flat on the wall.", muscles: []string{"quads"}, reps: 1, hold: 30},
	{name: "Inchworm", description: "Walk the hands out to a plank and back with soft knees.", muscles: []string{"hamstrings", "shoulders"}, reps: 6},
}

// Pool indexes in the order each goal draws from.
//
//nolint:gochecknoglobals // Read-only lookup table
var poolOrder = map[Goal][]int{
	GoalFatLoss:     {5, 0, 1, 4, 9, 3, 2, 7, 8, 6},
	GoalMuscleGain:  {1, 0, 4, 2, 8, 3, 9, 6, 7, 5},
	GoalMaintenance: {0, 1, 2, 3, 4, 7, 9, 5, 6, 8},
}

//nolint:gochecknoglobals // Read-only lookup tables
var (
	planNames = map[Goal]string{
		GoalFatLoss:     "Bodyweight Conditioning Circuit",
		GoalMuscleGain:  "Bodyweight Strength Builder",
		GoalMaintenance: "Bodyweight Full Body Session",
	}

	readinessNotes = map[domain.ReadinessLevel]string{
		domain.ReadinessLow:    "Volume is reduced for a low-readiness day.",
		domain.ReadinessMedium: "Standard volume.",
		domain.ReadinessHigh:   "Volume is raised slightly for a high-readiness day.",
	}

	baseSets = map[domain.Difficulty]float64{
		domain.DifficultyBeginner:     2,
		domain.DifficultyIntermediate: 3,
		domain.DifficultyAdvanced:     4,
	}

	repFactor = map[domain.Difficulty]float64{
		domain.DifficultyBeginner:     0.8,
		domain.DifficultyIntermediate: 1,
		domain.DifficultyAdvanced:     1.25,
	}

	baseRest = map[domain.Difficulty]float64{
		domain.DifficultyBeginner:     75,
		domain.DifficultyIntermediate: 60,
		domain.DifficultyAdvanced:     45,
	}
)

// WorkoutInput carries everything the offline plan depends on.
type WorkoutInput struct {
	Goals     []string
	Shape     normalize.WorkoutShape
	Readiness *domain.ReadinessContext
}

func scaled(base, factor float64, lo, hi int) int {
	return min(max(int(math.Round(base*factor)), lo), hi)
}

// ExerciseCount is the number of pool movements used for a session.
func ExerciseCount(durationMinutes int, volumeFactor float64) int {
	return scaled(float64(durationMinutes)/minutesPerExercise, volumeFactor, minFallbackExercises, maxFallbackExercises)
}

// WorkoutPlan builds a conservative bodyweight session from the movement pool.
func WorkoutPlan(in WorkoutInput) domain.WorkoutPlan {
	shape := in.Shape.Sanitize()
	goal := ClassifyGoal(in.Goals)
	level := domain.ReadinessMedium
	if in.Readiness != nil {
		level = domain.ParseReadinessLevel(string(in.Readiness.Level))
	}
	volume := domain.BandFor(in.Readiness).VolumeFactor()

	order := poolOrder[goal]
	count := ExerciseCount(shape.DurationMinutes, volume)

	exercises := make([]domain.Exercise, 0, count)
	for _, idx := range order[:count] {
		exercises = append(exercises, fallbackExercise(pool[idx], shape.Difficulty, volume))
	}

	plan := domain.WorkoutPlan{
		Name:            planNames[goal],
		Description:     fmt.Sprintf(fallbackDescriptionFmt, readinessNotes[level]),
		Difficulty:      shape.Difficulty,
		DurationMinutes: shape.DurationMinutes,
		Category:        shape.Category,
		Exercises:       exercises,
		Calories:        domain.EstimateWorkoutCalories(shape.Difficulty, shape.DurationMinutes),
	}
	normalize.Derive(&plan)

	return plan
}

func fallbackExercise(m movement, d domain.Difficulty, volume float64) domain.Exercise {
	e := domain.Exercise{
		Name:         m.name,
		Sets:         scaled(baseSets[d], volume, minSets, maxSets),
		Reps:         m.reps,
		RestSeconds:  scaled(baseRest[d], 1/volume, minRest, maxRest),
		Description:  m.description,
		MuscleGroups: append([]string(nil), m.muscles...),
		Equipment:    []string{fallbackEquipment},
		Difficulty:   d,
	}

	if m.hold > 0 {
		e.DurationSeconds = scaled(float64(m.hold)*repFactor[d], volume, minHold, maxHold)
	} else {
		e.Reps = scaled(float64(m.reps)*repFactor[d], volume, minReps, maxReps)
	}

	return e
}
