package domain

import (
	"math"
	"time"
)

// Message roles accepted by the generation endpoint.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message represents a role-tagged prompt entry.
type Message struct {
	Role    string `json:"role"` // system, user
	Content string `json:"content"`
}

// GenerationRequest is the ordered message list sent to the generation endpoint.
// System messages always precede the single user message.
type GenerationRequest struct {
	Messages []Message `json:"messages"`
}

// RawCompletion is the untrusted text returned by the generation endpoint.
type RawCompletion string

// CompletionResponse is a provider's successfully shaped envelope.
type CompletionResponse struct {
	ID         string        `json:"id"`
	Provider   string        `json:"provider"`
	Content    RawCompletion `json:"content"`
	FinishTime time.Time     `json:"finish_time"`
}

// Difficulty is the closed set of workout difficulty levels.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ParseDifficulty returns the difficulty for s and whether it was a known literal.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch d := Difficulty(s); d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return d, true
	default:
		return "", false
	}
}

// Exercise is a single movement within a workout plan.
type Exercise struct {
	Name            string     `json:"name"`
	Sets            int        `json:"sets"`
	Reps            int        `json:"reps"`
	DurationSeconds int        `json:"durationSeconds,omitempty"` // 0 for rep-based work
	RestSeconds     int        `json:"restSeconds"`
	Description     string     `json:"description"`
	MuscleGroups    []string   `json:"muscleGroups"`
	Equipment       []string   `json:"equipment"`
	Difficulty      Difficulty `json:"difficulty"`
}

// WorkoutPlan is a fully populated training session.
type WorkoutPlan struct {
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Difficulty      Difficulty `json:"difficulty"`
	DurationMinutes int        `json:"durationMinutes"`
	Category        string     `json:"category"`
	Exercises       []Exercise `json:"exercises"`
	Equipment       []string   `json:"equipment"`
	MuscleGroups    []string   `json:"muscleGroups"`
	Calories        int        `json:"calories"`
	XPReward        int        `json:"xpReward"`
}

// Plan shape limits.
const (
	MaxExercises    = 12
	MaxMuscleGroups = 8
)

// DailyNutritionTargets are the per-day energy, macro and hydration targets.
type DailyNutritionTargets struct {
	Calories     int    `json:"calories"`
	ProteinGrams int    `json:"proteinGrams"`
	CarbGrams    int    `json:"carbGrams"`
	FatGrams     int    `json:"fatGrams"`
	WaterMl      int    `json:"waterMl"`
	Rationale    string `json:"rationale,omitempty"`
}

// MacroSplit distributes a calorie figure across macronutrients.
type MacroSplit struct {
	ProteinGrams int    `json:"proteinGrams"`
	CarbGrams    int    `json:"carbGrams"`
	FatGrams     int    `json:"fatGrams"`
	Note         string `json:"note,omitempty"`
}

// Energy density of each macronutrient in kcal per gram.
const (
	KcalPerGramProtein = 4
	KcalPerGramCarb    = 4
	KcalPerGramFat     = 9
)

// MacroKcal returns the energy carried by the given macronutrient grams.
func MacroKcal(protein, carb, fat int) int {
	return protein*KcalPerGramProtein + carb*KcalPerGramCarb + fat*KcalPerGramFat
}

// RewardEvent is a write-once gamification ledger entry.
type RewardEvent struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	BaseAmount  int       `json:"baseAmount"`
	Multiplier  float64   `json:"multiplier"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
}

// XP returns the experience points granted by the event.
func (e RewardEvent) XP() int {
	return int(math.Round(float64(e.BaseAmount) * e.Multiplier))
}

// EstimateWorkoutCalories approximates energy expenditure from difficulty and duration.
func EstimateWorkoutCalories(d Difficulty, minutes int) int {
	perMinute := 5
	switch d {
	case DifficultyIntermediate:
		perMinute = 7
	case DifficultyAdvanced:
		perMinute = 9
	}
	if minutes < 1 {
		minutes = 1
	}
	return perMinute * minutes
}
