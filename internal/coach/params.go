package coach

import "github.com/davidbz/fitforge/internal/domain"

// WorkoutParams is the parameter bag for GenerateWorkoutPlan.
type WorkoutParams struct {
	Goals           []string                 `json:"goals"`
	Restrictions    []string                 `json:"restrictions"`
	Difficulty      domain.Difficulty        `json:"difficulty"`
	DurationMinutes int                      `json:"durationMinutes"`
	Category        string                   `json:"category"`
	Equipment       []string                 `json:"equipment"`
	Readiness       *domain.ReadinessContext `json:"readiness,omitempty"`
}

// NutritionParams is the parameter bag for ComputeNutritionTargets.
type NutritionParams struct {
	Goals        []string                 `json:"goals"`
	Restrictions []string                 `json:"restrictions"`
	Body         *domain.BodyStats        `json:"body,omitempty"`
	Readiness    *domain.ReadinessContext `json:"readiness,omitempty"`
}

// MacroParams is the parameter bag for SuggestMacroSplit. Calories <= 0 uses the default.
type MacroParams struct {
	Goals        []string                 `json:"goals"`
	Restrictions []string                 `json:"restrictions"`
	Calories     int                      `json:"calories"`
	Preset       string                   `json:"preset"`
	Readiness    *domain.ReadinessContext `json:"readiness,omitempty"`
}

// ChatParams is the parameter bag for Chat.
type ChatParams struct {
	Message   string                   `json:"message"`
	Goals     []string                 `json:"goals"`
	Readiness *domain.ReadinessContext `json:"readiness,omitempty"`
}
