package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/fitforge/internal/domain"
	"github.com/davidbz/fitforge/internal/prompt"
)

func requireShape(t *testing.T, req domain.GenerationRequest) (string, string) {
	t.Helper()

	require.Len(t, req.Messages, 2)
	require.Equal(t, domain.RoleSystem, req.Messages[0].Role)
	require.Equal(t, domain.RoleUser, req.Messages[1].Role)
	require.NotEmpty(t, req.Messages[0].Content)
	require.NotEmpty(t, req.Messages[1].Content)

	return req.Messages[0].Content, req.Messages[1].Content
}

func TestCompose_StructuredIntentsCarryContract(t *testing.T) {
	composer := prompt.NewComposer([]string{"fat loss"})

	schemaKeys := map[prompt.Intent]string{
		prompt.IntentWorkout:   `"exercises"`,
		prompt.IntentNutrition: `"waterMl"`,
		prompt.IntentMacros:    `"proteinGrams"`,
	}

	for intent, key := range schemaKeys {
		t.Run(string(intent), func(t *testing.T) {
			req, err := composer.Compose(intent, prompt.Params{Calories: 2000})
			require.NoError(t, err)

			system, _ := requireShape(t, req)
			require.Contains(t, system, prompt.Contract)
			require.Contains(t, system, key)
			require.NotContains(t, system, "\n  ", "schema is minified")
		})
	}
}

func TestCompose_DefaultGoals(t *testing.T) {
	composer := prompt.NewComposer([]string{"build muscle", " "})

	req, err := composer.Compose(prompt.IntentWorkout, prompt.Params{Goals: []string{"", "  "}})
	require.NoError(t, err)
	_, user := requireShape(t, req)
	require.Contains(t, user, "Goals: build muscle.")

	req, err = composer.Compose(prompt.IntentWorkout, prompt.Params{Goals: []string{"run 10k", "mobility"}})
	require.NoError(t, err)
	_, user = requireShape(t, req)
	require.Contains(t, user, "Goals: run 10k, mobility.")
	require.NotContains(t, user, "build muscle")

	req, err = prompt.NewComposer(nil).Compose(prompt.IntentNutrition, prompt.Params{})
	require.NoError(t, err)
	_, user = requireShape(t, req)
	require.Contains(t, user, "Goals: general fitness.")
}

func TestComposer_Goals(t *testing.T) {
	composer := prompt.NewComposer([]string{"fat loss"})

	t.Run("request goals are trimmed", func(t *testing.T) {
		require.Equal(t, []string{"run 10k"}, composer.Goals([]string{" run 10k ", ""}))
	})

	t.Run("empty request uses stored goals", func(t *testing.T) {
		goals := composer.Goals(nil)
		require.Equal(t, []string{"fat loss"}, goals)

		goals[0] = "changed"
		require.Equal(t, []string{"fat loss"}, composer.Goals([]string{" "}))
	})
}

func TestCompose_Restrictions(t *testing.T) {
	composer := prompt.NewComposer(nil)

	req, err := composer.Compose(prompt.IntentNutrition, prompt.Params{})
	require.NoError(t, err)
	_, user := requireShape(t, req)
	require.NotContains(t, user, "Restrictions")

	req, err = composer.Compose(prompt.IntentNutrition, prompt.Params{Restrictions: []string{"vegan", "no nuts"}})
	require.NoError(t, err)
	_, user = requireShape(t, req)
	require.Contains(t, user, "Restrictions: vegan, no nuts.")
}

func TestCompose_Readiness(t *testing.T) {
	composer := prompt.NewComposer(nil)

	t.Run("absent", func(t *testing.T) {
		req, err := composer.Compose(prompt.IntentWorkout, prompt.Params{})
		require.NoError(t, err)

		system, user := requireShape(t, req)
		require.NotContains(t, user, "TodayRecovery")
		require.NotContains(t, system, "TodayRecovery")
	})

	t.Run("present", func(t *testing.T) {
		rc := &domain.ReadinessContext{Level: domain.ReadinessLow, Descriptor: "poor sleep"}

		req, err := composer.Compose(prompt.IntentWorkout, prompt.Params{Readiness: rc})
		require.NoError(t, err)

		system, user := requireShape(t, req)
		require.True(t, strings.HasSuffix(user, `TodayRecovery(level=low, note="poor sleep")`))
		require.Contains(t, system, "low: reduce training volume and intensity by 20-40%")
		require.Contains(t, system, "high: increase training volume and intensity by 10-20%")
		require.Contains(t, system, "add 250 ml water")
	})
}

func TestReadinessRules(t *testing.T) {
	rules := prompt.ReadinessRules()

	require.Equal(t, []string{
		"low: reduce training volume and intensity by 20-40%; reduce calories by 5-15%; emphasize recovery foods and add 250 ml water",
		"medium: keep training volume and intensity unchanged; keep calories unchanged",
		"high: increase training volume and intensity by 10-20%; increase calories by 5-15%",
	}, rules)
}

func TestTodayRecovery(t *testing.T) {
	require.Empty(t, prompt.TodayRecovery(nil))
	require.Equal(t, "TodayRecovery(level=high)", prompt.TodayRecovery(&domain.ReadinessContext{Level: "HIGH"}))
	require.Equal(t, "TodayRecovery(level=medium)", prompt.TodayRecovery(&domain.ReadinessContext{Level: "weird"}))
}

func TestCompose_ConstraintsInStableOrder(t *testing.T) {
	composer := prompt.NewComposer(nil)
	params := prompt.Params{
		Difficulty:      domain.DifficultyAdvanced,
		DurationMinutes: 45,
		Category:        "strength",
		Equipment:       []string{"dumbbells"},
		Body:            &domain.BodyStats{WeightKg: 72.5, HeightCm: 178, Age: 34, Sex: "Female", Activity: domain.ActivityActive},
	}

	first, err := composer.Compose(prompt.IntentWorkout, params)
	require.NoError(t, err)
	second, err := composer.Compose(prompt.IntentWorkout, params)
	require.NoError(t, err)
	require.Equal(t, first, second)

	_, user := requireShape(t, first)
	require.Contains(t, user, "Available equipment: dumbbells.")
	require.Contains(t, user,
		"Constraints: durationMinutes=45, difficulty=advanced, category=strength, weightKg=72.5, heightCm=178, age=34, sex=female, activity=active.")
}

func TestCompose_Macros(t *testing.T) {
	req, err := prompt.NewComposer(nil).Compose(prompt.IntentMacros, prompt.Params{Calories: 2000, Preset: "keto"})
	require.NoError(t, err)

	_, user := requireShape(t, req)
	require.Contains(t, user, "Constraints: calories=2000, preset=keto.")
}

func TestCompose_Chat(t *testing.T) {
	composer := prompt.NewComposer(nil)

	req, err := composer.Compose(prompt.IntentChat, prompt.Params{Message: "  Should I train today?  "})
	require.NoError(t, err)

	system, user := requireShape(t, req)
	require.NotContains(t, system, prompt.Contract)
	require.True(t, strings.HasPrefix(user, "Should I train today?"))

	_, err = composer.Compose(prompt.IntentChat, prompt.Params{Message: "   "})
	require.Error(t, err)
}

func TestCompose_UnknownIntent(t *testing.T) {
	_, err := prompt.NewComposer(nil).Compose("yoga", prompt.Params{})
	require.ErrorIs(t, err, prompt.ErrUnknownIntent)
}
