package normalize

import (
	"github.com/tidwall/gjson"

	"github.com/davidbz/fitforge/internal/domain"
)

const (
	maxDailyCalories = 10000
	maxMacroGrams    = 1000
	maxWaterMl       = 10000
)

// Accepted keys per numeric nutrition field, canonical first.
var (
	caloriesPaths = []string{"calories", "kcal", "dailyCalories"}
	proteinPaths  = []string{"proteinGrams", "protein_grams", "protein"}
	carbPaths     = []string{"carbGrams", "carb_grams", "carbsGrams", "carbs"}
	fatPaths      = []string{"fatGrams", "fat_grams", "fat"}
	waterPaths    = []string{"waterMl", "water_ml", "water"}
)

func nutritionFields(def domain.DailyNutritionTargets) []field[domain.DailyNutritionTargets] {
	return []field[domain.DailyNutritionTargets]{
		{paths: caloriesPaths, apply: func(v gjson.Result, t *domain.DailyNutritionTargets) {
			t.Calories = intOr(v, 1, maxDailyCalories, def.Calories)
		}},
		{paths: proteinPaths, apply: func(v gjson.Result, t *domain.DailyNutritionTargets) {
			t.ProteinGrams = intOr(v, 0, maxMacroGrams, def.ProteinGrams)
		}},
		{paths: carbPaths, apply: func(v gjson.Result, t *domain.DailyNutritionTargets) {
			t.CarbGrams = intOr(v, 0, maxMacroGrams, def.CarbGrams)
		}},
		{paths: fatPaths, apply: func(v gjson.Result, t *domain.DailyNutritionTargets) {
			t.FatGrams = intOr(v, 0, maxMacroGrams, def.FatGrams)
		}},
		{paths: waterPaths, apply: func(v gjson.Result, t *domain.DailyNutritionTargets) {
			t.WaterMl = intOr(v, 0, maxWaterMl, def.WaterMl)
		}},
		{paths: []string{"rationale", "reason"}, apply: func(v gjson.Result, t *domain.DailyNutritionTargets) {
			t.Rationale = stringOr(v, def.Rationale)
		}},
	}
}

func macroFields(def domain.MacroSplit) []field[domain.MacroSplit] {
	return []field[domain.MacroSplit]{
		{paths: proteinPaths, apply: func(v gjson.Result, m *domain.MacroSplit) {
			m.ProteinGrams = intOr(v, 0, maxMacroGrams, def.ProteinGrams)
		}},
		{paths: carbPaths, apply: func(v gjson.Result, m *domain.MacroSplit) {
			m.CarbGrams = intOr(v, 0, maxMacroGrams, def.CarbGrams)
		}},
		{paths: fatPaths, apply: func(v gjson.Result, m *domain.MacroSplit) {
			m.FatGrams = intOr(v, 0, maxMacroGrams, def.FatGrams)
		}},
		{paths: []string{"note", "notes"}, apply: func(v gjson.Result, m *domain.MacroSplit) {
			m.Note = stringOr(v, def.Note)
		}},
	}
}

// NutritionTargets normalizes raw field by field, taking unusable values from def.
func NutritionTargets(raw domain.RawCompletion, def domain.DailyNutritionTargets) domain.DailyNutritionTargets {
	var targets domain.DailyNutritionTargets
	applyFields(Extract(raw), nutritionFields(def), &targets)
	return targets
}

// MacroSplit normalizes raw field by field, taking unusable values from def.
func MacroSplit(raw domain.RawCompletion, def domain.MacroSplit) domain.MacroSplit {
	var split domain.MacroSplit
	applyFields(Extract(raw), macroFields(def), &split)
	return split
}
