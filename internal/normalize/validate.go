package normalize

import (
	_ "embed"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"

	"github.com/davidbz/fitforge/internal/domain"
)

// EnergyTolerance is the largest accepted relative gap between the calorie figure and the
// energy carried by the macro grams.
const EnergyTolerance = 0.20

// The strict schemas check only what the normalizer cannot repair. They are looser than the
// output schemas in the prompt package: waterMl may be missing because the normalizer
// defaults it, and fractional grams are accepted because they are rounded.
//
//go:embed schemas/nutrition.strict.json
var nutritionSchemaJSON []byte

//go:embed schemas/macros.strict.json
var macroSchemaJSON []byte

//nolint:gochecknoglobals // Schemas compile once
var (
	nutritionSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
		return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(nutritionSchemaJSON))
	})
	macroSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
		return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(macroSchemaJSON))
	})
)

// ValidateNutritionTargets applies the strict check that decides whether a remote answer for
// daily targets can be trusted. The returned error wraps domain.ErrInvalidContent.
func ValidateNutritionTargets(raw domain.RawCompletion) error {
	doc, err := canonicalNumbers(Extract(raw), map[string][]string{
		"calories":     caloriesPaths,
		"proteinGrams": proteinPaths,
		"carbGrams":    carbPaths,
		"fatGrams":     fatPaths,
		"waterMl":      waterPaths,
	})
	if err != nil {
		return fmt.Errorf("%w: nutrition targets: %w", domain.ErrInvalidContent, err)
	}

	if err := validateSchema(nutritionSchema, doc); err != nil {
		return fmt.Errorf("%w: nutrition targets: %w", domain.ErrInvalidContent, err)
	}

	calories, _ := doc["calories"].(float64)
	if err := checkEnergy(doc, calories); err != nil {
		return fmt.Errorf("%w: nutrition targets: %w", domain.ErrInvalidContent, err)
	}

	return nil
}

// ValidateMacroSplit applies the strict check for a macro split of the given calorie figure.
// A non-positive calories skips the energy check. The returned error wraps
// domain.ErrInvalidContent.
func ValidateMacroSplit(raw domain.RawCompletion, calories int) error {
	doc, err := canonicalNumbers(Extract(raw), map[string][]string{
		"proteinGrams": proteinPaths,
		"carbGrams":    carbPaths,
		"fatGrams":     fatPaths,
	})
	if err != nil {
		return fmt.Errorf("%w: macro split: %w", domain.ErrInvalidContent, err)
	}

	if err := validateSchema(macroSchema, doc); err != nil {
		return fmt.Errorf("%w: macro split: %w", domain.ErrInvalidContent, err)
	}

	if calories > 0 {
		if err := checkEnergy(doc, float64(calories)); err != nil {
			return fmt.Errorf("%w: macro split: %w", domain.ErrInvalidContent, err)
		}
	}

	return nil
}

// canonicalNumbers resolves key aliases into a flat document keyed by canonical names.
func canonicalNumbers(obj gjson.Result, paths map[string][]string) (map[string]any, error) {
	if !obj.IsObject() {
		return nil, fmt.Errorf("no JSON object in completion")
	}

	doc := make(map[string]any, len(paths))
	for name, aliases := range paths {
		v := lookup(obj, aliases...)
		if !v.Exists() {
			continue
		}
		if v.Type == gjson.Number && (math.IsInf(v.Num, 0) || math.IsNaN(v.Num)) {
			return nil, fmt.Errorf("%s is not finite", name)
		}
		doc[name] = v.Value()
	}

	return doc, nil
}

func validateSchema(compiled func() (*gojsonschema.Schema, error), doc map[string]any) error {
	schema, err := compiled()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validate schema: %w", err)
	}
	if result.Valid() {
		return nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, schemaErr := range result.Errors() {
		errs = append(errs, schemaErr.String())
	}
	sort.Strings(errs)

	return fmt.Errorf("schema validation failed: %s", strings.Join(errs, "; "))
}

func checkEnergy(doc map[string]any, calories float64) error {
	protein, _ := doc["proteinGrams"].(float64)
	carb, _ := doc["carbGrams"].(float64)
	fat, _ := doc["fatGrams"].(float64)

	kcal := domain.MacroKcal(int(math.Round(protein)), int(math.Round(carb)), int(math.Round(fat)))
	if calories <= 0 {
		return fmt.Errorf("calories must be positive")
	}

	if gap := math.Abs(float64(kcal)-calories) / calories; gap > EnergyTolerance {
		return fmt.Errorf("macros carry %d kcal, %.0f%% away from %.0f kcal", kcal, gap*100, calories)
	}

	return nil
}
