// Package fallback computes domain results offline when the generation endpoint cannot.
//
// Everything here is pure and deterministic. Outputs satisfy the same invariants as
// normalized remote results, and readiness adjustments use the same bands the prompt
// states to the endpoint.
package fallback

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/davidbz/fitforge/internal/domain"
)

// ErrUnknownPreset is returned for a macro preset key that is not in the table.
var ErrUnknownPreset = errors.New("unknown macro preset")

// DefaultCalories is used when a caller asks for a split of a non-positive calorie figure.
const DefaultCalories = 2200

// Preset names.
const (
	PresetBalanced    = "balanced"
	PresetKeto        = "keto"
	PresetHighProtein = "high_protein"
)

// Ratio is a macro split in percent of total energy.
type Ratio struct {
	ProteinPct int
	CarbPct    int
	FatPct     int
}

//nolint:gochecknoglobals // Read-only lookup table
var presets = map[string]Ratio{
	PresetBalanced:    {ProteinPct: 30, CarbPct: 40, FatPct: 30},
	PresetKeto:        {ProteinPct: 25, CarbPct: 5, FatPct: 70},
	PresetHighProtein: {ProteinPct: 40, CarbPct: 35, FatPct: 25},
}

// Presets lists the known preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// presetKey folds case and separators so "High-Protein" and "high_protein" match.
func presetKey(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))
}

// LookupPreset resolves name to its canonical preset. An empty name is balanced.
func LookupPreset(name string) (string, Ratio, error) {
	key := presetKey(name)
	if key == "" {
		return PresetBalanced, presets[PresetBalanced], nil
	}

	for canonical, ratio := range presets {
		if presetKey(canonical) == key {
			return canonical, ratio, nil
		}
	}

	return "", Ratio{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// MacroSplit distributes calories across macronutrients using the named preset.
func MacroSplit(calories int, preset string) (domain.MacroSplit, error) {
	name, ratio, err := LookupPreset(preset)
	if err != nil {
		return domain.MacroSplit{}, err
	}
	if calories <= 0 {
		calories = DefaultCalories
	}

	split := splitGrams(calories, ratio)
	split.Note = fmt.Sprintf("%s split (%d/%d/%d) of %d kcal",
		name, ratio.ProteinPct, ratio.CarbPct, ratio.FatPct, calories)

	return split, nil
}

func splitGrams(calories int, ratio Ratio) domain.MacroSplit {
	grams := func(pct, kcalPerGram int) int {
		return int(math.Round(float64(calories) * float64(pct) / 100 / float64(kcalPerGram)))
	}

	return domain.MacroSplit{
		ProteinGrams: grams(ratio.ProteinPct, domain.KcalPerGramProtein),
		CarbGrams:    grams(ratio.CarbPct, domain.KcalPerGramCarb),
		FatGrams:     grams(ratio.FatPct, domain.KcalPerGramFat),
	}
}
