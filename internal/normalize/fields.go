package normalize

import (
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/davidbz/fitforge/internal/domain"
)

// field is one row of a variant's extractor table. paths lists accepted keys, canonical first.
type field[T any] struct {
	paths []string
	apply func(v gjson.Result, out *T)
}

func applyFields[T any](obj gjson.Result, table []field[T], out *T) {
	for _, f := range table {
		f.apply(lookup(obj, f.paths...), out)
	}
}

// lookup returns the first present key. gjson path syntax is bypassed so keys are literal.
func lookup(obj gjson.Result, paths ...string) gjson.Result {
	if !obj.IsObject() {
		return gjson.Result{}
	}

	fields := obj.Map()
	for _, p := range paths {
		if v, ok := fields[p]; ok {
			return v
		}
	}

	return gjson.Result{}
}

func stringOr(v gjson.Result, def string) string {
	if v.Type != gjson.String {
		return def
	}
	if s := strings.TrimSpace(v.Str); s != "" {
		return s
	}
	return def
}

func finite(v gjson.Result) (float64, bool) {
	if v.Type != gjson.Number {
		return 0, false
	}
	if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
		return 0, false
	}
	return v.Num, true
}

// intOr rounds a finite JSON number and keeps it when it lies within [lo, hi].
func intOr(v gjson.Result, lo, hi, def int) int {
	f, ok := finite(v)
	if !ok {
		return def
	}
	r := math.Round(f)
	if r < float64(lo) || r > float64(hi) {
		return def
	}
	return int(r)
}

func difficultyOr(v gjson.Result, def domain.Difficulty) domain.Difficulty {
	if v.Type != gjson.String {
		return def
	}
	if d, ok := domain.ParseDifficulty(strings.ToLower(strings.TrimSpace(v.Str))); ok {
		return d
	}
	return def
}

// tagList keeps non-empty string elements, trimmed, lowercased and deduplicated in order.
func tagList(v gjson.Result) []string {
	if !v.IsArray() {
		return nil
	}

	var out []string
	for _, item := range v.Array() {
		if item.Type != gjson.String {
			continue
		}
		out = appendUnique(out, item.Str)
	}
	return out
}

func appendUnique(list []string, values ...string) []string {
	for _, raw := range values {
		tag := strings.ToLower(strings.TrimSpace(raw))
		if tag == "" {
			continue
		}
		seen := false
		for _, existing := range list {
			if existing == tag {
				seen = true
				break
			}
		}
		if !seen {
			list = append(list, tag)
		}
	}
	return list
}
