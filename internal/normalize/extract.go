// Package normalize maps untrusted completion text onto fully populated domain records.
//
// Parsing never fails: text that holds no JSON object normalizes to pure defaults. Each
// domain variant owns an extractor table that reads its fields from the untyped gjson tree
// and substitutes a default whenever a value is missing, mistyped or out of range.
package normalize

import (
	"regexp"
	"slices"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/davidbz/fitforge/internal/domain"
)

var fencePattern = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)```")

// Extract returns the first JSON object found in raw, or the zero Result when there is none.
// It tries the whole text, then a markdown code fence, then every balanced {...} span.
func Extract(raw domain.RawCompletion) gjson.Result {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return gjson.Result{}
	}

	if obj, ok := parseObject(text); ok {
		return obj
	}

	if m := fencePattern.FindStringSubmatch(text); m != nil {
		if obj, ok := parseObject(strings.TrimSpace(m[1])); ok {
			return obj
		}
	}

	budget := spanBudgetFactor * len(text)
	for _, sp := range braceSpans(text) {
		candidate := text[sp.start : sp.end+1]
		if budget -= len(candidate); budget < 0 {
			break
		}
		if obj, ok := parseObject(candidate); ok {
			return obj
		}
	}

	return gjson.Result{}
}

func parseObject(s string) (gjson.Result, bool) {
	if !gjson.Valid(s) {
		return gjson.Result{}, false
	}
	res := gjson.Parse(s)
	if !res.IsObject() {
		return gjson.Result{}, false
	}
	return res, true
}

// spanBudgetFactor bounds the bytes handed to the JSON validator to a multiple of the input,
// which keeps deeply nested text linear.
const spanBudgetFactor = 4

type span struct {
	start, end int
}

// braceSpans returns every balanced {...} span of s in order of its opening brace. It makes a
// single pass with a stack of open offsets. Quotes count only inside a span, so a stray quote
// in prose cannot hide an object.
func braceSpans(s string) []span {
	var (
		open     []int
		spans    []span
		inString bool
		escaped  bool
	)

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = len(open) > 0
		case '{':
			open = append(open, i)
		case '}':
			if len(open) == 0 {
				continue
			}
			spans = append(spans, span{start: open[len(open)-1], end: i})
			open = open[:len(open)-1]
		}
	}

	slices.SortFunc(spans, func(a, b span) int { return a.start - b.start })

	return spans
}
