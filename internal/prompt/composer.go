// Package prompt builds the role-tagged message lists sent to the generation endpoint.
package prompt

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/davidbz/fitforge/internal/domain"
)

// Contract is the output instruction every structured system message carries verbatim.
const Contract = "respond with ONLY minified JSON matching schema"

// Intent tags the domain request a prompt is built for.
type Intent string

const (
	IntentWorkout   Intent = "workout"
	IntentNutrition Intent = "nutrition"
	IntentMacros    Intent = "macros"
	IntentChat      Intent = "chat"
)

// ErrUnknownIntent is returned for intents without a template.
var ErrUnknownIntent = errors.New("unknown intent")

//go:embed templates/*.gotmpl
var templateFS embed.FS

//go:embed schemas/workout.schema.json
var workoutSchema []byte

//go:embed schemas/nutrition.schema.json
var nutritionSchema []byte

//go:embed schemas/macros.schema.json
var macrosSchema []byte

//nolint:gochecknoglobals // Parsed once from embedded files
var (
	templates = template.Must(template.New("prompt").Funcs(template.FuncMap{"join": strings.Join}).ParseFS(templateFS, "templates/*.gotmpl"))

	schemas = map[Intent]string{
		IntentWorkout:   mustCompact(workoutSchema),
		IntentNutrition: mustCompact(nutritionSchema),
		IntentMacros:    mustCompact(macrosSchema),
	}
)

func mustCompact(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		panic(fmt.Sprintf("compact embedded schema: %v", err))
	}
	return buf.String()
}

// DefaultGoals are used when neither the request nor the stored profile names any goal.
//
//nolint:gochecknoglobals // Read-only default
var DefaultGoals = []string{"general fitness"}

// Params is the parameter bag for a single prompt. Fields irrelevant to an intent are ignored.
type Params struct {
	Goals        []string
	Restrictions []string
	Readiness    *domain.ReadinessContext

	// Workout.
	Difficulty      domain.Difficulty
	DurationMinutes int
	Category        string
	Equipment       []string

	// Nutrition.
	Body *domain.BodyStats

	// Macros.
	Calories int
	Preset   string

	// Chat.
	Message string
}

// Composer renders GenerationRequests. It is safe for concurrent use.
type Composer struct {
	defaultGoals []string
}

// NewComposer creates a composer that substitutes defaultGoals for empty request goals.
func NewComposer(defaultGoals []string) *Composer {
	goals := cleanList(defaultGoals)
	if len(goals) == 0 {
		goals = DefaultGoals
	}
	return &Composer{defaultGoals: goals}
}

// Goals returns the cleaned request goals, or the stored default goals when none remain.
func (c *Composer) Goals(goals []string) []string {
	if cleaned := cleanList(goals); len(cleaned) > 0 {
		return cleaned
	}
	return slices.Clone(c.defaultGoals)
}

type view struct {
	Intent       Intent
	Schema       string
	Rules        []string
	Goals        []string
	Restrictions []string
	Equipment    []string
	Constraints  string
	Recovery     string
	Message      string
}

// Compose returns exactly one system message followed by exactly one user message.
func (c *Composer) Compose(intent Intent, params Params) (domain.GenerationRequest, error) {
	schema, structured := schemas[intent]
	if !structured && intent != IntentChat {
		return domain.GenerationRequest{}, fmt.Errorf("%w: %q", ErrUnknownIntent, intent)
	}

	message := strings.TrimSpace(params.Message)
	if intent == IntentChat && message == "" {
		return domain.GenerationRequest{}, errors.New("chat message cannot be empty")
	}

	goals := c.Goals(params.Goals)

	v := view{
		Intent:       intent,
		Schema:       schema,
		Goals:        goals,
		Restrictions: cleanList(params.Restrictions),
		Equipment:    cleanList(params.Equipment),
		Constraints:  constraints(intent, params),
		Message:      message,
	}
	if params.Readiness != nil {
		v.Rules = ReadinessRules()
		v.Recovery = TodayRecovery(params.Readiness)
	}

	system, err := render("system.gotmpl", v)
	if err != nil {
		return domain.GenerationRequest{}, err
	}
	user, err := render(string(intent)+".gotmpl", v)
	if err != nil {
		return domain.GenerationRequest{}, err
	}

	return domain.GenerationRequest{
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: system},
			{Role: domain.RoleUser, Content: user},
		},
	}, nil
}

func render(name string, v view) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, v); err != nil {
		return "", fmt.Errorf("execute %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// TodayRecovery renders the compact readiness clause appended to user messages.
func TodayRecovery(rc *domain.ReadinessContext) string {
	if rc == nil {
		return ""
	}
	level := domain.ParseReadinessLevel(string(rc.Level))
	if note := strings.TrimSpace(rc.Descriptor); note != "" {
		return fmt.Sprintf("TodayRecovery(level=%s, note=%s)", level, strconv.Quote(note))
	}
	return fmt.Sprintf("TodayRecovery(level=%s)", level)
}

// constraints renders the numeric and enum parameters of intent as key=value pairs in a
// fixed order.
func constraints(intent Intent, p Params) string {
	var pairs []string
	add := func(key, value string) {
		if value != "" {
			pairs = append(pairs, key+"="+value)
		}
	}
	positive := func(n int) string {
		if n <= 0 {
			return ""
		}
		return strconv.Itoa(n)
	}

	switch intent {
	case IntentWorkout:
		add("durationMinutes", positive(p.DurationMinutes))
		if d, ok := domain.ParseDifficulty(string(p.Difficulty)); ok {
			add("difficulty", string(d))
		}
		add("category", strings.TrimSpace(p.Category))
	case IntentMacros:
		add("calories", positive(p.Calories))
		add("preset", strings.TrimSpace(p.Preset))
	case IntentNutrition, IntentChat:
	}

	if intent != IntentChat && p.Body != nil {
		if p.Body.WeightKg > 0 {
			add("weightKg", strconv.FormatFloat(p.Body.WeightKg, 'f', -1, 64))
		}
		if p.Body.HeightCm > 0 {
			add("heightCm", strconv.FormatFloat(p.Body.HeightCm, 'f', -1, 64))
		}
		add("age", positive(p.Body.Age))
		add("sex", strings.ToLower(strings.TrimSpace(string(p.Body.Sex))))
		add("activity", strings.ToLower(strings.TrimSpace(string(p.Body.Activity))))
	}

	return strings.Join(pairs, ", ")
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
