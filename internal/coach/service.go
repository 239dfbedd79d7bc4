// Package coach is the caller-facing API. Each call composes a prompt, sends it through the
// gateway, normalizes or replaces the answer, and then records the reward in a detached
// effects phase.
package coach

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/davidbz/fitforge/internal/domain"
	"github.com/davidbz/fitforge/internal/fallback"
	"github.com/davidbz/fitforge/internal/ledger"
	"github.com/davidbz/fitforge/internal/normalize"
	"github.com/davidbz/fitforge/internal/observability"
	"github.com/davidbz/fitforge/internal/prompt"
	"github.com/davidbz/fitforge/internal/provider/offline"
	"github.com/davidbz/fitforge/internal/readiness"
	"github.com/davidbz/fitforge/internal/reward"
)

const (
	DefaultChatTimeout      = 15 * time.Second
	DefaultEffectsTimeout   = 5 * time.Second
	DefaultReadinessTimeout = 2 * time.Second
)

// ChatFallback is returned by Chat when the generation endpoint cannot answer.
const ChatFallback = "I can't reach your coach right now. Please try again in a moment."

// tailoredRationale fills the rationale of remote targets that omit one.
const tailoredRationale = "Targets tailored to your goals."

// Options tune a Service. Zero fields take the defaults from DefaultOptions.
type Options struct {
	Generation       domain.SendOptions
	Chat             domain.SendOptions
	EffectsTimeout   time.Duration
	ReadinessTimeout time.Duration
	Now              func() time.Time
	NewID            func() string
}

// DefaultOptions returns the production settings.
func DefaultOptions() Options {
	return Options{
		Generation: domain.DefaultSendOptions(),
		Chat: domain.SendOptions{
			Timeout:    DefaultChatTimeout,
			MaxRetries: 0,
			Backoff:    domain.DefaultBackoff,
		},
		EffectsTimeout:   DefaultEffectsTimeout,
		ReadinessTimeout: DefaultReadinessTimeout,
		Now:              time.Now,
		NewID:            uuid.NewString,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Generation.Timeout <= 0 {
		o.Generation = def.Generation
	}
	if o.Chat.Timeout <= 0 {
		o.Chat = def.Chat
	}
	if o.EffectsTimeout <= 0 {
		o.EffectsTimeout = def.EffectsTimeout
	}
	if o.ReadinessTimeout <= 0 {
		o.ReadinessTimeout = def.ReadinessTimeout
	}
	if o.Now == nil {
		o.Now = def.Now
	}
	if o.NewID == nil {
		o.NewID = def.NewID
	}
	return o
}

// Service orchestrates the generation pipeline for every intent. It is safe for concurrent use.
type Service struct {
	composer  *prompt.Composer
	gateway   *domain.GatewayService
	readiness domain.ReadinessProvider
	ledger    domain.RewardLedger
	opts      Options

	effects sync.WaitGroup
}

// NewService creates a new coach service (DI constructor). A nil gateway sends to the offline
// provider, so every call takes the fallback path. Nil readiness reads as none and a nil
// ledger discards events.
func NewService(
	composer *prompt.Composer,
	gateway *domain.GatewayService,
	readinessProvider domain.ReadinessProvider,
	rewardLedger domain.RewardLedger,
	opts Options,
) *Service {
	if composer == nil {
		composer = prompt.NewComposer(nil)
	}
	if gateway == nil {
		gateway = domain.NewGatewayService(offline.NewProvider())
	}
	if readinessProvider == nil {
		readinessProvider = readiness.None{}
	}
	if rewardLedger == nil {
		rewardLedger = ledger.Discard{}
	}

	return &Service{
		composer:  composer,
		gateway:   gateway,
		readiness: readinessProvider,
		ledger:    rewardLedger,
		opts:      opts.withDefaults(),
	}
}

// Wait blocks until every dispatched reward effect has finished.
func (s *Service) Wait() {
	s.effects.Wait()
}

// GenerateWorkoutPlan returns a fully populated plan. Unusable fields of a remote answer are
// defaulted in place; only a gateway failure switches to the offline plan.
func (s *Service) GenerateWorkoutPlan(ctx context.Context, params WorkoutParams) domain.WorkoutPlan {
	ctx = observability.WithIntent(ctx, string(prompt.IntentWorkout))
	rc := s.resolveReadiness(ctx, params.Readiness)
	goals := s.composer.Goals(params.Goals)

	shape := normalize.WorkoutShape{
		Difficulty:      params.Difficulty,
		DurationMinutes: params.DurationMinutes,
		Category:        strings.TrimSpace(params.Category),
	}.Sanitize()

	raw, err := s.generate(ctx, prompt.IntentWorkout, prompt.Params{
		Goals:           goals,
		Restrictions:    params.Restrictions,
		Readiness:       rc,
		Difficulty:      params.Difficulty,
		DurationMinutes: params.DurationMinutes,
		Category:        params.Category,
		Equipment:       params.Equipment,
	}, s.opts.Generation)

	var plan domain.WorkoutPlan
	if err != nil {
		plan = fallback.WorkoutPlan(fallback.WorkoutInput{Goals: goals, Shape: shape, Readiness: rc})
	} else {
		plan = normalize.WorkoutPlan(raw, shape)
	}

	s.dispatch(ctx, reward.ForWorkout(plan, s.stamp()))

	return plan
}

// ComputeNutritionTargets returns daily targets. A gateway failure or an answer that fails
// strict validation is replaced by the offline targets.
func (s *Service) ComputeNutritionTargets(ctx context.Context, params NutritionParams) domain.DailyNutritionTargets {
	ctx = observability.WithIntent(ctx, string(prompt.IntentNutrition))
	rc := s.resolveReadiness(ctx, params.Readiness)
	goals := s.composer.Goals(params.Goals)

	offline := fallback.NutritionTargets(fallback.NutritionInput{
		Goals:     goals,
		Body:      params.Body,
		Readiness: rc,
	})
	targets := offline

	raw, err := s.generate(ctx, prompt.IntentNutrition, prompt.Params{
		Goals:        goals,
		Restrictions: params.Restrictions,
		Readiness:    rc,
		Body:         params.Body,
	}, s.opts.Generation)
	if err == nil {
		if verr := normalize.ValidateNutritionTargets(raw); verr != nil {
			observability.FromContext(ctx).Warn("nutrition targets rejected, using fallback",
				observability.Error(verr))
		} else {
			def := offline
			def.Rationale = tailoredRationale
			targets = normalize.NutritionTargets(raw, def)
		}
	}

	s.dispatch(ctx, reward.ForNutrition(domain.BandTag(rc), s.stamp()))

	return targets
}

// SuggestMacroSplit distributes calories across macronutrients. The only error is an unknown
// preset, reported before any I/O.
func (s *Service) SuggestMacroSplit(ctx context.Context, params MacroParams) (domain.MacroSplit, error) {
	ctx = observability.WithIntent(ctx, string(prompt.IntentMacros))

	preset, _, err := fallback.LookupPreset(params.Preset)
	if err != nil {
		return domain.MacroSplit{}, err
	}

	calories := params.Calories
	if calories <= 0 {
		calories = fallback.DefaultCalories
	}

	offline, err := fallback.MacroSplit(calories, preset)
	if err != nil {
		return domain.MacroSplit{}, err
	}
	split := offline

	rc := s.resolveReadiness(ctx, params.Readiness)

	raw, err := s.generate(ctx, prompt.IntentMacros, prompt.Params{
		Goals:        params.Goals,
		Restrictions: params.Restrictions,
		Readiness:    rc,
		Calories:     calories,
		Preset:       preset,
	}, s.opts.Generation)
	if err == nil {
		if verr := normalize.ValidateMacroSplit(raw, calories); verr != nil {
			observability.FromContext(ctx).Warn("macro split rejected, using fallback",
				observability.Error(verr))
		} else {
			split = normalize.MacroSplit(raw, offline)
		}
	}

	s.dispatch(ctx, reward.ForMacros(domain.BandTag(rc), s.stamp()))

	return split, nil
}

// Chat returns the endpoint's free-text answer, or ChatFallback when there is none.
// Chat grants no reward.
func (s *Service) Chat(ctx context.Context, params ChatParams) string {
	ctx = observability.WithIntent(ctx, string(prompt.IntentChat))
	rc := s.resolveReadiness(ctx, params.Readiness)

	raw, err := s.generate(ctx, prompt.IntentChat, prompt.Params{
		Goals:     params.Goals,
		Readiness: rc,
		Message:   params.Message,
	}, s.opts.Chat)
	if err != nil {
		return ChatFallback
	}

	answer := strings.TrimSpace(string(raw))
	if answer == "" {
		return ChatFallback
	}

	return answer
}

func (s *Service) generate(
	ctx context.Context,
	intent prompt.Intent,
	params prompt.Params,
	opts domain.SendOptions,
) (domain.RawCompletion, error) {
	logger := observability.FromContext(ctx)

	req, err := s.composer.Compose(intent, params)
	if err != nil {
		logger.Error("failed to compose prompt", observability.Error(err))
		return "", err
	}

	started := time.Now()
	raw, err := s.gateway.Send(ctx, &req, opts)
	if err != nil {
		logger.Warn("generation failed, using fallback",
			observability.Duration("latency", time.Since(started)),
			observability.Error(err))
		return "", err
	}

	logger.Debug("generation completed",
		observability.Int("chars", len(raw)),
		observability.Duration("latency", time.Since(started)))

	return raw, nil
}

// resolveReadiness prefers the caller's context and otherwise asks the provider. Provider
// errors and panics read as no readiness.
func (s *Service) resolveReadiness(ctx context.Context, explicit *domain.ReadinessContext) (rc *domain.ReadinessContext) {
	if explicit != nil {
		return explicit
	}

	logger := observability.FromContext(ctx)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("readiness provider panicked", observability.Any("panic", r))
			rc = nil
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, s.opts.ReadinessTimeout)
	defer cancel()

	current, err := s.readiness.Current(ctx)
	if err != nil {
		logger.Warn("readiness unavailable", observability.Error(err))
		return nil
	}

	return current
}

func (s *Service) stamp() reward.Stamp {
	return reward.Stamp{ID: s.opts.NewID(), Date: s.opts.Now()}
}

// dispatch hands event to the ledger exactly once, after the result is final. The effect
// outlives the caller's context and never reports back.
func (s *Service) dispatch(ctx context.Context, event domain.RewardEvent) {
	logger := observability.FromContext(ctx).With(
		observability.String("reward_id", event.ID),
		observability.String("category", event.Category),
	)

	effectCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.EffectsTimeout)

	s.effects.Add(1)
	go func() {
		defer s.effects.Done()
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("reward ledger panicked", observability.Any("panic", r))
			}
		}()

		if err := s.ledger.Record(effectCtx, event); err != nil {
			logger.Warn("failed to record reward event", observability.Error(err))
			return
		}

		logger.Debug("reward event recorded", observability.Int("xp", event.XP()))
	}()
}
