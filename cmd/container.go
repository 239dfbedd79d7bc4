package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/davidbz/fitforge/internal/coach"
	"github.com/davidbz/fitforge/internal/config"
	"github.com/davidbz/fitforge/internal/domain"
	"github.com/davidbz/fitforge/internal/http"
	"github.com/davidbz/fitforge/internal/http/middleware"
	"github.com/davidbz/fitforge/internal/ledger"
	"github.com/davidbz/fitforge/internal/observability"
	"github.com/davidbz/fitforge/internal/prompt"
	"github.com/davidbz/fitforge/internal/provider/completion"
	"github.com/davidbz/fitforge/internal/provider/offline"
	"github.com/davidbz/fitforge/internal/provider/openai"
	"github.com/davidbz/fitforge/internal/provider/registry"
	"github.com/davidbz/fitforge/internal/readiness"
	"github.com/davidbz/fitforge/internal/store"
)

// fallbackProvider is used whenever the configured provider is unavailable.
const fallbackProvider = "offline"

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Backing stores
	if err := container.Provide(newBackends); err != nil {
		log.Fatalf("Failed to provide backends: %v", err)
	}

	// Provider Registry
	if err := container.Provide(newProviderRegistry); err != nil {
		log.Fatalf("Failed to provide registry: %v", err)
	}
	if err := container.Provide(func(reg *registry.Registry, gen *config.GenerationConfig) (domain.Provider, error) {
		return reg.Resolve(context.Background(), gen.Provider, fallbackProvider)
	}); err != nil {
		log.Fatalf("Failed to provide generation provider: %v", err)
	}

	// Collaborators
	if err := container.Provide(newReadinessProvider); err != nil {
		log.Fatalf("Failed to provide readiness provider: %v", err)
	}
	if err := container.Provide(newRewardLedger); err != nil {
		log.Fatalf("Failed to provide reward ledger: %v", err)
	}

	// Domain Services
	if err := container.Provide(domain.NewGatewayService); err != nil {
		log.Fatalf("Failed to provide gateway service: %v", err)
	}
	if err := container.Provide(func(profile *config.ProfileConfig) *prompt.Composer {
		return prompt.NewComposer(profile.DefaultGoals)
	}); err != nil {
		log.Fatalf("Failed to provide prompt composer: %v", err)
	}
	if err := container.Provide(newCoachService); err != nil {
		log.Fatalf("Failed to provide coach service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}

// newProviderRegistry registers every provider whose configuration is complete. The offline
// provider is always present.
func newProviderRegistry(
	logger *zap.Logger,
	openaiCfg *openai.Config,
	completionCfg *completion.Config,
) (*registry.Registry, error) {
	ctx := context.Background()
	reg := registry.NewRegistry()

	if err := reg.Register(ctx, offline.NewProvider()); err != nil {
		return nil, fmt.Errorf("failed to register offline provider: %w", err)
	}

	if openaiCfg.APIKey != "" {
		provider, err := openai.NewProvider(*openaiCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI provider: %w", err)
		}
		if err := reg.Register(ctx, provider); err != nil {
			return nil, fmt.Errorf("failed to register OpenAI provider: %w", err)
		}
	} else {
		logger.Info("OpenAI provider not configured")
	}

	if completionCfg.URL != "" {
		provider, err := completion.NewProvider(*completionCfg, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create completion provider: %w", err)
		}
		if err := reg.Register(ctx, provider); err != nil {
			return nil, fmt.Errorf("failed to register completion provider: %w", err)
		}
	} else {
		logger.Info("completion provider not configured")
	}

	return reg, nil
}

// newReadinessProvider reads today's readiness from Redis when a key is configured.
// Readiness is optional, so an unreachable Redis degrades to no readiness.
func newReadinessProvider(
	logger *zap.Logger,
	cfg *config.ReadinessConfig,
	stores *backends,
) domain.ReadinessProvider {
	if cfg.RedisKey == "" {
		return readiness.None{}
	}

	client, err := stores.redis()
	if err != nil {
		logger.Warn("readiness store unavailable, continuing without readiness", zap.Error(err))
		return readiness.None{}
	}

	provider, err := readiness.NewRedisProvider(client, cfg.RedisKey)
	if err != nil {
		logger.Warn("readiness provider disabled", zap.Error(err))
		return readiness.None{}
	}

	return provider
}

// newRewardLedger builds the configured ledger backend. An explicitly configured store that
// cannot be reached is a startup error.
func newRewardLedger(
	logger *zap.Logger,
	cfg *config.LedgerConfig,
	stores *backends,
) (domain.RewardLedger, error) {
	switch cfg.Backend {
	case "", config.LedgerLog:
		return ledger.NewLogLedger(logger), nil
	case config.LedgerRedis:
		client, err := stores.redis()
		if err != nil {
			return nil, fmt.Errorf("reward ledger: %w", err)
		}
		return ledger.NewRedisLedger(client, cfg.RedisStream)
	case config.LedgerPostgres:
		pool, err := stores.postgres()
		if err != nil {
			return nil, fmt.Errorf("reward ledger: %w", err)
		}
		if err := store.MigratePostgres(context.Background(), pool); err != nil {
			return nil, fmt.Errorf("reward ledger: %w", err)
		}
		return ledger.NewPostgresLedger(pool)
	default:
		return nil, fmt.Errorf("unknown ledger backend %q", cfg.Backend)
	}
}

func newCoachService(
	composer *prompt.Composer,
	gateway *domain.GatewayService,
	readinessProvider domain.ReadinessProvider,
	rewardLedger domain.RewardLedger,
	gen *config.GenerationConfig,
) *coach.Service {
	return coach.NewService(composer, gateway, readinessProvider, rewardLedger, coach.Options{
		Generation:     gen.SendOptions(),
		Chat:           gen.ChatSendOptions(),
		EffectsTimeout: gen.EffectsTimeout(),
	})
}
