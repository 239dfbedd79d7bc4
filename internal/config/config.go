package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/davidbz/fitforge/internal/domain"
	"github.com/davidbz/fitforge/internal/provider/completion"
	"github.com/davidbz/fitforge/internal/provider/openai"
)

// Ledger backends.
const (
	LedgerLog      = "log"
	LedgerRedis    = "redis"
	LedgerPostgres = "postgres"
)

// Config represents the service configuration.
type Config struct {
	Server     ServerConfig
	CORS       CORSConfig
	Generation GenerationConfig
	Profile    ProfileConfig
	Ledger     LedgerConfig
	Readiness  ReadinessConfig
	Store      StoreConfig
	OpenAI     openai.Config
	Completion completion.Config
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"60"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// GenerationConfig bounds calls to the generation endpoint. Durations are in milliseconds.
type GenerationConfig struct {
	Provider         string `env:"GENERATION_PROVIDER"    envDefault:"openai"`
	TimeoutMs        int    `env:"GENERATION_TIMEOUT_MS"  envDefault:"30000"`
	MaxRetries       int    `env:"GENERATION_MAX_RETRIES" envDefault:"1"`
	BackoffMs        int    `env:"GENERATION_BACKOFF_MS"  envDefault:"300"`
	ChatTimeoutMs    int    `env:"CHAT_TIMEOUT_MS"        envDefault:"15000"`
	ChatMaxRetries   int    `env:"CHAT_MAX_RETRIES"       envDefault:"0"`
	EffectsTimeoutMs int    `env:"EFFECTS_TIMEOUT_MS"     envDefault:"5000"`
}

// SendOptions returns the gateway bounds for structured intents.
func (g GenerationConfig) SendOptions() domain.SendOptions {
	return domain.SendOptions{
		Timeout:    millis(g.TimeoutMs),
		MaxRetries: g.MaxRetries,
		Backoff:    millis(g.BackoffMs),
	}
}

// ChatSendOptions returns the gateway bounds for free-text chat.
func (g GenerationConfig) ChatSendOptions() domain.SendOptions {
	return domain.SendOptions{
		Timeout:    millis(g.ChatTimeoutMs),
		MaxRetries: g.ChatMaxRetries,
		Backoff:    millis(g.BackoffMs),
	}
}

// EffectsTimeout bounds a single reward ledger write.
func (g GenerationConfig) EffectsTimeout() time.Duration {
	return millis(g.EffectsTimeoutMs)
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// ProfileConfig holds the caller's stored profile.
type ProfileConfig struct {
	DefaultGoals []string `env:"PROFILE_DEFAULT_GOALS" envSeparator:"," envDefault:"general fitness"`
}

// LedgerConfig selects where reward events are recorded.
type LedgerConfig struct {
	Backend     string `env:"LEDGER_BACKEND"      envDefault:"log"`
	RedisStream string `env:"LEDGER_REDIS_STREAM" envDefault:"rewards:events"`
}

// ReadinessConfig locates today's readiness signals. An empty key disables the provider.
type ReadinessConfig struct {
	RedisKey string `env:"READINESS_REDIS_KEY"`
}

// StoreConfig contains connection strings for the optional backing stores.
type StoreConfig struct {
	RedisURL    string `env:"REDIS_URL"    envDefault:"redis://localhost:6379/0"`
	PostgresURL string `env:"DATABASE_URL"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	*ServerConfig
	*CORSConfig
	*GenerationConfig
	*ProfileConfig
	*LedgerConfig
	*ReadinessConfig
	*StoreConfig
	OpenAI     *openai.Config
	Completion *completion.Config
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Server,
		&cfg.CORS,
		&cfg.Generation,
		&cfg.Profile,
		&cfg.Ledger,
		&cfg.Readiness,
		&cfg.Store,
		&cfg.OpenAI,
		&cfg.Completion,
	}
}
