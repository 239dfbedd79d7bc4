package domain

import "context"

// Provider represents a text-generation endpoint.
type Provider interface {
	// Complete sends the messages and returns the completion envelope.
	// Providers return ErrMalformedEnvelope when the completion field is missing.
	Complete(ctx context.Context, req *GenerationRequest) (*CompletionResponse, error)

	// Name returns the provider identifier.
	Name() string
}

// ProviderRegistry manages available providers.
type ProviderRegistry interface {
	// Register adds a provider to the registry.
	Register(ctx context.Context, provider Provider) error

	// Get retrieves a provider by name.
	Get(ctx context.Context, providerName string) (Provider, error)

	// List returns all available providers.
	List(ctx context.Context) ([]string, error)
}

// ReadinessProvider supplies today's readiness context. A nil context with a nil error means
// no signal is available.
type ReadinessProvider interface {
	Current(ctx context.Context) (*ReadinessContext, error)
}

// RewardLedger records reward events.
type RewardLedger interface {
	Record(ctx context.Context, event RewardEvent) error
}
