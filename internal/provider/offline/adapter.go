// Package offline provides a generation endpoint that is never reachable. Every request
// takes the fallback path, which makes it useful for development and for running without
// credentials.
package offline

import (
	"context"
	"errors"
	"fmt"

	"github.com/davidbz/fitforge/internal/domain"
	"github.com/davidbz/fitforge/internal/observability"
)

const providerName = "offline"

// ErrUnavailable is returned for every completion request.
var ErrUnavailable = errors.New("generation endpoint is offline")

// Provider implements the domain.Provider interface without any network access.
type Provider struct {
	name string
}

// NewProvider creates a new offline provider.
func NewProvider() *Provider {
	return &Provider{
		name: providerName,
	}
}

// Complete always fails with ErrUnavailable.
func (p *Provider) Complete(ctx context.Context, req *domain.GenerationRequest) (*domain.CompletionResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	observability.FromContext(ctx).Debug("offline provider declined request",
		observability.Int("messages", len(req.Messages)))

	return nil, fmt.Errorf("%s: %w", p.name, ErrUnavailable)
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}
