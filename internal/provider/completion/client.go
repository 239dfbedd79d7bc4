// Package completion provides a generation endpoint that speaks the plain
// {"messages":[...]} → {"completion":"..."} HTTP contract.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/davidbz/fitforge/internal/domain"
	"github.com/davidbz/fitforge/internal/observability"
)

const (
	providerName    = "completion"
	maxResponseSize = 1 << 20
	maxErrorSnippet = 512
)

// Config contains completion endpoint configuration.
type Config struct {
	URL    string `env:"COMPLETION_URL"`
	APIKey string `env:"COMPLETION_API_KEY"`
}

// Provider implements the domain.Provider interface over HTTP.
type Provider struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// NewProvider creates a new completion endpoint provider. A nil httpClient uses a client
// without its own timeout; deadlines come from the request context.
func NewProvider(config Config, httpClient *http.Client) (*Provider, error) {
	if strings.TrimSpace(config.URL) == "" {
		return nil, errors.New("completion URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Provider{
		url:        config.URL,
		apiKey:     config.APIKey,
		httpClient: httpClient,
	}, nil
}

type request struct {
	Messages []domain.Message `json:"messages"`
}

type response struct {
	ID         string  `json:"id"`
	Completion *string `json:"completion"`
}

// Complete posts the messages and returns the completion field.
func (p *Provider) Complete(ctx context.Context, req *domain.GenerationRequest) (*domain.CompletionResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	reqBody, err := json.Marshal(request{Messages: req.Messages})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}
	if requestID := observability.GetRequestID(ctx); requestID != "" {
		httpReq.Header.Set("X-Request-ID", requestID)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("endpoint returned status %d: %s", resp.StatusCode, snippet(body))
	}

	var decoded response
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode envelope: %w: %w", domain.ErrMalformedEnvelope, err)
	}
	if decoded.Completion == nil {
		return nil, fmt.Errorf("envelope has no completion field: %w", domain.ErrMalformedEnvelope)
	}

	id := decoded.ID
	if id == "" {
		id = uuid.NewString()
	}

	observability.FromContext(ctx).Debug("completion endpoint answered",
		observability.Int("status", resp.StatusCode),
		observability.Int("bytes", len(body)),
	)

	return &domain.CompletionResponse{
		ID:         id,
		Provider:   providerName,
		Content:    domain.RawCompletion(*decoded.Completion),
		FinishTime: time.Now(),
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return providerName
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorSnippet {
		return s[:maxErrorSnippet] + "..."
	}
	return s
}
