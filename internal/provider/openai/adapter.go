// Package openai provides a generation endpoint backed by the OpenAI Chat Completions API.
// It implements the domain.Provider interface using the official SDK.
package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/davidbz/fitforge/internal/domain"
	"github.com/davidbz/fitforge/internal/observability"
)

const (
	providerName = "openai"
	defaultModel = "gpt-4o-mini"
)

// Provider implements the domain.Provider interface for OpenAI.
type Provider struct {
	client      openai.Client
	name        string
	model       string
	maxTokens   int
	temperature float64
}

// NewProvider creates a new OpenAI provider.
func NewProvider(config Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(0),
	}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	model := config.Model
	if model == "" {
		model = defaultModel
	}

	return &Provider{
		client:      openai.NewClient(opts...),
		name:        providerName,
		model:       model,
		maxTokens:   config.MaxTokens,
		temperature: config.Temperature,
	}, nil
}

// Complete sends the messages and returns the first choice's content.
func (p *Provider) Complete(ctx context.Context, req *domain.GenerationRequest) (*domain.CompletionResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI API", observability.String("model", p.model))

	resp, err := p.client.Chat.Completions.New(ctx, p.toSDKParams(req))
	if err != nil {
		return nil, fmt.Errorf("OpenAI API call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("OpenAI response %s has no choices: %w", resp.ID, domain.ErrMalformedEnvelope)
	}

	logger.Debug("OpenAI API call succeeded",
		observability.Int("prompt_tokens", int(resp.Usage.PromptTokens)),
		observability.Int("completion_tokens", int(resp.Usage.CompletionTokens)),
		observability.String("finish_reason", resp.Choices[0].FinishReason),
	)

	return &domain.CompletionResponse{
		ID:         resp.ID,
		Provider:   p.name,
		Content:    domain.RawCompletion(resp.Choices[0].Message.Content),
		FinishTime: time.Now(),
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// toSDKParams converts the domain request to SDK ChatCompletionNewParams.
func (p *Provider) toSDKParams(req *domain.GenerationRequest) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, len(req.Messages))
	for i, msg := range req.Messages {
		switch msg.Role {
		case domain.RoleSystem:
			messages[i] = openai.SystemMessage(msg.Content)
		default:
			messages[i] = openai.UserMessage(msg.Content)
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: messages,
	}

	if p.temperature > 0 {
		params.Temperature = openai.Float(p.temperature)
	}

	if p.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(p.maxTokens))
	}

	return params
}
