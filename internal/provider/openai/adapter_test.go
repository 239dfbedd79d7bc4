package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/fitforge/internal/domain"
	"github.com/davidbz/fitforge/internal/provider/openai"
)

func testRequest() *domain.GenerationRequest {
	return &domain.GenerationRequest{
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: "respond with ONLY minified JSON matching schema {}"},
			{Role: domain.RoleUser, Content: "Create one workout plan."},
		},
	}
}

func newServer(t *testing.T, status int, body string, calls *atomic.Int32, seen *map[string]any) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if seen != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func TestNewProvider_MissingAPIKey(t *testing.T) {
	provider, err := openai.NewProvider(openai.Config{})

	require.Error(t, err)
	require.Nil(t, provider)
	require.Contains(t, err.Error(), "OpenAI API key is required")
}

func TestProvider_Name(t *testing.T) {
	provider, err := openai.NewProvider(openai.Config{APIKey: "test-key"})
	require.NoError(t, err)

	require.Equal(t, "openai", provider.Name())
}

func TestProvider_Complete_NilRequest(t *testing.T) {
	provider, err := openai.NewProvider(openai.Config{APIKey: "test-key"})
	require.NoError(t, err)

	resp, err := provider.Complete(context.Background(), nil)

	require.Error(t, err)
	require.Nil(t, resp)
	require.Contains(t, err.Error(), "request cannot be nil")
}

func TestProvider_Complete(t *testing.T) {
	t.Run("returns first choice", func(t *testing.T) {
		var calls atomic.Int32
		var seen map[string]any
		server := newServer(t, http.StatusOK, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "{\"name\":\"Leg Day\"}"}}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 5, "total_tokens": 17}
		}`, &calls, &seen)

		provider, err := openai.NewProvider(openai.Config{
			APIKey:      "test-key",
			BaseURL:     server.URL,
			Model:       "gpt-4o-mini",
			MaxTokens:   256,
			Temperature: 0.2,
		})
		require.NoError(t, err)

		resp, err := provider.Complete(context.Background(), testRequest())

		require.NoError(t, err)
		require.Equal(t, "chatcmpl-1", resp.ID)
		require.Equal(t, "openai", resp.Provider)
		require.Equal(t, domain.RawCompletion(`{"name":"Leg Day"}`), resp.Content)
		require.Equal(t, int32(1), calls.Load())

		require.Equal(t, "gpt-4o-mini", seen["model"])
		require.InDelta(t, 256, seen["max_tokens"], 0)
		messages, ok := seen["messages"].([]any)
		require.True(t, ok)
		require.Len(t, messages, 2)
		require.Equal(t, "system", messages[0].(map[string]any)["role"])
		require.Equal(t, "user", messages[1].(map[string]any)["role"])
	})

	t.Run("no choices is a malformed envelope", func(t *testing.T) {
		var calls atomic.Int32
		server := newServer(t, http.StatusOK, `{"id":"chatcmpl-2","object":"chat.completion","choices":[]}`, &calls, nil)

		provider, err := openai.NewProvider(openai.Config{APIKey: "test-key", BaseURL: server.URL})
		require.NoError(t, err)

		_, err = provider.Complete(context.Background(), testRequest())

		require.ErrorIs(t, err, domain.ErrMalformedEnvelope)
	})

	t.Run("server error is not retried by the SDK", func(t *testing.T) {
		var calls atomic.Int32
		server := newServer(t, http.StatusInternalServerError, `{"error":{"message":"boom"}}`, &calls, nil)

		provider, err := openai.NewProvider(openai.Config{APIKey: "test-key", BaseURL: server.URL})
		require.NoError(t, err)

		_, err = provider.Complete(context.Background(), testRequest())

		require.Error(t, err)
		require.False(t, errors.Is(err, domain.ErrMalformedEnvelope))
		require.Equal(t, int32(1), calls.Load())
	})
}
