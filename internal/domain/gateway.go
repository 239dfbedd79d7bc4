package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davidbz/fitforge/internal/observability"
)

const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 1
	DefaultBackoff    = 300 * time.Millisecond
)

// SendOptions bound a single Send call. Timeout applies per attempt.
type SendOptions struct {
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
}

// DefaultSendOptions returns two attempts of 30s each with a 300ms pause between them.
func DefaultSendOptions() SendOptions {
	return SendOptions{
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
		Backoff:    DefaultBackoff,
	}
}

// GatewayService sends generation requests to a provider under a timeout with bounded retries.
// It is the only component that performs network I/O and it never applies fallbacks.
type GatewayService struct {
	provider Provider
}

// NewGatewayService creates a new gateway service (DI constructor).
func NewGatewayService(provider Provider) *GatewayService {
	return &GatewayService{
		provider: provider,
	}
}

// ProviderName returns the name of the underlying provider.
func (g *GatewayService) ProviderName() string {
	if g.provider == nil {
		return ""
	}
	return g.provider.Name()
}

type attemptResult struct {
	resp *CompletionResponse
	err  error
}

// Send delivers req and returns the raw completion text. Transport-class failures are retried
// up to opts.MaxRetries times; exhausting them yields a *GatewayError.
func (g *GatewayService) Send(
	ctx context.Context,
	req *GenerationRequest,
	opts SendOptions,
) (RawCompletion, error) {
	if req == nil {
		return "", errors.New("request cannot be nil")
	}

	if len(req.Messages) == 0 {
		return "", errors.New("request must contain at least one message")
	}

	if g.provider == nil {
		return "", errors.New("provider cannot be nil")
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}

	ctx = observability.WithProvider(ctx, g.provider.Name())
	logger := observability.FromContext(ctx)

	attempts := opts.MaxRetries + 1
	var (
		lastKind ErrorKind
		lastErr  error
	)

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := wait(ctx, opts.Backoff); err != nil {
				return "", &GatewayError{Kind: KindTransport, Attempts: attempt - 1, Err: err}
			}
		}

		started := time.Now()
		content, kind, err := g.attempt(ctx, req, opts.Timeout)
		if err == nil {
			logger.Debug("generation attempt succeeded",
				observability.Int("attempt", attempt),
				observability.Duration("latency", time.Since(started)))
			return content, nil
		}

		logger.Warn("generation attempt failed",
			observability.Int("attempt", attempt),
			observability.Int("max_attempts", attempts),
			observability.String("kind", string(kind)),
			observability.Duration("latency", time.Since(started)),
			observability.Error(err))

		lastKind, lastErr = kind, err

		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", &GatewayError{Kind: KindTransport, Attempts: attempt, Err: ctxErr}
		}
	}

	return "", &GatewayError{Kind: lastKind, Attempts: attempts, Err: lastErr}
}

// attempt races one provider call against its own deadline. The provider receives the
// attempt context, so a timeout also aborts the in-flight transport request.
func (g *GatewayService) attempt(
	ctx context.Context,
	req *GenerationRequest,
	timeout time.Duration,
) (RawCompletion, ErrorKind, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan attemptResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- attemptResult{resp: nil, err: fmt.Errorf("provider panicked: %v", r)}
			}
		}()
		resp, err := g.provider.Complete(attemptCtx, req)
		done <- attemptResult{resp: resp, err: err}
	}()

	select {
	case <-attemptCtx.Done():
		if ctx.Err() != nil {
			return "", KindTransport, ctx.Err()
		}
		return "", KindTimeout, fmt.Errorf("no completion within %s: %w", timeout, attemptCtx.Err())

	case res := <-done:
		switch {
		case res.err != nil && errors.Is(res.err, ErrMalformedEnvelope):
			return "", KindMalformedEnvelope, res.err
		case res.err != nil && errors.Is(res.err, context.DeadlineExceeded) && ctx.Err() == nil:
			return "", KindTimeout, res.err
		case res.err != nil:
			return "", KindTransport, res.err
		case res.resp == nil:
			return "", KindMalformedEnvelope, ErrMalformedEnvelope
		}
		return res.resp.Content, "", nil
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
