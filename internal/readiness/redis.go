package readiness

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/fitforge/internal/domain"
	"github.com/davidbz/fitforge/internal/observability"
)

// HashReader is the subset of the Redis client the provider needs.
type HashReader interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

// RedisProvider reads today's readiness from a Redis hash maintained by the signal pipeline.
// The hash holds either a ready-made level/descriptor pair or the raw signal fields.
type RedisProvider struct {
	client HashReader
	key    string
}

// NewRedisProvider creates a new Redis-backed readiness provider (DI constructor).
func NewRedisProvider(client HashReader, key string) (*RedisProvider, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("readiness key cannot be empty")
	}

	return &RedisProvider{
		client: client,
		key:    key,
	}, nil
}

// Current returns nil when the hash is missing or carries no usable fields.
func (p *RedisProvider) Current(ctx context.Context) (*domain.ReadinessContext, error) {
	fields, err := p.client.HGetAll(ctx, p.key).Result()
	if err != nil {
		return nil, fmt.Errorf("read readiness hash %s: %w", p.key, err)
	}
	if len(fields) == 0 {
		return nil, nil //nolint:nilnil // Absent context is a valid state
	}

	if level, ok := fields["level"]; ok && strings.TrimSpace(level) != "" {
		return &domain.ReadinessContext{
			Level:      domain.ParseReadinessLevel(level),
			Descriptor: strings.TrimSpace(fields["descriptor"]),
		}, nil
	}

	signals, found, err := parseSignals(fields)
	if err != nil {
		return nil, fmt.Errorf("parse readiness hash %s: %w", p.key, err)
	}
	if !found {
		observability.FromContext(ctx).Debug("readiness hash has no signal fields",
			observability.String("key", p.key))
		return nil, nil //nolint:nilnil // Absent context is a valid state
	}

	rc := FromSignals(signals)
	return &rc, nil
}

func parseSignals(fields map[string]string) (domain.ReadinessSignals, bool, error) {
	var s domain.ReadinessSignals
	targets := []struct {
		name string
		dst  *int
	}{
		{"mood", &s.Mood},
		{"energy", &s.Energy},
		{"stress", &s.Stress},
		{"sleep", &s.Sleep},
		{"confidence", &s.Confidence},
	}

	found := false
	for _, t := range targets {
		raw, ok := fields[t.name]
		if !ok {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return domain.ReadinessSignals{}, false, fmt.Errorf("signal %s: %w", t.name, err)
		}
		*t.dst = v
		found = true
	}

	return s, found, nil
}
