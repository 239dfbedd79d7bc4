package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/fitforge/internal/domain"
)

// DefaultStream is the Redis stream reward events are appended to.
const DefaultStream = "rewards:events"

// StreamAdder is the subset of the Redis client the ledger needs.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisLedger appends reward events to a Redis stream for downstream consumers.
type RedisLedger struct {
	client StreamAdder
	stream string
}

// NewRedisLedger creates a new Redis stream ledger (DI constructor).
func NewRedisLedger(client StreamAdder, stream string) (*RedisLedger, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if strings.TrimSpace(stream) == "" {
		stream = DefaultStream
	}

	return &RedisLedger{
		client: client,
		stream: stream,
	}, nil
}

// Record appends event with its JSON payload and a few indexable fields.
func (l *RedisLedger) Record(ctx context.Context, event domain.RewardEvent) error {
	if err := validate(event); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal reward event: %w", err)
	}

	err = l.client.XAdd(ctx, &redis.XAddArgs{
		Stream: l.stream,
		Values: map[string]any{
			"id":       event.ID,
			"category": event.Category,
			"xp":       event.XP(),
			"payload":  string(payload),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", l.stream, err)
	}

	return nil
}
