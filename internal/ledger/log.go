// Package ledger provides the reward ledger sinks. Every sink is write-once per event id.
package ledger

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/davidbz/fitforge/internal/domain"
	"github.com/davidbz/fitforge/internal/observability"
)

func validate(event domain.RewardEvent) error {
	if event.ID == "" {
		return errors.New("reward event id cannot be empty")
	}
	if event.Category == "" {
		return errors.New("reward event category cannot be empty")
	}
	return nil
}

// LogLedger records reward events as structured log entries.
type LogLedger struct {
	logger *zap.Logger
}

// NewLogLedger creates a log ledger. A nil logger falls back to the context logger.
func NewLogLedger(logger *zap.Logger) *LogLedger {
	return &LogLedger{
		logger: logger,
	}
}

// Record writes event at info level.
func (l *LogLedger) Record(ctx context.Context, event domain.RewardEvent) error {
	if err := validate(event); err != nil {
		return err
	}

	logger := l.logger
	if logger == nil {
		logger = observability.FromContext(ctx)
	}

	logger.Info("reward_event",
		observability.String("reward_id", event.ID),
		observability.String("category", event.Category),
		observability.Int("base_amount", event.BaseAmount),
		observability.Float64("multiplier", event.Multiplier),
		observability.Int("xp", event.XP()),
		observability.Any("date", event.Date),
		observability.String("description", event.Description),
		observability.Bool("completed", event.Completed),
	)

	return nil
}

// Discard drops every event.
type Discard struct{}

func (Discard) Record(context.Context, domain.RewardEvent) error {
	return nil
}
