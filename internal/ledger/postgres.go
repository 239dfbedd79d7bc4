package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/davidbz/fitforge/internal/domain"
	"github.com/davidbz/fitforge/internal/store"
)

const insertRewardEvent = `
INSERT INTO reward_events (id, category, base_amount, multiplier, xp, occurred_at, description, completed)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO NOTHING`

// PostgresLedger stores reward events in the reward_events table created by
// store.MigratePostgres. Re-recording an id is a no-op.
type PostgresLedger struct {
	db store.Execer
}

// NewPostgresLedger creates a new Postgres ledger (DI constructor).
func NewPostgresLedger(db store.Execer) (*PostgresLedger, error) {
	if db == nil {
		return nil, errors.New("database cannot be nil")
	}

	return &PostgresLedger{
		db: db,
	}, nil
}

// Record inserts event.
func (l *PostgresLedger) Record(ctx context.Context, event domain.RewardEvent) error {
	if err := validate(event); err != nil {
		return err
	}

	_, err := l.db.Exec(ctx, insertRewardEvent,
		event.ID,
		event.Category,
		event.BaseAmount,
		event.Multiplier,
		event.XP(),
		event.Date,
		event.Description,
		event.Completed,
	)
	if err != nil {
		return fmt.Errorf("insert reward event %s: %w", event.ID, err)
	}

	return nil
}
