package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/fitforge/internal/store"
)

type recordingExecer struct {
	statements []string
	err        error
}

func (r *recordingExecer) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	r.statements = append(r.statements, sql)
	return pgconn.NewCommandTag("CREATE TABLE"), r.err
}

func TestMigratePostgres(t *testing.T) {
	db := &recordingExecer{}

	err := store.MigratePostgres(context.Background(), db)

	require.NoError(t, err)
	require.Len(t, db.statements, 1)
	require.Contains(t, db.statements[0], "CREATE TABLE IF NOT EXISTS reward_events")
	require.Contains(t, db.statements[0], "id          TEXT PRIMARY KEY")
}

func TestMigratePostgres_Error(t *testing.T) {
	db := &recordingExecer{err: errors.New("permission denied")}

	err := store.MigratePostgres(context.Background(), db)

	require.ErrorContains(t, err, "001_reward_events.sql")
	require.ErrorContains(t, err, "permission denied")
}

func TestConnectRedis_InvalidURL(t *testing.T) {
	_, err := store.ConnectRedis(context.Background(), "not-a-url")
	require.ErrorContains(t, err, "parse redis URL")
}
