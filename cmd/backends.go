package main

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/davidbz/fitforge/internal/config"
	"github.com/davidbz/fitforge/internal/observability"
	"github.com/davidbz/fitforge/internal/store"
)

// backends connects to Redis and Postgres on first use, so a configuration that needs
// neither never dials them.
type backends struct {
	redis    func() (*redis.Client, error)
	postgres func() (*pgxpool.Pool, error)

	mu      sync.Mutex
	closers []func()
}

func newBackends(cfg *config.StoreConfig) *backends {
	b := &backends{}

	b.redis = sync.OnceValues(func() (*redis.Client, error) {
		client, err := store.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		b.onClose(func() { _ = client.Close() })
		return client, nil
	})

	b.postgres = sync.OnceValues(func() (*pgxpool.Pool, error) {
		pool, err := store.ConnectPostgres(context.Background(), cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		b.onClose(pool.Close)
		return pool, nil
	})

	return b
}

func (b *backends) onClose(fn func()) {
	b.mu.Lock()
	b.closers = append(b.closers, fn)
	b.mu.Unlock()
}

// Close releases every connection that was opened.
func (b *backends) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
	b.closers = nil

	observability.FromContext(context.Background()).Debug("backends closed")
}
