package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const connectAttempts = 10

func NewPool(ctx context.Context, databaseURL string, log zerolog.Logger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	config.MaxConns = 10
	config.MinConns = 1
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	// Retry connection (Postgres may not be ready yet in Docker)
	var pool *pgxpool.Pool
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, config)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("postgres connect failed")
			if !sleep(ctx, 2*time.Second) {
				return nil, ctx.Err()
			}
			continue
		}
		if err = pool.Ping(ctx); err != nil {
			pool.Close()
			log.Warn().Err(err).Int("attempt", attempt).Msg("postgres ping failed")
			if !sleep(ctx, 2*time.Second) {
				return nil, ctx.Err()
			}
			continue
		}
		log.Info().Int("attempt", attempt).Msg("postgres connected")
		return pool, nil
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", connectAttempts, err)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
