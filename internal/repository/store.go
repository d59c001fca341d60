package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rhysv96/discord-r9k/internal/database"
	"github.com/rhysv96/discord-r9k/internal/metrics"
	"github.com/rhysv96/discord-r9k/internal/model"

	"github.com/rs/zerolog"
)

// ErrNotFound is returned when a row that should exist cannot be read back.
var ErrNotFound = errors.New("message not found")

// MessageStore is the append-only message log. Implementations must make
// concurrent Insert calls safe and Insert must be all-or-nothing.
type MessageStore interface {
	Insert(ctx context.Context, msg model.NewMessage) (*model.StoredMessage, error)
	// FindByContent returns every message with exactly this content, oldest first.
	FindByContent(ctx context.Context, content string) ([]model.StoredMessage, error)
	// List returns stored messages oldest first, at most limit when limit > 0.
	List(ctx context.Context, limit int) ([]model.StoredMessage, error)
	Ping(ctx context.Context) error
	Close()
}

// Open connects to the store named by databaseURL and applies pending
// migrations. postgres:// and postgresql:// URLs use Postgres; sqlite://PATH
// uses a SQLite file.
func Open(ctx context.Context, databaseURL string, log zerolog.Logger) (MessageStore, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		pool, err := database.NewPool(ctx, databaseURL, log)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := database.RunMigrations(ctx, pool, log); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return NewPostgresMessageRepository(pool), nil

	case strings.HasPrefix(databaseURL, "sqlite://"):
		db, err := database.OpenSQLite(ctx, strings.TrimPrefix(databaseURL, "sqlite://"))
		if err != nil {
			return nil, err
		}
		if err := database.RunSQLiteMigrations(ctx, db, log); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return NewSQLiteMessageRepository(db), nil
	}

	return nil, fmt.Errorf("unsupported database url %q: want postgres:// or sqlite://", redact(databaseURL))
}

// redact drops everything after the scheme so credentials never reach logs.
func redact(u string) string {
	if i := strings.Index(u, "://"); i >= 0 {
		return u[:i+3] + "..."
	}
	return "..."
}

func observe(op string, start time.Time) {
	metrics.StoreLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
