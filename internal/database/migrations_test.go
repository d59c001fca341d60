package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteMigrationsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "nested", "r9k.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunSQLiteMigrations(ctx, db, zerolog.Nop()))
	require.NoError(t, RunSQLiteMigrations(ctx, db, zerolog.Nop()))

	var versions int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&versions))
	assert.Equal(t, 1, versions)

	var table string
	err = db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name='messages'`).Scan(&table)
	require.NoError(t, err)
	assert.Equal(t, "messages", table)
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	for _, dir := range []string{"migrations/postgres", "migrations/sqlite"} {
		entries, err := migrationFS.ReadDir(dir)
		require.NoError(t, err, dir)
		assert.NotEmpty(t, entries, dir)
	}
}
