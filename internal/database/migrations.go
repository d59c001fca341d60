package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

//go:embed migrations
var migrationFS embed.FS

// migrationTarget abstracts the few statements the runner needs so the same
// loop serves pgx and database/sql.
type migrationTarget interface {
	ensureTable(ctx context.Context) error
	applied(ctx context.Context, version string) (bool, error)
	apply(ctx context.Context, version, script string) error
}

// RunMigrations applies the Postgres migrations that have not run yet.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	return run(ctx, pgTarget{pool: pool}, "migrations/postgres", log)
}

// RunSQLiteMigrations applies the SQLite migrations that have not run yet.
func RunSQLiteMigrations(ctx context.Context, db *sql.DB, log zerolog.Logger) error {
	return run(ctx, sqliteTarget{db: db}, "migrations/sqlite", log)
}

func run(ctx context.Context, t migrationTarget, dir string, log zerolog.Logger) error {
	if err := t.ensureTable(ctx); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	files, err := fs.ReadDir(migrationFS, dir)
	if err != nil {
		return fmt.Errorf("read migrations dir %s: %w", dir, err)
	}

	var upFiles []string
	for _, f := range files {
		if strings.HasSuffix(f.Name(), ".up.sql") {
			upFiles = append(upFiles, f.Name())
		}
	}
	sort.Strings(upFiles)

	for _, fileName := range upFiles {
		version := strings.TrimSuffix(fileName, ".up.sql")

		done, err := t.applied(ctx, version)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", version, err)
		}
		if done {
			continue
		}

		content, err := fs.ReadFile(migrationFS, path.Join(dir, fileName))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", fileName, err)
		}

		if err := t.apply(ctx, version, string(content)); err != nil {
			return err
		}
		log.Info().Str("version", version).Msg("applied migration")
	}

	return nil
}

type pgTarget struct {
	pool *pgxpool.Pool
}

func (p pgTarget) ensureTable(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (p pgTarget) applied(ctx context.Context, version string) (bool, error) {
	var count int
	err := p.pool.QueryRow(ctx, "SELECT COUNT(*) FROM schema_migrations WHERE version = $1", version).Scan(&count)
	return count > 0, err
}

func (p pgTarget) apply(ctx context.Context, version, script string) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx for %s: %w", version, err)
	}

	if _, err := tx.Exec(ctx, script); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("execute migration %s: %w", version, err)
	}

	if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", version); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("record migration %s: %w", version, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit migration %s: %w", version, err)
	}
	return nil
}

type sqliteTarget struct {
	db *sql.DB
}

func (s sqliteTarget) ensureTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func (s sqliteTarget) applied(ctx context.Context, version string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations WHERE version = ?", version).Scan(&count)
	return count > 0, err
}

func (s sqliteTarget) apply(ctx context.Context, version, script string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for %s: %w", version, err)
	}

	if _, err := tx.ExecContext(ctx, script); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("execute migration %s: %w", version, err)
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %s: %w", version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", version, err)
	}
	return nil
}
