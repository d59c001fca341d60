package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rhysv96/discord-r9k/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const messageColumns = `id, guild_id, channel_id, message_id, author_id, content, image_hash`

type PostgresMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresMessageRepository(pool *pgxpool.Pool) *PostgresMessageRepository {
	return &PostgresMessageRepository{pool: pool}
}

// Insert stores a message and returns it with its assigned id. A single
// INSERT ... RETURNING statement makes the write and read-back atomic.
func (r *PostgresMessageRepository) Insert(ctx context.Context, msg model.NewMessage) (*model.StoredMessage, error) {
	defer observe("insert", time.Now())

	var m model.StoredMessage
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (guild_id, channel_id, message_id, author_id, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+messageColumns,
		msg.GuildID, msg.ChannelID, msg.MessageID, msg.AuthorID, msg.Content,
	).Scan(&m.ID, &m.GuildID, &m.ChannelID, &m.MessageID, &m.AuthorID, &m.Content, &m.ImageHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("insert message %s: %w", msg.MessageID, ErrNotFound)
		}
		return nil, fmt.Errorf("insert message %s: %w", msg.MessageID, err)
	}
	return &m, nil
}

func (r *PostgresMessageRepository) FindByContent(ctx context.Context, content string) ([]model.StoredMessage, error) {
	defer observe("find_by_content", time.Now())

	rows, err := r.pool.Query(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE content = $1
		ORDER BY id ASC
	`, content)
	if err != nil {
		return nil, fmt.Errorf("query messages by content: %w", err)
	}
	return collect(rows)
}

func (r *PostgresMessageRepository) List(ctx context.Context, limit int) ([]model.StoredMessage, error) {
	query := `SELECT ` + messageColumns + ` FROM messages ORDER BY id ASC`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return collect(rows)
}

func (r *PostgresMessageRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *PostgresMessageRepository) Close() {
	r.pool.Close()
}

func collect(rows pgx.Rows) ([]model.StoredMessage, error) {
	defer rows.Close()

	var msgs []model.StoredMessage
	for rows.Next() {
		var m model.StoredMessage
		if err := rows.Scan(&m.ID, &m.GuildID, &m.ChannelID, &m.MessageID, &m.AuthorID, &m.Content, &m.ImageHash); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
