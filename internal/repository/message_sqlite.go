package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rhysv96/discord-r9k/internal/model"
)

type SQLiteMessageRepository struct {
	db *sql.DB
}

func NewSQLiteMessageRepository(db *sql.DB) *SQLiteMessageRepository {
	return &SQLiteMessageRepository{db: db}
}

// Insert writes the row and reads it back by rowid inside one transaction,
// so a failed read-back leaves nothing behind.
func (r *SQLiteMessageRepository) Insert(ctx context.Context, msg model.NewMessage) (*model.StoredMessage, error) {
	defer observe("insert", time.Now())

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO messages (guild_id, channel_id, message_id, author_id, content)
		VALUES (?, ?, ?, ?, ?)
	`, msg.GuildID, msg.ChannelID, msg.MessageID, msg.AuthorID, msg.Content)
	if err != nil {
		return nil, fmt.Errorf("insert message %s: %w", msg.MessageID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert message %s: last insert id: %w", msg.MessageID, err)
	}

	var m model.StoredMessage
	err = tx.QueryRowContext(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = ?`, id).
		Scan(&m.ID, &m.GuildID, &m.ChannelID, &m.MessageID, &m.AuthorID, &m.Content, &m.ImageHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("read back message id %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("read back message id %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit message %s: %w", msg.MessageID, err)
	}
	return &m, nil
}

func (r *SQLiteMessageRepository) FindByContent(ctx context.Context, content string) ([]model.StoredMessage, error) {
	defer observe("find_by_content", time.Now())

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE content = ?
		ORDER BY id ASC
	`, content)
	if err != nil {
		return nil, fmt.Errorf("query messages by content: %w", err)
	}
	return scanSQL(rows)
}

func (r *SQLiteMessageRepository) List(ctx context.Context, limit int) ([]model.StoredMessage, error) {
	query := `SELECT ` + messageColumns + ` FROM messages ORDER BY id ASC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return scanSQL(rows)
}

func (r *SQLiteMessageRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteMessageRepository) Close() {
	r.db.Close()
}

func scanSQL(rows *sql.Rows) ([]model.StoredMessage, error) {
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
