// Package sqlitestore provides the SQLite-backed implementation of
// database.Store, using the pure-Go modernc.org/sqlite driver.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lucmas92/message-wall/internal/database"
	"github.com/lucmas92/message-wall/internal/models"
)

// Store implements database.Store on a SQLite file.
type Store struct {
	db *sql.DB
}

// Ensure Store implements the interface at compile time.
var _ database.Store = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	text          TEXT NOT NULL,
	status        TEXT NOT NULL DEFAULT 'pending',
	created_at    TEXT NOT NULL,
	display_until TEXT
);
CREATE INDEX IF NOT EXISTS idx_messages_status ON messages(status);
CREATE INDEX IF NOT EXISTS idx_messages_display_until ON messages(display_until);
`

// Open creates or opens the database file at path and applies the schema.
// Parent directories are created as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL keeps readers (the display screen polls) from blocking the
	// moderation writes; busy_timeout covers the remaining contention.
	for _, pragma := range []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA busy_timeout = 5000`,
		`PRAGMA foreign_keys = ON`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) CreateMessage(ctx context.Context, text string, createdAt time.Time) (*models.Message, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (text, status, created_at)
		VALUES (?, ?, ?)
	`, text, string(models.StatusPending), encodeTime(createdAt))
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert message id: %w", err)
	}
	return s.GetMessage(ctx, id)
}

func (s *Store) GetMessage(ctx context.Context, id int64) (*models.Message, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, text, status, created_at, display_until
		FROM messages WHERE id = ?
	`, id)
	msg, err := scanMessage(row)
	if err == sql.ErrNoRows {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get message %d: %w", id, err)
	}
	return msg, nil
}

func (s *Store) ListMessages(ctx context.Context) ([]*models.Message, error) {
	return s.list(ctx, `
		SELECT id, text, status, created_at, display_until
		FROM messages ORDER BY id DESC
	`)
}

func (s *Store) ListMessagesByStatus(ctx context.Context, status models.Status) ([]*models.Message, error) {
	return s.list(ctx, `
		SELECT id, text, status, created_at, display_until
		FROM messages WHERE status = ? ORDER BY id DESC
	`, string(status))
}

// UpdateMessageStatus writes status and display_until in a single UPDATE, so
// the pair is atomic for every reader. The update is unconditional by id
// (last write wins); callers serialize transitions per message.
func (s *Store) UpdateMessageStatus(ctx context.Context, id int64, status models.Status, displayUntil *time.Time) (*models.Message, error) {
	var du any
	if displayUntil != nil {
		du = encodeTime(*displayUntil)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE messages SET status = ?, display_until = ? WHERE id = ?
	`, string(status), du, id)
	if err != nil {
		return nil, fmt.Errorf("update message %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update message %d: %w", id, err)
	}
	if affected == 0 {
		return nil, database.ErrNotFound
	}
	return s.GetMessage(ctx, id)
}

func (s *Store) CountMessages(ctx context.Context, status models.Status) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE status = ?`, string(status),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return count, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*models.Message, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var msgs []*models.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMessage(row scanner) (*models.Message, error) {
	var (
		msg       models.Message
		status    string
		createdAt string
		du        sql.NullString
	)
	if err := row.Scan(&msg.ID, &msg.Text, &status, &createdAt, &du); err != nil {
		return nil, err
	}
	msg.Status = models.Status(status)
	msg.CreatedAt = decodeTime(createdAt)
	if du.Valid {
		t := decodeTime(du.String)
		msg.DisplayUntil = &t
	}
	return &msg, nil
}

// Timestamps are stored as RFC3339Nano text. All comparisons happen on
// time.Time values in memory; the string form exists only at this boundary.
func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
