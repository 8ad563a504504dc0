package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harshgoy877/travdif-bot-backend/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS conversations (
			request_id TEXT PRIMARY KEY,
			session_key TEXT NOT NULL,
			mode TEXT NOT NULL,
			model TEXT NOT NULL,
			question TEXT NOT NULL,
			reply TEXT NOT NULL,
			prompt_tokens INTEGER NOT NULL,
			completion_tokens INTEGER NOT NULL,
			cost_estimate REAL NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_session ON conversations(session_key, created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RecordConversation inserts one exchange.
func (s *SQLiteStore) RecordConversation(ctx context.Context, conv *domain.Conversation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (request_id, session_key, mode, model, question, reply, prompt_tokens, completion_tokens, cost_estimate, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		conv.RequestID, conv.SessionKey, conv.Mode, conv.Model, conv.Question, conv.Reply,
		conv.PromptTokens, conv.CompletionTokens, conv.CostEstimate, conv.CreatedAt)
	return err
}

// CountConversations returns the number of recorded exchanges.
func (s *SQLiteStore) CountConversations(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM conversations`).Scan(&count)
	return count, err
}

// RecentConversations returns the newest exchanges, newest first.
func (s *SQLiteStore) RecentConversations(ctx context.Context, limit int) ([]domain.Conversation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT request_id, session_key, mode, model, question, reply, prompt_tokens, completion_tokens, cost_estimate, created_at
		 FROM conversations ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(&c.RequestID, &c.SessionKey, &c.Mode, &c.Model, &c.Question, &c.Reply,
			&c.PromptTokens, &c.CompletionTokens, &c.CostEstimate, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
