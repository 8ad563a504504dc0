// Package store defines the transcript storage interface and implementations.
package store

import (
	"context"

	"github.com/harshgoy877/travdif-bot-backend/domain"
)

// Store records chat exchanges for after-the-fact review. Purely an audit
// surface; nothing in the request path depends on reads from it.
type Store interface {
	RecordConversation(ctx context.Context, conv *domain.Conversation) error
	CountConversations(ctx context.Context) (int64, error)
	RecentConversations(ctx context.Context, limit int) ([]domain.Conversation, error)

	Close() error
}
