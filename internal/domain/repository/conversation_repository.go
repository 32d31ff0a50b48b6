package repository

import (
	"context"

	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
)

// ConversationRepository defines private-message storage. FindBetween looks
// up the two-party conversation regardless of participant order.
type ConversationRepository interface {
	Create(ctx context.Context, c *entity.Conversation, first *entity.Message) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	FindBetween(ctx context.Context, userA, userB string) (*entity.Conversation, error)
	ListForUser(ctx context.Context, userID string) ([]entity.Conversation, error)

	Messages(ctx context.Context, conversationID string) ([]entity.Message, error)
	AddMessage(ctx context.Context, m *entity.Message) error
	// MarkRead flags every message not sent by readerID as read.
	MarkRead(ctx context.Context, conversationID, readerID string) error
}
