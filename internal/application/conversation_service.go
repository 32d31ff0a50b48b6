package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Ping-Win-Info/insavente/internal/authz"
	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
	"github.com/Ping-Win-Info/insavente/internal/domain/repository"
)

// ConversationService manages private two-party conversations. Every read
// and write on a conversation passes the participant gate.
type ConversationService struct {
	Repo   repository.ConversationRepository
	Users  repository.UserRepository
	Logger *logrus.Logger
}

func NewConversationService(repo repository.ConversationRepository, users repository.UserRepository, logger *logrus.Logger) *ConversationService {
	return &ConversationService{Repo: repo, Users: users, Logger: logger}
}

// Start opens a conversation with a recipient, or reuses the existing one
// between the same pair. The first message is sent atomically with creation.
func (s *ConversationService) Start(ctx context.Context, senderID, recipientID, content string) (*entity.Conversation, error) {
	if senderID == recipientID {
		return nil, ErrSelfConversation
	}
	if _, err := s.Users.GetByID(ctx, recipientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	existing, err := s.Repo.FindBetween(ctx, senderID, recipientID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		msg := &entity.Message{
			ConversationID: existing.ID,
			SenderID:       senderID,
			Content:        content,
		}
		if err := s.Repo.AddMessage(ctx, msg); err != nil {
			return nil, err
		}
		return s.Repo.GetByID(ctx, existing.ID)
	}

	conv := &entity.Conversation{UserA: senderID, UserB: recipientID, LastMessage: content}
	first := &entity.Message{SenderID: senderID, Content: content}
	if err := s.Repo.Create(ctx, conv, first); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *ConversationService) List(ctx context.Context, userID string) ([]entity.Conversation, error) {
	return s.Repo.ListForUser(ctx, userID)
}

type ConversationDetail struct {
	Conversation *entity.Conversation `json:"conversation"`
	Messages     []entity.Message     `json:"messages"`
}

// Get returns a conversation with its messages and marks the other party's
// messages as read.
func (s *ConversationService) Get(ctx context.Context, id *authz.Identity, convID string) (*ConversationDetail, error) {
	conv, err := s.participantGate(ctx, id, convID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.Repo.Messages(ctx, convID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.MarkRead(ctx, convID, id.ID); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("conversation_id", convID).Warn("mark read failed")
		}
	}
	return &ConversationDetail{Conversation: conv, Messages: msgs}, nil
}

// MarkRead flags the other party's messages as read without fetching them.
func (s *ConversationService) MarkRead(ctx context.Context, id *authz.Identity, convID string) error {
	if _, err := s.participantGate(ctx, id, convID); err != nil {
		return err
	}
	return s.Repo.MarkRead(ctx, convID, id.ID)
}

func (s *ConversationService) SendMessage(ctx context.Context, id *authz.Identity, convID, content string) (*entity.Message, error) {
	if _, err := s.participantGate(ctx, id, convID); err != nil {
		return nil, err
	}
	msg := &entity.Message{
		ConversationID: convID,
		SenderID:       id.ID,
		Content:        content,
	}
	if err := s.Repo.AddMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *ConversationService) participantGate(ctx context.Context, id *authz.Identity, convID string) (*entity.Conversation, error) {
	conv, err := s.Repo.GetByID(ctx, convID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Conversations are strictly private, admins get no bypass here.
	if id == nil || !conv.HasParticipant(id.ID) {
		return nil, ErrForbidden
	}
	return conv, nil
}
