package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
	"github.com/Ping-Win-Info/insavente/internal/domain/repository"
)

const conversationColumns = `id, user_a, user_b, last_message, created_at, updated_at`

type ConversationRepository struct {
	pool *pgxpool.Pool
}

func NewConversationRepository(pool *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{pool: pool}
}

func scanConversation(row pgx.Row, c *entity.Conversation) error {
	return row.Scan(&c.ID, &c.UserA, &c.UserB, &c.LastMessage, &c.CreatedAt, &c.UpdatedAt)
}

// Create inserts the conversation and its first message in one transaction.
func (r *ConversationRepository) Create(ctx context.Context, c *entity.Conversation, first *entity.Message) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO conversations (user_a, user_b, last_message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, c.UserA, c.UserB, c.LastMessage)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return err
	}

	first.ConversationID = c.ID
	row = tx.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, read, created_at
	`, first.ConversationID, first.SenderID, first.Content)
	if err := row.Scan(&first.ID, &first.Read, &first.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	c := &entity.Conversation{}
	row := r.pool.QueryRow(ctx, `SELECT `+conversationColumns+` FROM conversations WHERE id = $1`, id)
	if err := scanConversation(row, c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// FindBetween looks up the pair conversation in either participant order.
func (r *ConversationRepository) FindBetween(ctx context.Context, userA, userB string) (*entity.Conversation, error) {
	c := &entity.Conversation{}
	row := r.pool.QueryRow(ctx, `
		SELECT `+conversationColumns+` FROM conversations
		WHERE (user_a = $1 AND user_b = $2) OR (user_a = $2 AND user_b = $1)
	`, userA, userB)
	if err := scanConversation(row, c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *ConversationRepository) ListForUser(ctx context.Context, userID string) ([]entity.Conversation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+conversationColumns+` FROM conversations
		WHERE user_a = $1 OR user_b = $1
		ORDER BY updated_at DESC, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []entity.Conversation
	for rows.Next() {
		var c entity.Conversation
		if err := scanConversation(rows, &c); err != nil {
			return nil, err
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}

func (r *ConversationRepository) Messages(ctx context.Context, conversationID string) ([]entity.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, conversation_id, sender_id, content, read, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC, id ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []entity.Message
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// AddMessage appends to a conversation and refreshes its last_message.
func (r *ConversationRepository) AddMessage(ctx context.Context, m *entity.Message) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, read, created_at
	`, m.ConversationID, m.SenderID, m.Content)
	if err := row.Scan(&m.ID, &m.Read, &m.CreatedAt); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE conversations SET last_message = $1, updated_at = now() WHERE id = $2
	`, m.Content, m.ConversationID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ConversationRepository) MarkRead(ctx context.Context, conversationID, readerID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE messages SET read = TRUE
		WHERE conversation_id = $1 AND sender_id <> $2 AND NOT read
	`, conversationID, readerID)
	return err
}

var _ repository.ConversationRepository = (*ConversationRepository)(nil)
