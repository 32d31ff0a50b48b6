package entity

import "time"

// Conversation is a private exchange between exactly two users. Access is
// restricted to the participants; LastMessage is denormalized for listings.
type Conversation struct {
	ID          string    `json:"id"`
	UserA       string    `json:"user_a"`
	UserB       string    `json:"user_b"`
	LastMessage string    `json:"last_message"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Participants returns both participant ids.
func (c *Conversation) Participants() []string {
	return []string{c.UserA, c.UserB}
}

// HasParticipant reports whether userID takes part in the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.UserA == userID || c.UserB == userID
}

// Message belongs to a conversation. SenderID is the ownership record.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Content        string    `json:"content"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}
