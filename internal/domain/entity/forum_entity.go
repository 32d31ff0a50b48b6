package entity

import "time"

// ForumCategory is a fixed, ordered discussion board section.
type ForumCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// ForumThread is a discussion topic. AuthorID is the ownership record.
// Locked threads reject new posts; pinned threads sort first in listings.
type ForumThread struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	AuthorID   string    `json:"author_id"`
	CategoryID string    `json:"category_id"`
	PostCount  int       `json:"post_count"`
	IsPinned   bool      `json:"is_pinned"`
	IsLocked   bool      `json:"is_locked"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ForumPost is a message within a thread.
type ForumPost struct {
	ID        string     `json:"id"`
	ThreadID  string     `json:"thread_id"`
	AuthorID  string     `json:"author_id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
