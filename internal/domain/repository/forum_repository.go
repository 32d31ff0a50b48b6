package repository

import (
	"context"

	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
)

// ThreadQuery filters and paginates forum thread listings. Pinned threads
// always sort first, then updated_at descending with id tie-break.
type ThreadQuery struct {
	CategoryID string
	Search     string
	Page       int
	PageSize   int
}

// ForumRepository defines forum storage. CreateThread persists the thread and
// its first post atomically.
type ForumRepository interface {
	Categories(ctx context.Context) ([]entity.ForumCategory, error)
	GetCategory(ctx context.Context, id string) (*entity.ForumCategory, error)

	CreateThread(ctx context.Context, t *entity.ForumThread, first *entity.ForumPost) error
	GetThread(ctx context.Context, id string) (*entity.ForumThread, error)
	ListThreads(ctx context.Context, q ThreadQuery) ([]entity.ForumThread, int, error)
	SetThreadLocked(ctx context.Context, id string, locked bool) (*entity.ForumThread, error)
	SetThreadPinned(ctx context.Context, id string, pinned bool) (*entity.ForumThread, error)

	ThreadPosts(ctx context.Context, threadID string) ([]entity.ForumPost, error)
	CreatePost(ctx context.Context, p *entity.ForumPost) error
	GetPost(ctx context.Context, id string) (*entity.ForumPost, error)
	UpdatePost(ctx context.Context, p *entity.ForumPost) error
}
