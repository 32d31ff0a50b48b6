package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Ping-Win-Info/insavente/internal/authz"
	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
	"github.com/Ping-Win-Info/insavente/internal/domain/repository"
	"github.com/Ping-Win-Info/insavente/internal/listing"
)

// ForumService handles categories, threads and posts. Moderation flags
// (lock, pin) are admin-only; posting is blocked on locked threads.
type ForumService struct {
	Repo   repository.ForumRepository
	Logger *logrus.Logger
}

func NewForumService(repo repository.ForumRepository, logger *logrus.Logger) *ForumService {
	return &ForumService{Repo: repo, Logger: logger}
}

func (s *ForumService) Categories(ctx context.Context) ([]entity.ForumCategory, error) {
	return s.Repo.Categories(ctx)
}

type CreateThreadInput struct {
	CategoryID string
	Title      string
	Content    string
}

func (s *ForumService) CreateThread(ctx context.Context, authorID string, in CreateThreadInput) (*entity.ForumThread, error) {
	if _, err := s.Repo.GetCategory(ctx, in.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	thread := &entity.ForumThread{
		CategoryID: in.CategoryID,
		AuthorID:   authorID,
		Title:      in.Title,
	}
	first := &entity.ForumPost{
		AuthorID: authorID,
		Content:  in.Content,
	}
	if err := s.Repo.CreateThread(ctx, thread, first); err != nil {
		return nil, err
	}
	return thread, nil
}

type ThreadListInput struct {
	CategoryID string
	Search     string
	Page       int
	PageSize   int
}

// ThreadPage is one page of threads with the pagination envelope.
type ThreadPage struct {
	Threads    []entity.ForumThread `json:"threads"`
	TotalItems int                  `json:"total_items"`
	TotalPages int                  `json:"total_pages"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
}

// ListThreads paginates threads, pinned first then most recently active.
// Out-of-range pagination is rejected, never clamped, same as item listings.
func (s *ForumService) ListThreads(ctx context.Context, in ThreadListInput) (*ThreadPage, error) {
	if in.Page < 1 {
		return nil, &listing.ValidationError{Code: listing.CodeInvalidPagination, Field: "page", Message: "must be >= 1"}
	}
	if in.PageSize < 1 || in.PageSize > 100 {
		return nil, &listing.ValidationError{Code: listing.CodeInvalidPagination, Field: "limit", Message: "must be between 1 and 100"}
	}

	threads, total, err := s.Repo.ListThreads(ctx, repository.ThreadQuery{
		CategoryID: in.CategoryID,
		Search:     in.Search,
		Page:       in.Page,
		PageSize:   in.PageSize,
	})
	if err != nil {
		return nil, err
	}
	return &ThreadPage{
		Threads:    threads,
		TotalItems: total,
		TotalPages: listing.TotalPages(total, in.PageSize),
		Page:       in.Page,
		PageSize:   in.PageSize,
	}, nil
}

type ThreadDetail struct {
	Thread *entity.ForumThread `json:"thread"`
	Posts  []entity.ForumPost  `json:"posts"`
}

func (s *ForumService) GetThread(ctx context.Context, threadID string) (*ThreadDetail, error) {
	thread, err := s.Repo.GetThread(ctx, threadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	posts, err := s.Repo.ThreadPosts(ctx, threadID)
	if err != nil {
		return nil, err
	}
	return &ThreadDetail{Thread: thread, Posts: posts}, nil
}

// CreatePost appends a reply to a thread. Locked threads reject new posts.
func (s *ForumService) CreatePost(ctx context.Context, authorID, threadID, content string) (*entity.ForumPost, error) {
	thread, err := s.Repo.GetThread(ctx, threadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if thread.IsLocked {
		return nil, ErrThreadLocked
	}

	post := &entity.ForumPost{
		ThreadID: threadID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.Repo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost edits a post's content. Only the author or an admin may edit,
// and a locked thread freezes its posts too.
func (s *ForumService) UpdatePost(ctx context.Context, id *authz.Identity, postID, content string) (*entity.ForumPost, error) {
	post, err := s.Repo.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if d := authz.OwnerOrAdmin(id, post.AuthorID); !d.Allowed {
		return nil, ErrForbidden
	}

	thread, err := s.Repo.GetThread(ctx, post.ThreadID)
	if err != nil {
		return nil, err
	}
	if thread.IsLocked {
		return nil, ErrThreadLocked
	}

	post.Content = content
	if err := s.Repo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *ForumService) SetLocked(ctx context.Context, id *authz.Identity, threadID string, locked bool) (*entity.ForumThread, error) {
	if d := authz.AdminOnly(id); !d.Allowed {
		return nil, ErrForbidden
	}
	t, err := s.Repo.SetThreadLocked(ctx, threadID, locked)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *ForumService) SetPinned(ctx context.Context, id *authz.Identity, threadID string, pinned bool) (*entity.ForumThread, error) {
	if d := authz.AdminOnly(id); !d.Allowed {
		return nil, ErrForbidden
	}
	t, err := s.Repo.SetThreadPinned(ctx, threadID, pinned)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}
