package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ping-Win-Info/insavente/internal/authz"
	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
	"github.com/Ping-Win-Info/insavente/internal/domain/repository"
	"github.com/Ping-Win-Info/insavente/internal/listing"
)

type fakeForumRepo struct {
	categories map[string]*entity.ForumCategory
	threads    map[string]*entity.ForumThread
	posts      map[string]*entity.ForumPost
	seq        int
}

func newFakeForumRepo() *fakeForumRepo {
	return &fakeForumRepo{
		categories: map[string]*entity.ForumCategory{
			"cat-1": {ID: "cat-1", Name: "Discussions", Order: 1},
		},
		threads: map[string]*entity.ForumThread{},
		posts:   map[string]*entity.ForumPost{},
	}
}

func (r *fakeForumRepo) nextID(prefix string) string {
	r.seq++
	return fmt.Sprintf("%s-%d", prefix, r.seq)
}

func (r *fakeForumRepo) Categories(_ context.Context) ([]entity.ForumCategory, error) {
	out := make([]entity.ForumCategory, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeForumRepo) GetCategory(_ context.Context, id string) (*entity.ForumCategory, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeForumRepo) CreateThread(_ context.Context, t *entity.ForumThread, first *entity.ForumPost) error {
	t.ID = r.nextID("thread")
	t.PostCount = 1
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	r.threads[t.ID] = &cp

	first.ID = r.nextID("post")
	first.ThreadID = t.ID
	first.CreatedAt = time.Now()
	pcp := *first
	r.posts[first.ID] = &pcp
	return nil
}

func (r *fakeForumRepo) GetThread(_ context.Context, id string) (*entity.ForumThread, error) {
	t, ok := r.threads[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeForumRepo) ListThreads(_ context.Context, q repository.ThreadQuery) ([]entity.ForumThread, int, error) {
	var out []entity.ForumThread
	for _, t := range r.threads {
		if q.CategoryID != "" && t.CategoryID != q.CategoryID {
			continue
		}
		out = append(out, *t)
	}
	return out, len(out), nil
}

func (r *fakeForumRepo) SetThreadLocked(_ context.Context, id string, locked bool) (*entity.ForumThread, error) {
	t, ok := r.threads[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t.IsLocked = locked
	cp := *t
	return &cp, nil
}

func (r *fakeForumRepo) SetThreadPinned(_ context.Context, id string, pinned bool) (*entity.ForumThread, error) {
	t, ok := r.threads[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t.IsPinned = pinned
	cp := *t
	return &cp, nil
}

func (r *fakeForumRepo) ThreadPosts(_ context.Context, threadID string) ([]entity.ForumPost, error) {
	var out []entity.ForumPost
	for _, p := range r.posts {
		if p.ThreadID == threadID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeForumRepo) CreatePost(_ context.Context, p *entity.ForumPost) error {
	if _, ok := r.threads[p.ThreadID]; !ok {
		return repository.ErrNotFound
	}
	p.ID = r.nextID("post")
	p.CreatedAt = time.Now()
	cp := *p
	r.posts[p.ID] = &cp
	r.threads[p.ThreadID].PostCount++
	return nil
}

func (r *fakeForumRepo) GetPost(_ context.Context, id string) (*entity.ForumPost, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeForumRepo) UpdatePost(_ context.Context, p *entity.ForumPost) error {
	stored, ok := r.posts[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	stored.Content = p.Content
	stored.UpdatedAt = &now
	p.UpdatedAt = &now
	return nil
}

func newTestForumService(repo repository.ForumRepository) *ForumService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewForumService(repo, logger)
}

func TestCreateThreadWithFirstPost(t *testing.T) {
	repo := newFakeForumRepo()
	svc := newTestForumService(repo)
	ctx := context.Background()

	thread, err := svc.CreateThread(ctx, "alice", CreateThreadInput{
		CategoryID: "cat-1",
		Title:      "Premiers pas",
		Content:    "Bonjour à tous",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, thread.PostCount)

	detail, err := svc.GetThread(ctx, thread.ID)
	require.NoError(t, err)
	require.Len(t, detail.Posts, 1)
	assert.Equal(t, "Bonjour à tous", detail.Posts[0].Content)

	_, err = svc.CreateThread(ctx, "alice", CreateThreadInput{CategoryID: "missing", Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLockedThreadRejectsPosts(t *testing.T) {
	repo := newFakeForumRepo()
	svc := newTestForumService(repo)
	ctx := context.Background()

	thread, err := svc.CreateThread(ctx, "alice", CreateThreadInput{CategoryID: "cat-1", Title: "t", Content: "c"})
	require.NoError(t, err)

	admin := &authz.Identity{ID: "root", Role: entity.RoleAdmin}
	member := &authz.Identity{ID: "bob", Role: entity.RoleMember}

	// Only an admin may lock.
	_, err = svc.SetLocked(ctx, member, thread.ID, true)
	require.ErrorIs(t, err, ErrForbidden)

	locked, err := svc.SetLocked(ctx, admin, thread.ID, true)
	require.NoError(t, err)
	assert.True(t, locked.IsLocked)

	_, err = svc.CreatePost(ctx, "bob", thread.ID, "trop tard")
	require.ErrorIs(t, err, ErrThreadLocked)

	// Unlock restores posting.
	_, err = svc.SetLocked(ctx, admin, thread.ID, false)
	require.NoError(t, err)
	post, err := svc.CreatePost(ctx, "bob", thread.ID, "me revoilà")
	require.NoError(t, err)
	assert.Equal(t, "bob", post.AuthorID)
}

func TestListThreadsRejectsBadPagination(t *testing.T) {
	repo := newFakeForumRepo()
	svc := newTestForumService(repo)
	ctx := context.Background()

	for _, in := range []ThreadListInput{
		{Page: 0, PageSize: 20},
		{Page: -1, PageSize: 20},
		{Page: 1, PageSize: 0},
		{Page: 1, PageSize: 101},
	} {
		_, err := svc.ListThreads(ctx, in)
		var verr *listing.ValidationError
		require.ErrorAs(t, err, &verr, "input %+v", in)
		assert.Equal(t, listing.CodeInvalidPagination, verr.Code)
	}

	page, err := svc.ListThreads(ctx, ThreadListInput{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Zero(t, page.TotalItems)
}

func TestUpdatePostOwnershipGate(t *testing.T) {
	repo := newFakeForumRepo()
	svc := newTestForumService(repo)
	ctx := context.Background()

	thread, err := svc.CreateThread(ctx, "alice", CreateThreadInput{CategoryID: "cat-1", Title: "t", Content: "c"})
	require.NoError(t, err)
	post, err := svc.CreatePost(ctx, "alice", thread.ID, "version initiale")
	require.NoError(t, err)

	_, err = svc.UpdatePost(ctx, &authz.Identity{ID: "bob", Role: entity.RoleMember}, post.ID, "détourné")
	require.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdatePost(ctx, &authz.Identity{ID: "alice", Role: entity.RoleMember}, post.ID, "version corrigée")
	require.NoError(t, err)
	assert.Equal(t, "version corrigée", updated.Content)
	assert.NotNil(t, updated.UpdatedAt)
}

func TestPinIsAdminOnly(t *testing.T) {
	repo := newFakeForumRepo()
	svc := newTestForumService(repo)
	ctx := context.Background()

	thread, err := svc.CreateThread(ctx, "alice", CreateThreadInput{CategoryID: "cat-1", Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = svc.SetPinned(ctx, &authz.Identity{ID: "alice", Role: entity.RoleMember}, thread.ID, true)
	require.ErrorIs(t, err, ErrForbidden)

	pinned, err := svc.SetPinned(ctx, &authz.Identity{ID: "root", Role: entity.RoleAdmin}, thread.ID, true)
	require.NoError(t, err)
	assert.True(t, pinned.IsPinned)
}
