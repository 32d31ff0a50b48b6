package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
	"github.com/Ping-Win-Info/insavente/internal/domain/repository"
)

const threadColumns = `id, title, author_id, category_id, post_count, is_pinned, is_locked, created_at, updated_at`

type ForumRepository struct {
	pool *pgxpool.Pool
}

func NewForumRepository(pool *pgxpool.Pool) *ForumRepository {
	return &ForumRepository{pool: pool}
}

func (r *ForumRepository) Categories(ctx context.Context) ([]entity.ForumCategory, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, sort_order
		FROM forum_categories
		ORDER BY sort_order ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []entity.ForumCategory
	for rows.Next() {
		var c entity.ForumCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Order); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *ForumRepository) GetCategory(ctx context.Context, id string) (*entity.ForumCategory, error) {
	c := &entity.ForumCategory{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, sort_order FROM forum_categories WHERE id = $1
	`, id)
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// CreateThread inserts the thread and its first post in one transaction.
func (r *ForumRepository) CreateThread(ctx context.Context, t *entity.ForumThread, first *entity.ForumPost) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO forum_threads (title, author_id, category_id, post_count)
		VALUES ($1, $2, $3, 1)
		RETURNING id, post_count, is_pinned, is_locked, created_at, updated_at
	`, t.Title, t.AuthorID, t.CategoryID)
	if err := row.Scan(&t.ID, &t.PostCount, &t.IsPinned, &t.IsLocked, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return err
	}

	first.ThreadID = t.ID
	row = tx.QueryRow(ctx, `
		INSERT INTO forum_posts (thread_id, author_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, first.ThreadID, first.AuthorID, first.Content)
	if err := row.Scan(&first.ID, &first.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ForumRepository) GetThread(ctx context.Context, id string) (*entity.ForumThread, error) {
	t := &entity.ForumThread{}
	row := r.pool.QueryRow(ctx, `SELECT `+threadColumns+` FROM forum_threads WHERE id = $1`, id)
	if err := scanThread(row, t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func scanThread(row pgx.Row, t *entity.ForumThread) error {
	return row.Scan(&t.ID, &t.Title, &t.AuthorID, &t.CategoryID, &t.PostCount,
		&t.IsPinned, &t.IsLocked, &t.CreatedAt, &t.UpdatedAt)
}

// ListThreads pages threads: pinned first, then most recently updated, id
// tie-break. Title search is a literal case-insensitive substring match.
func (r *ForumRepository) ListThreads(ctx context.Context, q repository.ThreadQuery) ([]entity.ForumThread, int, error) {
	conds := []string{"TRUE"}
	args := []any{}

	if q.CategoryID != "" {
		args = append(args, q.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if q.Search != "" {
		args = append(args, "%"+escapeLike(q.Search)+"%")
		conds = append(conds, fmt.Sprintf(`title ILIKE $%d ESCAPE '\'`, len(args)))
	}
	where := "WHERE " + strings.Join(conds, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM forum_threads `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM forum_threads %s
		ORDER BY is_pinned DESC, updated_at DESC, id ASC
		LIMIT $%d OFFSET $%d
	`, threadColumns, where, len(args)+1, len(args)+2)
	args = append(args, q.PageSize, (q.Page-1)*q.PageSize)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	threads := make([]entity.ForumThread, 0, q.PageSize)
	for rows.Next() {
		var t entity.ForumThread
		if err := scanThread(rows, &t); err != nil {
			return nil, 0, err
		}
		threads = append(threads, t)
	}
	return threads, total, rows.Err()
}

func (r *ForumRepository) SetThreadLocked(ctx context.Context, id string, locked bool) (*entity.ForumThread, error) {
	return r.setThreadFlag(ctx, id, "is_locked", locked)
}

func (r *ForumRepository) SetThreadPinned(ctx context.Context, id string, pinned bool) (*entity.ForumThread, error) {
	return r.setThreadFlag(ctx, id, "is_pinned", pinned)
}

func (r *ForumRepository) setThreadFlag(ctx context.Context, id, col string, v bool) (*entity.ForumThread, error) {
	t := &entity.ForumThread{}
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE forum_threads SET %s = $1 WHERE id = $2
		RETURNING %s
	`, col, threadColumns), v, id)
	if err := scanThread(row, t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *ForumRepository) ThreadPosts(ctx context.Context, threadID string) ([]entity.ForumPost, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, thread_id, author_id, content, created_at, updated_at
		FROM forum_posts
		WHERE thread_id = $1
		ORDER BY created_at ASC, id ASC
	`, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []entity.ForumPost
	for rows.Next() {
		var p entity.ForumPost
		if err := rows.Scan(&p.ID, &p.ThreadID, &p.AuthorID, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// CreatePost appends to a thread and bumps its post_count and updated_at.
func (r *ForumRepository) CreatePost(ctx context.Context, p *entity.ForumPost) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO forum_posts (thread_id, author_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, p.ThreadID, p.AuthorID, p.Content)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE forum_threads
		SET post_count = post_count + 1, updated_at = now()
		WHERE id = $1
	`, p.ThreadID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ForumRepository) GetPost(ctx context.Context, id string) (*entity.ForumPost, error) {
	p := &entity.ForumPost{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, thread_id, author_id, content, created_at, updated_at
		FROM forum_posts WHERE id = $1
	`, id)
	if err := row.Scan(&p.ID, &p.ThreadID, &p.AuthorID, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ForumRepository) UpdatePost(ctx context.Context, p *entity.ForumPost) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE forum_posts SET content = $1, updated_at = now()
		WHERE id = $2
		RETURNING updated_at
	`, p.Content, p.ID)
	if err := row.Scan(&p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

var _ repository.ForumRepository = (*ForumRepository)(nil)
