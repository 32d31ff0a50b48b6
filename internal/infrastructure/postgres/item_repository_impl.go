package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
	"github.com/Ping-Win-Info/insavente/internal/domain/repository"
	"github.com/Ping-Win-Info/insavente/internal/listing"
)

const itemColumns = `id, seller_id, title, description, price, category, location, images, is_active, created_at, updated_at`

type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

func scanItem(row pgx.Row, it *entity.Item) error {
	return row.Scan(&it.ID, &it.SellerID, &it.Title, &it.Description, &it.Price,
		&it.Category, &it.Location, &it.Images, &it.IsActive, &it.CreatedAt, &it.UpdatedAt)
}

func (r *ItemRepository) Create(ctx context.Context, it *entity.Item) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO items (seller_id, title, description, price, category, location, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_active, created_at, updated_at
	`, it.SellerID, it.Title, it.Description, it.Price, it.Category, it.Location, it.Images)

	return row.Scan(&it.ID, &it.IsActive, &it.CreatedAt, &it.UpdatedAt)
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	it := &entity.Item{}
	row := r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
	if err := scanItem(row, it); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return it, nil
}

func (r *ItemRepository) Update(ctx context.Context, it *entity.Item) error {
	it.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE items
		SET title = $1, description = $2, price = $3, category = $4, location = $5,
		    images = $6, is_active = $7, updated_at = $8
		WHERE id = $9
	`, it.Title, it.Description, it.Price, it.Category, it.Location,
		it.Images, it.IsActive, it.UpdatedAt, it.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Find pushes the listing spec down to SQL: AND-combined filters over the
// is_active base predicate, primary sort with id tie-break, offset
// pagination, and a count over the same WHERE clause. Count and page run as
// separate statements; they may observe different snapshots under concurrent
// writes.
func (r *ItemRepository) Find(ctx context.Context, spec listing.Spec) ([]entity.Item, int, error) {
	where, args := buildItemWhere(spec)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM items `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`SELECT %s FROM items %s %s LIMIT $%d OFFSET $%d`,
		itemColumns, where, buildItemOrder(spec), len(args)+1, len(args)+2)
	args = append(args, spec.PageSize, spec.Offset())

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]entity.Item, 0, spec.PageSize)
	for rows.Next() {
		var it entity.Item
		if err := scanItem(rows, &it); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

var _ repository.ItemRepository = (*ItemRepository)(nil)
