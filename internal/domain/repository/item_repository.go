package repository

import (
	"context"

	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
	"github.com/Ping-Win-Info/insavente/internal/listing"
)

// ItemRepository defines item storage. Find executes a validated listing spec
// (AND-combined filters, tie-broken sort, offset pagination) and returns the
// page plus the total count over the same filter.
type ItemRepository interface {
	Create(ctx context.Context, it *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	Update(ctx context.Context, it *entity.Item) error
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, spec listing.Spec) ([]entity.Item, int, error)
}
