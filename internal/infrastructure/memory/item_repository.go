// Package memory provides in-memory repository implementations backed by the
// pure listing engine. They serve service tests and local experimentation; the
// Postgres repositories are the production path.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
	"github.com/Ping-Win-Info/insavente/internal/domain/repository"
	"github.com/Ping-Win-Info/insavente/internal/listing"
)

type ItemRepository struct {
	mu    sync.RWMutex
	items map[string]entity.Item
	seq   int
}

func NewItemRepository() *ItemRepository {
	return &ItemRepository{items: map[string]entity.Item{}}
}

func (r *ItemRepository) Create(_ context.Context, it *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if it.ID == "" {
		r.seq++
		it.ID = "item-" + strconv.Itoa(r.seq)
	}
	it.IsActive = true
	now := time.Now()
	it.CreatedAt = now
	it.UpdatedAt = now
	r.items[it.ID] = *it
	return nil
}

func (r *ItemRepository) GetByID(_ context.Context, id string) (*entity.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &it, nil
}

func (r *ItemRepository) Update(_ context.Context, it *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[it.ID]; !ok {
		return repository.ErrNotFound
	}
	it.UpdatedAt = time.Now()
	r.items[it.ID] = *it
	return nil
}

func (r *ItemRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// Find executes the spec through listing.Apply, the same semantics the
// Postgres repository pushes down to SQL.
func (r *ItemRepository) Find(_ context.Context, spec listing.Spec) ([]entity.Item, int, error) {
	r.mu.RLock()
	snapshot := make([]entity.Item, 0, len(r.items))
	for _, it := range r.items {
		snapshot = append(snapshot, it)
	}
	r.mu.RUnlock()

	page := listing.Apply(snapshot, spec)
	return page.Items, page.TotalItems, nil
}

var _ repository.ItemRepository = (*ItemRepository)(nil)
