package repository

import (
	"context"

	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
)

// UserRepository defines user-related storage operations. Duplicate email on
// Create surfaces as ErrConflict; lookups miss with ErrNotFound.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
