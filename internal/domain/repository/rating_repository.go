package repository

import (
	"context"

	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
)

// RatingRepository defines rating storage. Upsert replaces an existing rating
// by the same rater for the same user.
type RatingRepository interface {
	Upsert(ctx context.Context, r *entity.Rating) error
	ListForUser(ctx context.Context, ratedUserID string) ([]entity.Rating, error)
}
