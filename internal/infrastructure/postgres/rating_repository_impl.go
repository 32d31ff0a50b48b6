package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
	"github.com/Ping-Win-Info/insavente/internal/domain/repository"
)

type RatingRepository struct {
	pool *pgxpool.Pool
}

func NewRatingRepository(pool *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{pool: pool}
}

// Upsert inserts or, when the rater already rated this user, replaces the
// previous score and comment.
func (r *RatingRepository) Upsert(ctx context.Context, rt *entity.Rating) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO ratings (rated_user_id, rater_id, score, comment)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (rated_user_id, rater_id)
		DO UPDATE SET score = EXCLUDED.score, comment = EXCLUDED.comment, created_at = now()
		RETURNING id, created_at
	`, rt.RatedUserID, rt.RaterID, rt.Score, rt.Comment)
	return row.Scan(&rt.ID, &rt.CreatedAt)
}

func (r *RatingRepository) ListForUser(ctx context.Context, ratedUserID string) ([]entity.Rating, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, rated_user_id, rater_id, score, comment, created_at
		FROM ratings
		WHERE rated_user_id = $1
		ORDER BY created_at DESC, id ASC
	`, ratedUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []entity.Rating
	for rows.Next() {
		var rt entity.Rating
		if err := rows.Scan(&rt.ID, &rt.RatedUserID, &rt.RaterID, &rt.Score, &rt.Comment, &rt.CreatedAt); err != nil {
			return nil, err
		}
		ratings = append(ratings, rt)
	}
	return ratings, rows.Err()
}

var _ repository.RatingRepository = (*RatingRepository)(nil)
