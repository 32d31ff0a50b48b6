package application

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
	"github.com/Ping-Win-Info/insavente/internal/domain/repository"
	"github.com/Ping-Win-Info/insavente/pkg/helpers"
)

const profileCacheTTL = 5 * time.Minute

// UserService serves public profiles and seller ratings. Profiles are
// cached in Redis and invalidated on rating writes.
type UserService struct {
	Users   repository.UserRepository
	Ratings repository.RatingRepository
	Redis   *redis.Client
	Logger  *logrus.Logger
}

func NewUserService(users repository.UserRepository, ratings repository.RatingRepository, rdb *redis.Client, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Ratings: ratings, Redis: rdb, Logger: logger}
}

// PublicProfile is a user as seen by other members. Email stays private.
type PublicProfile struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	MemberSince   time.Time `json:"member_since"`
	AverageRating float64   `json:"average_rating"`
	RatingCount   int       `json:"rating_count"`
}

func profileCacheKey(userID string) string {
	return fmt.Sprintf("profile:%s", userID)
}

func (s *UserService) Profile(ctx context.Context, userID string) (*PublicProfile, error) {
	if s.Redis != nil {
		var cached PublicProfile
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, profileCacheKey(userID), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	ratings, err := s.Ratings.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &PublicProfile{
		ID:            u.ID,
		Name:          u.Name,
		Role:          u.Role,
		MemberSince:   u.CreatedAt,
		AverageRating: averageScore(ratings),
		RatingCount:   len(ratings),
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, profileCacheKey(userID), p, profileCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("profile cache set failed")
		}
	}
	return p, nil
}

func (s *UserService) ListRatings(ctx context.Context, userID string) ([]entity.Rating, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Ratings.ListForUser(ctx, userID)
}

// RateUser records a score from rater to rated. A second rating by the same
// rater replaces the first one.
func (s *UserService) RateUser(ctx context.Context, raterID, ratedUserID string, score int, comment string) (*entity.Rating, error) {
	if raterID == ratedUserID {
		return nil, ErrSelfRating
	}
	if _, err := s.Users.GetByID(ctx, ratedUserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	r := &entity.Rating{
		RatedUserID: ratedUserID,
		RaterID:     raterID,
		Score:       score,
		Comment:     comment,
	}
	if err := s.Ratings.Upsert(ctx, r); err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := helpers.RedisDel(ctx, s.Redis, profileCacheKey(ratedUserID)); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("profile cache invalidation failed")
		}
	}
	return r, nil
}

// averageScore rounds to one decimal so profiles show "4.3" not float noise.
func averageScore(ratings []entity.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum int
	for _, r := range ratings {
		sum += r.Score
	}
	avg := float64(sum) / float64(len(ratings))
	return math.Round(avg*10) / 10
}
