package entity

import "time"

// Rating is one user's evaluation of another. One rating per (rated, rater)
// pair; re-rating replaces the previous score.
type Rating struct {
	ID          string    `json:"id"`
	RatedUserID string    `json:"rated_user_id"`
	RaterID     string    `json:"rater_id"`
	Score       int       `json:"score"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}
