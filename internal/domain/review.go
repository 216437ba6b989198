package domain

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PackageID string    `db:"package_id" json:"package_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	UserName  string    `db:"user_name" json:"user_name"`
	Rating    int       `db:"rating" json:"rating"`
	Comment   *string   `db:"comment" json:"comment,omitempty"`
	Verified  bool      `db:"verified" json:"verified"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type ReviewAggregate struct {
	PackageID     string      `json:"package_id"`
	AverageRating float64     `json:"average_rating"`
	TotalReviews  int         `json:"total_reviews"`
	RatingCounts  map[int]int `json:"rating_counts"`
}

type ReviewListResult struct {
	PackageID string          `json:"package_id"`
	Reviews   []Review        `json:"reviews"`
	Aggregate ReviewAggregate `json:"aggregate"`
	Limit     int             `json:"limit"`
	Offset    int             `json:"offset"`
}
