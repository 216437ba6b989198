package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/wandertrails/wandertrails-api/internal/domain"
	"github.com/wandertrails/wandertrails-api/internal/repository/ports"
)

type ReviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepo(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	const query = `
		INSERT INTO reviews (package_id, user_id, user_name, rating, comment, verified)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, package_id, user_id, user_name, rating, comment, verified, created_at
	`

	var stored domain.Review
	err := r.db.GetContext(ctx, &stored, query,
		review.PackageID, review.UserID, review.UserName,
		review.Rating, review.Comment, review.Verified,
	)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *ReviewRepository) ListByPackage(ctx context.Context, packageID string, limit, offset int) ([]domain.Review, error) {
	const query = `
		SELECT id, package_id, user_id, user_name, rating, comment, verified, created_at
		FROM reviews
		WHERE package_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryxContext(ctx, query, packageID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var review domain.Review
		if err := rows.StructScan(&review); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) AggregateByPackage(ctx context.Context, packageID string) (*domain.ReviewAggregate, error) {
	const query = `
		SELECT rating, COUNT(*) AS count
		FROM reviews
		WHERE package_id = $1
		GROUP BY rating
	`

	rows, err := r.db.QueryxContext(ctx, query, packageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	aggregate := &domain.ReviewAggregate{
		PackageID:    packageID,
		RatingCounts: make(map[int]int),
	}
	var sum int
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, err
		}
		aggregate.RatingCounts[rating] = count
		aggregate.TotalReviews += count
		sum += rating * count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if aggregate.TotalReviews > 0 {
		aggregate.AverageRating = float64(sum) / float64(aggregate.TotalReviews)
	}
	return aggregate, nil
}

var _ ports.ReviewRepository = (*ReviewRepository)(nil)
