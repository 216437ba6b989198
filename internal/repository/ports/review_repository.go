package ports

import (
	"context"

	"github.com/wandertrails/wandertrails-api/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	ListByPackage(ctx context.Context, packageID string, limit, offset int) ([]domain.Review, error)
	AggregateByPackage(ctx context.Context, packageID string) (*domain.ReviewAggregate, error)
}
