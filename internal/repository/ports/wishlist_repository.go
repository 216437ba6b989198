package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/wandertrails/wandertrails-api/internal/domain"
)

type WishlistRepository interface {
	Add(ctx context.Context, userID uuid.UUID, packageID string) (*domain.WishlistEntry, error)
	Remove(ctx context.Context, userID uuid.UUID, packageID string) error
	Contains(ctx context.Context, userID uuid.UUID, packageID string) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.WishlistEntry, error)
}
