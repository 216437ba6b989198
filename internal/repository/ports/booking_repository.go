package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/wandertrails/wandertrails-api/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Booking, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	HasConfirmed(ctx context.Context, userID uuid.UUID, packageID string) (bool, error)
}
