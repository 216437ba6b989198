package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/wandertrails/wandertrails-api/internal/domain"
)

type NotificationSettingsRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.NotificationSettings, error)
	Upsert(ctx context.Context, settings *domain.NotificationSettings) (*domain.NotificationSettings, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}
