package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/wandertrails/wandertrails-api/internal/domain"
	"github.com/wandertrails/wandertrails-api/internal/repository/ports"
)

type NotificationSettingsRepository struct {
	db *sqlx.DB
}

func NewNotificationSettingsRepo(db *sqlx.DB) *NotificationSettingsRepository {
	return &NotificationSettingsRepository{db: db}
}

func (r *NotificationSettingsRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.NotificationSettings, error) {
	const query = `
		SELECT user_id, notify_in_app, notify_email, updated_at
		FROM user_notification_settings
		WHERE user_id = $1
	`
	var settings domain.NotificationSettings
	if err := r.db.GetContext(ctx, &settings, query, userID); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *NotificationSettingsRepository) Upsert(ctx context.Context, settings *domain.NotificationSettings) (*domain.NotificationSettings, error) {
	const query = `
		INSERT INTO user_notification_settings (user_id, notify_in_app, notify_email, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET notify_in_app = EXCLUDED.notify_in_app,
		    notify_email = EXCLUDED.notify_email,
		    updated_at = NOW()
		RETURNING user_id, notify_in_app, notify_email, updated_at
	`

	var stored domain.NotificationSettings
	err := r.db.GetContext(ctx, &stored, query,
		settings.UserID, settings.NotifyInApp, settings.NotifyEmail,
	)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

var _ ports.NotificationSettingsRepository = (*NotificationSettingsRepository)(nil)

type NotificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepo(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *domain.Notification) (*domain.Notification, error) {
	const query = `
		INSERT INTO user_notifications (user_id, kind, title, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, kind, title, body, read, created_at
	`

	var stored domain.Notification
	err := r.db.GetContext(ctx, &stored, query,
		notification.UserID, notification.Kind, notification.Title, notification.Body,
	)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Notification, error) {
	const query = `
		SELECT id, user_id, kind, title, body, read, created_at
		FROM user_notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryxContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]domain.Notification, 0)
	for rows.Next() {
		var notification domain.Notification
		if err := rows.StructScan(&notification); err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	const query = `
		UPDATE user_notifications
		SET read = TRUE
		WHERE id = $1 AND user_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, notificationID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM user_notifications
		WHERE user_id = $1 AND read = FALSE
	`
	var count int64
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, err
	}
	return count, nil
}

var _ ports.NotificationRepository = (*NotificationRepository)(nil)
