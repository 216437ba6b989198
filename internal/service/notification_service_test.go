package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wandertrails/wandertrails-api/internal/domain"
)

type memorySettingsRepo struct {
	rows map[uuid.UUID]domain.NotificationSettings
}

func newMemorySettingsRepo() *memorySettingsRepo {
	return &memorySettingsRepo{rows: make(map[uuid.UUID]domain.NotificationSettings)}
}

func (m *memorySettingsRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.NotificationSettings, error) {
	row, ok := m.rows[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &row, nil
}

func (m *memorySettingsRepo) Upsert(ctx context.Context, settings *domain.NotificationSettings) (*domain.NotificationSettings, error) {
	stored := *settings
	stored.UpdatedAt = time.Now()
	m.rows[settings.UserID] = stored
	return &stored, nil
}

type memoryNotificationRepo struct {
	notifications []domain.Notification
}

func (m *memoryNotificationRepo) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	stored := *n
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	m.notifications = append(m.notifications, stored)
	return &stored, nil
}

func (m *memoryNotificationRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Notification, error) {
	out := make([]domain.Notification, 0)
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	if offset >= len(out) {
		return []domain.Notification{}, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryNotificationRepo) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	for i, n := range m.notifications {
		if n.ID == notificationID && n.UserID == userID {
			m.notifications[i].Read = true
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memoryNotificationRepo) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

type recordingMailer struct {
	sent []string
	err  error
}

func (m *recordingMailer) SendBookingConfirmation(ctx context.Context, to string, booking *domain.Booking) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

func TestNotificationServiceSettingsDefaults(t *testing.T) {
	svc := NewNotificationService(newMemorySettingsRepo(), &memoryNotificationRepo{}, nil)

	settings, err := svc.GetSettings(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if !settings.NotifyInApp || !settings.NotifyEmail {
		t.Fatalf("defaults should enable both channels: %+v", settings)
	}
}

func TestNotificationServiceSettingsRoundTrip(t *testing.T) {
	svc := NewNotificationService(newMemorySettingsRepo(), &memoryNotificationRepo{}, nil)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.UpdateSettings(ctx, userID, false, true); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	settings, err := svc.GetSettings(ctx, userID)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if settings.NotifyInApp || !settings.NotifyEmail {
		t.Fatalf("stored settings not returned: %+v", settings)
	}
}

func confirmedBooking(userID *uuid.UUID) *domain.Booking {
	return &domain.Booking{
		ID:           uuid.New(),
		UserID:       userID,
		PackageID:    "kyoto-traditions",
		PackageTitle: "Kyoto Traditions",
		TravelDate:   "2025-04-05",
		Travelers:    2,
		Email:        "lead@example.com",
		Status:       domain.BookingStatusConfirmed,
	}
}

func TestNotifyBookingConfirmedBothChannels(t *testing.T) {
	ctx := context.Background()
	notifications := &memoryNotificationRepo{}
	mailer := &recordingMailer{}
	svc := NewNotificationService(newMemorySettingsRepo(), notifications, mailer)

	userID := uuid.New()
	svc.NotifyBookingConfirmed(ctx, confirmedBooking(&userID))

	if len(notifications.notifications) != 1 {
		t.Fatalf("expected one in-app notification, got %d", len(notifications.notifications))
	}
	if notifications.notifications[0].Kind != domain.NotificationBookingConfirmed {
		t.Fatalf("kind = %s", notifications.notifications[0].Kind)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "lead@example.com" {
		t.Fatalf("mail deliveries = %v", mailer.sent)
	}

	unread, err := svc.UnreadCount(ctx, userID)
	if err != nil || unread != 1 {
		t.Fatalf("unread = %d err = %v", unread, err)
	}
}

func TestNotifyBookingConfirmedHonorsDisabledChannels(t *testing.T) {
	ctx := context.Background()
	settings := newMemorySettingsRepo()
	notifications := &memoryNotificationRepo{}
	mailer := &recordingMailer{}
	svc := NewNotificationService(settings, notifications, mailer)

	userID := uuid.New()
	if _, err := svc.UpdateSettings(ctx, userID, false, false); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	svc.NotifyBookingConfirmed(ctx, confirmedBooking(&userID))

	if len(notifications.notifications) != 0 {
		t.Fatal("in-app channel was disabled")
	}
	if len(mailer.sent) != 0 {
		t.Fatal("email channel was disabled")
	}
}

func TestNotifyBookingConfirmedGuestGetsEmailOnly(t *testing.T) {
	notifications := &memoryNotificationRepo{}
	mailer := &recordingMailer{}
	svc := NewNotificationService(newMemorySettingsRepo(), notifications, mailer)

	svc.NotifyBookingConfirmed(context.Background(), confirmedBooking(nil))

	if len(notifications.notifications) != 0 {
		t.Fatal("guest bookings have no in-app feed")
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("mail deliveries = %v", mailer.sent)
	}
}

func TestNotifyBookingConfirmedSwallowsMailerFailure(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("smtp unreachable")}
	svc := NewNotificationService(newMemorySettingsRepo(), &memoryNotificationRepo{}, mailer)

	// Must not panic or propagate; the booking is already confirmed.
	svc.NotifyBookingConfirmed(context.Background(), confirmedBooking(nil))
}

func TestNotificationServiceListAndMarkRead(t *testing.T) {
	ctx := context.Background()
	notifications := &memoryNotificationRepo{}
	svc := NewNotificationService(newMemorySettingsRepo(), notifications, nil)

	userID := uuid.New()
	svc.NotifyBookingConfirmed(ctx, confirmedBooking(&userID))
	svc.NotifyBookingConfirmed(ctx, confirmedBooking(&userID))

	list, err := svc.List(ctx, userID, 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list.Items) != 2 || list.Unread != 2 {
		t.Fatalf("items=%d unread=%d", len(list.Items), list.Unread)
	}
	if list.Limit != 20 {
		t.Fatalf("limit not normalized: %d", list.Limit)
	}

	if err := svc.MarkRead(ctx, userID, list.Items[0].ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	unread, err := svc.UnreadCount(ctx, userID)
	if err != nil || unread != 1 {
		t.Fatalf("unread after mark = %d err=%v", unread, err)
	}

	if err := svc.MarkRead(ctx, userID, uuid.New()); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound, got %v", err)
	}
	if err := svc.MarkRead(ctx, uuid.New(), list.Items[1].ID); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("cross-user mark must not be found, got %v", err)
	}
}
