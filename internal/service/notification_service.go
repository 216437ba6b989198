package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/wandertrails/wandertrails-api/internal/domain"
	"github.com/wandertrails/wandertrails-api/internal/repository/ports"
)

var ErrNotificationNotFound = errors.New("notification not found")

// BookingMailer sends the confirmation email. nil disables email delivery.
type BookingMailer interface {
	SendBookingConfirmation(ctx context.Context, to string, booking *domain.Booking) error
}

type NotificationService struct {
	settings      ports.NotificationSettingsRepository
	notifications ports.NotificationRepository
	mailer        BookingMailer
}

func NewNotificationService(
	settingsRepo ports.NotificationSettingsRepository,
	notificationRepo ports.NotificationRepository,
	mailer BookingMailer,
) *NotificationService {
	return &NotificationService{
		settings:      settingsRepo,
		notifications: notificationRepo,
		mailer:        mailer,
	}
}

// GetSettings returns the stored row or the defaults (both channels on)
// when the user has never saved preferences.
func (s *NotificationService) GetSettings(ctx context.Context, userID uuid.UUID) (*domain.NotificationSettings, error) {
	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return &domain.NotificationSettings{
				UserID:      userID,
				NotifyInApp: true,
				NotifyEmail: true,
			}, nil
		}
		return nil, err
	}
	return settings, nil
}

func (s *NotificationService) UpdateSettings(ctx context.Context, userID uuid.UUID, notifyInApp, notifyEmail bool) (*domain.NotificationSettings, error) {
	return s.settings.Upsert(ctx, &domain.NotificationSettings{
		UserID:      userID,
		NotifyInApp: notifyInApp,
		NotifyEmail: notifyEmail,
	})
}

type NotificationListResult struct {
	Items  []domain.Notification
	Unread int64
	Limit  int
	Offset int
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, limit, offset int) (*NotificationListResult, error) {
	nLimit, nOffset := normalizePagination(limit, offset)

	items, err := s.notifications.ListByUser(ctx, userID, nLimit, nOffset)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifications.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &NotificationListResult{Items: items, Unread: unread, Limit: nLimit, Offset: nOffset}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if err := s.notifications.MarkRead(ctx, userID, notificationID); err != nil {
		if isNotFound(err) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifications.UnreadCount(ctx, userID)
}

// NotifyBookingConfirmed fans a confirmed booking out to the channels the
// user left enabled. Guest bookings get the email only. Every delivery
// failure is logged and swallowed; the booking is already confirmed and
// must not fail here.
func (s *NotificationService) NotifyBookingConfirmed(ctx context.Context, booking *domain.Booking) {
	notifyInApp := false
	notifyEmail := true

	if booking.UserID != nil {
		settings, err := s.GetSettings(ctx, *booking.UserID)
		if err != nil {
			log.Printf("notification settings lookup failed for user %s: %v", booking.UserID, err)
		} else {
			notifyInApp = settings.NotifyInApp
			notifyEmail = settings.NotifyEmail
		}
	}

	if notifyInApp && booking.UserID != nil {
		_, err := s.notifications.Create(ctx, &domain.Notification{
			UserID: *booking.UserID,
			Kind:   domain.NotificationBookingConfirmed,
			Title:  "Booking confirmed",
			Body: fmt.Sprintf("Your trip %q on %s for %d traveler(s) is confirmed.",
				booking.PackageTitle, booking.TravelDate, booking.Travelers),
		})
		if err != nil {
			log.Printf("in-app notification failed for booking %s: %v", booking.ID, err)
		}
	}

	if notifyEmail && s.mailer != nil && booking.Email != "" {
		if err := s.mailer.SendBookingConfirmation(ctx, booking.Email, booking); err != nil {
			log.Printf("confirmation email failed for booking %s: %v", booking.ID, err)
		}
	}
}

var _ BookingNotifier = (*NotificationService)(nil)
