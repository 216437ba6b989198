package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationSettings holds one row per user, upserted on the user_id
// conflict column.
type NotificationSettings struct {
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	NotifyInApp bool      `db:"notify_in_app" json:"notify_in_app"`
	NotifyEmail bool      `db:"notify_email" json:"notify_email"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type NotificationKind string

const (
	NotificationBookingConfirmed NotificationKind = "booking_confirmed"
	NotificationBookingIssue     NotificationKind = "booking_issue"
)

type Notification struct {
	ID        uuid.UUID        `db:"id" json:"id"`
	UserID    uuid.UUID        `db:"user_id" json:"user_id"`
	Kind      NotificationKind `db:"kind" json:"kind"`
	Title     string           `db:"title" json:"title"`
	Body      string           `db:"body" json:"body"`
	Read      bool             `db:"read" json:"read"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}
