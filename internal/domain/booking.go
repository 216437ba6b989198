package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
)

// Booking is the persisted result of a completed wizard. Rows are immutable
// once created; cancellation and refund flows do not exist.
type Booking struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	UserID       *uuid.UUID    `db:"user_id" json:"user_id,omitempty"`
	PackageID    string        `db:"package_id" json:"package_id"`
	PackageTitle string        `db:"package_title" json:"package_title"`
	TravelDate   string        `db:"travel_date" json:"travel_date"`
	Travelers    int           `db:"travelers" json:"travelers"`
	FirstName    string        `db:"first_name" json:"first_name"`
	LastName     string        `db:"last_name" json:"last_name"`
	Email        string        `db:"email" json:"email"`
	Phone        *string       `db:"phone" json:"phone,omitempty"`
	Subtotal     float64       `db:"subtotal" json:"subtotal"`
	TotalPrice   float64       `db:"total_price" json:"total_price"`
	Currency     string        `db:"currency" json:"currency"`
	PaymentRef   *string       `db:"payment_ref" json:"payment_ref,omitempty"`
	Status       BookingStatus `db:"status" json:"status"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
}
