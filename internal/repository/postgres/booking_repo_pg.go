package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/wandertrails/wandertrails-api/internal/domain"
	"github.com/wandertrails/wandertrails-api/internal/repository/ports"
)

type BookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepo(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	const query = `
		INSERT INTO bookings (
			user_id, package_id, package_title, travel_date, travelers,
			first_name, last_name, email, phone,
			subtotal, total_price, currency, payment_ref, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, user_id, package_id, package_title, travel_date, travelers,
			first_name, last_name, email, phone,
			subtotal, total_price, currency, payment_ref, status, created_at
	`

	var stored domain.Booking
	err := r.db.GetContext(ctx, &stored, query,
		booking.UserID, booking.PackageID, booking.PackageTitle,
		booking.TravelDate, booking.Travelers,
		booking.FirstName, booking.LastName, booking.Email, booking.Phone,
		booking.Subtotal, booking.TotalPrice, booking.Currency,
		booking.PaymentRef, booking.Status,
	)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const query = `
		SELECT id, user_id, package_id, package_title, travel_date, travelers,
			first_name, last_name, email, phone,
			subtotal, total_price, currency, payment_ref, status, created_at
		FROM bookings
		WHERE id = $1
	`
	var booking domain.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Booking, error) {
	const query = `
		SELECT id, user_id, package_id, package_title, travel_date, travelers,
			first_name, last_name, email, phone,
			subtotal, total_price, currency, payment_ref, status, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryxContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var booking domain.Booking
		if err := rows.StructScan(&booking); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `SELECT COUNT(*) FROM bookings WHERE user_id = $1`
	var count int64
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *BookingRepository) HasConfirmed(ctx context.Context, userID uuid.UUID, packageID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE user_id = $1 AND package_id = $2 AND status = 'confirmed'
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, packageID); err != nil {
		return false, err
	}
	return exists, nil
}

var _ ports.BookingRepository = (*BookingRepository)(nil)
