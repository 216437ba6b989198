package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/wandertrails/wandertrails-api/internal/booking"
	"github.com/wandertrails/wandertrails-api/internal/domain"
	"github.com/wandertrails/wandertrails-api/internal/payment"
	"github.com/wandertrails/wandertrails-api/internal/repository/ports"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingForbidden = errors.New("not allowed to view this booking")
	ErrWizardIncomplete = errors.New("wizard has not reached the payment step")

	// ErrBookingUnrecorded is returned when the charge succeeded but the
	// booking row could not be written. There is no compensating refund or
	// retry; the payment reference is logged and surfaced so an operator
	// can reconcile by hand.
	ErrBookingUnrecorded = errors.New("payment captured but booking could not be recorded")
)

// BookingNotifier delivers the post-booking notifications. Failures are
// best effort and never fail the booking itself.
type BookingNotifier interface {
	NotifyBookingConfirmed(ctx context.Context, booking *domain.Booking)
}

type BookingService struct {
	bookings ports.BookingRepository
	provider payment.Provider
	notifier BookingNotifier
	currency string
}

func NewBookingService(bookings ports.BookingRepository, provider payment.Provider, notifier BookingNotifier) *BookingService {
	return &BookingService{
		bookings: bookings,
		provider: provider,
		notifier: notifier,
		currency: booking.DefaultCurrency,
	}
}

// CompleteResult carries what the confirmation step renders.
type CompleteResult struct {
	Booking      *domain.Booking
	Quote        booking.Quote
	ClientSecret string
}

// Complete executes the payment step of a wizard: charge the fee-inclusive
// total, record the booking, advance the wizard to confirmation, and fan
// out notifications. The charge is the only side-effecting transition in
// the whole wizard.
//
// Failure semantics follow the storefront: a declined charge leaves the
// wizard on the payment step with the processor's message surfaced inline
// and nothing persisted. A persistence failure after a successful charge
// returns ErrBookingUnrecorded and is deliberately not compensated.
func (s *BookingService) Complete(ctx context.Context, w *booking.Wizard, userID *uuid.UUID) (*CompleteResult, error) {
	if w.State != booking.StatePayment {
		return nil, ErrWizardIncomplete
	}

	quote := w.QuoteFor()
	charge, err := s.provider.Charge(ctx, payment.ChargeRequest{
		AmountMinor:  booking.AmountMinor(quote.Total),
		Currency:     s.currency,
		Description:  fmt.Sprintf("%s, %s, %d traveler(s)", w.Package.Title, w.Date, w.Travelers),
		ReceiptEmail: w.Contact.Email,
		Metadata: map[string]string{
			"package_id":  w.Package.ID,
			"travel_date": w.Date,
			"travelers":   strconv.Itoa(w.Travelers),
		},
	})
	if err != nil {
		return nil, err
	}

	if err := w.Confirm(); err != nil {
		return nil, err
	}

	phone := strings.TrimSpace(w.Contact.Phone)
	var phonePtr *string
	if phone != "" {
		phonePtr = &phone
	}
	ref := charge.Reference

	toCreate := &domain.Booking{
		UserID:       userID,
		PackageID:    w.Package.ID,
		PackageTitle: w.Package.Title,
		TravelDate:   w.Date,
		Travelers:    w.Travelers,
		FirstName:    strings.TrimSpace(w.Contact.FirstName),
		LastName:     strings.TrimSpace(w.Contact.LastName),
		Email:        strings.TrimSpace(w.Contact.Email),
		Phone:        phonePtr,
		Subtotal:     quote.Subtotal,
		TotalPrice:   quote.Total,
		Currency:     s.currency,
		PaymentRef:   &ref,
		Status:       domain.BookingStatusConfirmed,
	}

	stored, err := s.bookings.Create(ctx, toCreate)
	if err != nil {
		log.Printf("booking unrecorded after successful charge: payment_ref=%s package=%s err=%v",
			charge.Reference, w.Package.ID, err)
		return nil, fmt.Errorf("%w (payment ref %s): %v", ErrBookingUnrecorded, charge.Reference, err)
	}

	if s.notifier != nil {
		s.notifier.NotifyBookingConfirmed(ctx, stored)
	}

	return &CompleteResult{
		Booking:      stored,
		Quote:        quote,
		ClientSecret: charge.ClientSecret,
	}, nil
}

type BookingListResult struct {
	Items  []domain.Booking
	Total  int64
	Limit  int
	Offset int
}

func (s *BookingService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) (*BookingListResult, error) {
	nLimit, nOffset := normalizePagination(limit, offset)

	items, err := s.bookings.ListByUser(ctx, userID, nLimit, nOffset)
	if err != nil {
		return nil, err
	}
	total, err := s.bookings.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &BookingListResult{Items: items, Total: total, Limit: nLimit, Offset: nOffset}, nil
}

// GetByID returns a booking only to its owner.
func (s *BookingService) GetByID(ctx context.Context, id, requesterID uuid.UUID) (*domain.Booking, error) {
	stored, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if stored.UserID == nil || *stored.UserID != requesterID {
		return nil, ErrBookingForbidden
	}
	return stored, nil
}

func normalizePagination(limit, offset int) (int, int) {
	const (
		defaultLimit = 20
		maxLimit     = 100
	)

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
