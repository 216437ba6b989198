package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/wandertrails/wandertrails-api/internal/booking"
	"github.com/wandertrails/wandertrails-api/internal/domain"
	"github.com/wandertrails/wandertrails-api/internal/payment"
)

type memoryBookingRepo struct {
	bookings  []domain.Booking
	createErr error
}

func (m *memoryBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	stored := *b
	stored.ID = uuid.New()
	m.bookings = append(m.bookings, stored)
	return &stored, nil
}

func (m *memoryBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			b := m.bookings[i]
			return &b, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memoryBookingRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Booking, error) {
	out := make([]domain.Booking, 0)
	for _, b := range m.bookings {
		if b.UserID != nil && *b.UserID == userID {
			out = append(out, b)
		}
	}
	if offset >= len(out) {
		return []domain.Booking{}, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryBookingRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, b := range m.bookings {
		if b.UserID != nil && *b.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *memoryBookingRepo) HasConfirmed(ctx context.Context, userID uuid.UUID, packageID string) (bool, error) {
	for _, b := range m.bookings {
		if b.UserID != nil && *b.UserID == userID && b.PackageID == packageID && b.Status == domain.BookingStatusConfirmed {
			return true, nil
		}
	}
	return false, nil
}

type recordingNotifier struct {
	confirmed []*domain.Booking
}

func (n *recordingNotifier) NotifyBookingConfirmed(ctx context.Context, b *domain.Booking) {
	n.confirmed = append(n.confirmed, b)
}

func paymentReadyWizard(t *testing.T, pkg domain.Package, date string, travelers int) *booking.Wizard {
	t.Helper()
	w := booking.NewWizard(pkg)
	if err := w.Select(date, travelers); err != nil {
		t.Fatalf("Select: %v", err)
	}
	contact := booking.Contact{FirstName: "Noor", LastName: "Haddad", Email: "noor@example.com"}
	if err := w.Inform(contact); err != nil {
		t.Fatalf("Inform: %v", err)
	}
	return w
}

func TestBookingServiceCompleteEndToEnd(t *testing.T) {
	ctx := context.Background()
	pkg := domain.Package{
		ID:             "kyoto",
		Title:          "Kyoto",
		Price:          2899,
		AvailableDates: []string{"2025-04-05"},
	}

	repo := &memoryBookingRepo{}
	provider := payment.NewFakeProvider()
	notifier := &recordingNotifier{}
	svc := NewBookingService(repo, provider, notifier)

	w := paymentReadyWizard(t, pkg, "2025-04-05", 3)
	userID := uuid.New()

	result, err := svc.Complete(ctx, w, &userID)
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}

	if w.State != booking.StateConfirmation {
		t.Fatalf("expected confirmation state, got %s", w.State)
	}
	if result.Booking.Subtotal != 8697 {
		t.Fatalf("subtotal = %v, want 8697", result.Booking.Subtotal)
	}
	if result.Booking.Travelers != 3 {
		t.Fatalf("travelers = %d, want 3", result.Booking.Travelers)
	}
	if result.Booking.Status != domain.BookingStatusConfirmed {
		t.Fatalf("status = %s", result.Booking.Status)
	}
	if result.Booking.PaymentRef == nil || *result.Booking.PaymentRef == "" {
		t.Fatal("expected a payment reference on the booking")
	}
	if len(repo.bookings) != 1 {
		t.Fatalf("expected one persisted booking, got %d", len(repo.bookings))
	}
	if len(provider.Charges) != 1 {
		t.Fatalf("expected one charge, got %d", len(provider.Charges))
	}
	if got := provider.Charges[0].AmountMinor; got != booking.AmountMinor(result.Quote.Total) {
		t.Fatalf("charged %d minor units, want %d", got, booking.AmountMinor(result.Quote.Total))
	}
	if len(notifier.confirmed) != 1 {
		t.Fatalf("expected one notification fan-out, got %d", len(notifier.confirmed))
	}
}

func TestBookingServiceCompleteRequiresPaymentState(t *testing.T) {
	svc := NewBookingService(&memoryBookingRepo{}, payment.NewFakeProvider(), nil)
	w := booking.NewWizard(domain.Package{ID: "kyoto", Price: 100, AvailableDates: []string{"2025-04-05"}})

	if _, err := svc.Complete(context.Background(), w, nil); !errors.Is(err, ErrWizardIncomplete) {
		t.Fatalf("expected ErrWizardIncomplete, got %v", err)
	}
}

func TestBookingServiceChargeFailureKeepsWizardOnPayment(t *testing.T) {
	ctx := context.Background()
	pkg := domain.Package{ID: "kyoto", Title: "Kyoto", Price: 2899, AvailableDates: []string{"2025-04-05"}}

	repo := &memoryBookingRepo{}
	provider := payment.NewFakeProvider()
	provider.Decline = true
	svc := NewBookingService(repo, provider, nil)

	w := paymentReadyWizard(t, pkg, "2025-04-05", 2)
	_, err := svc.Complete(ctx, w, nil)

	var chargeErr *payment.ChargeError
	if !errors.As(err, &chargeErr) {
		t.Fatalf("expected *payment.ChargeError, got %v", err)
	}
	if w.State != booking.StatePayment {
		t.Fatalf("wizard left payment on declined charge: %s", w.State)
	}
	if len(repo.bookings) != 0 {
		t.Fatal("nothing must be persisted on a declined charge")
	}
}

func TestBookingServicePersistFailureAfterChargeIsSurfaced(t *testing.T) {
	ctx := context.Background()
	pkg := domain.Package{ID: "kyoto", Title: "Kyoto", Price: 2899, AvailableDates: []string{"2025-04-05"}}

	repo := &memoryBookingRepo{createErr: errors.New("connection reset")}
	provider := payment.NewFakeProvider()
	svc := NewBookingService(repo, provider, nil)

	w := paymentReadyWizard(t, pkg, "2025-04-05", 2)
	_, err := svc.Complete(ctx, w, nil)

	if !errors.Is(err, ErrBookingUnrecorded) {
		t.Fatalf("expected ErrBookingUnrecorded, got %v", err)
	}
	// The charge went through; the error message must carry the reference
	// for manual reconciliation.
	if len(provider.Charges) != 1 {
		t.Fatalf("expected the charge to have been captured, got %d", len(provider.Charges))
	}
}

func TestBookingServiceListAndGetScopedToOwner(t *testing.T) {
	ctx := context.Background()
	pkg := domain.Package{ID: "kyoto", Title: "Kyoto", Price: 649, AvailableDates: []string{"2025-04-05"}}

	repo := &memoryBookingRepo{}
	svc := NewBookingService(repo, payment.NewFakeProvider(), nil)

	owner := uuid.New()
	w := paymentReadyWizard(t, pkg, "2025-04-05", 2)
	result, err := svc.Complete(ctx, w, &owner)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	list, err := svc.ListByUser(ctx, owner, 0, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if list.Total != 1 || len(list.Items) != 1 {
		t.Fatalf("expected one booking, got total=%d items=%d", list.Total, len(list.Items))
	}

	if _, err := svc.GetByID(ctx, result.Booking.ID, owner); err != nil {
		t.Fatalf("owner GetByID: %v", err)
	}

	stranger := uuid.New()
	if _, err := svc.GetByID(ctx, result.Booking.ID, stranger); !errors.Is(err, ErrBookingForbidden) {
		t.Fatalf("expected ErrBookingForbidden for stranger, got %v", err)
	}

	if _, err := svc.GetByID(ctx, uuid.New(), owner); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}
