package booking

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wandertrails/wandertrails-api/internal/domain"
)

func wizardPackage() domain.Package {
	return domain.Package{
		ID:             "kyoto-traditions",
		Title:          "Kyoto Traditions",
		Price:          649,
		AvailableDates: []string{"2025-07-15", "2025-08-02"},
	}
}

func TestWizardStartsInSelectionWithDefaultTravelers(t *testing.T) {
	w := NewWizard(wizardPackage())
	if w.State != StateSelection {
		t.Fatalf("expected selection state, got %s", w.State)
	}
	if w.Travelers != DefaultTravelers {
		t.Fatalf("expected default travelers %d, got %d", DefaultTravelers, w.Travelers)
	}
}

func TestWizardCannotAdvanceWithoutDate(t *testing.T) {
	w := NewWizard(wizardPackage())
	if err := w.Select("", 2); !errors.Is(err, ErrDateRequired) {
		t.Fatalf("expected ErrDateRequired, got %v", err)
	}
	if w.State != StateSelection {
		t.Fatalf("wizard left selection without a date: %s", w.State)
	}
}

func TestWizardRejectsUnavailableDate(t *testing.T) {
	w := NewWizard(wizardPackage())
	if err := w.Select("2025-12-24", 2); !errors.Is(err, ErrDateUnavailable) {
		t.Fatalf("expected ErrDateUnavailable, got %v", err)
	}
	if w.State != StateSelection {
		t.Fatalf("wizard advanced on unavailable date: %s", w.State)
	}
}

func TestWizardRejectsInvalidTravelerCount(t *testing.T) {
	w := NewWizard(wizardPackage())
	if err := w.Select("2025-07-15", 0); !errors.Is(err, ErrInvalidTravelers) {
		t.Fatalf("expected ErrInvalidTravelers, got %v", err)
	}
}

func TestWizardHappyPath(t *testing.T) {
	w := NewWizard(wizardPackage())

	if err := w.Select("2025-07-15", 3); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if w.State != StateInformation {
		t.Fatalf("expected information state, got %s", w.State)
	}

	contact := Contact{FirstName: "Mina", LastName: "Okabe", Email: "mina@example.com"}
	if err := w.Inform(contact); err != nil {
		t.Fatalf("Inform returned error: %v", err)
	}
	if w.State != StatePayment {
		t.Fatalf("expected payment state, got %s", w.State)
	}

	if err := w.Confirm(); err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	if w.State != StateConfirmation {
		t.Fatalf("expected confirmation state, got %s", w.State)
	}
}

func TestWizardInformRequiresContactFields(t *testing.T) {
	w := NewWizard(wizardPackage())
	if err := w.Select("2025-07-15", 2); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if err := w.Inform(Contact{FirstName: "Mina"}); !errors.Is(err, ErrMissingContact) {
		t.Fatalf("expected ErrMissingContact, got %v", err)
	}
	if w.State != StateInformation {
		t.Fatalf("wizard advanced with incomplete contact: %s", w.State)
	}
}

func TestWizardBackwardNavigation(t *testing.T) {
	w := NewWizard(wizardPackage())
	if err := w.Back(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState going back from selection, got %v", err)
	}

	if err := w.Select("2025-07-15", 2); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if err := w.Back(); err != nil {
		t.Fatalf("Back from information returned error: %v", err)
	}
	if w.State != StateSelection {
		t.Fatalf("expected selection after back, got %s", w.State)
	}

	if err := w.Select("2025-07-15", 2); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if err := w.Inform(Contact{FirstName: "A", LastName: "B", Email: "a@b.c"}); err != nil {
		t.Fatalf("Inform returned error: %v", err)
	}
	if err := w.Back(); err != nil {
		t.Fatalf("Back from payment returned error: %v", err)
	}
	if w.State != StateInformation {
		t.Fatalf("expected information after back, got %s", w.State)
	}
}

func TestWizardConfirmationIsTerminalExceptReset(t *testing.T) {
	w := NewWizard(wizardPackage())
	if err := w.Select("2025-07-15", 2); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := w.Inform(Contact{FirstName: "A", LastName: "B", Email: "a@b.c"}); err != nil {
		t.Fatalf("Inform: %v", err)
	}
	if err := w.Confirm(); err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	if err := w.Back(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on Back from confirmation, got %v", err)
	}
	if err := w.Select("2025-07-15", 2); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on Select from confirmation, got %v", err)
	}
	if w.State != StateConfirmation {
		t.Fatalf("confirmation state was left without reset: %s", w.State)
	}

	w.Reset()
	if w.State != StateSelection || w.Date != "" || w.Travelers != DefaultTravelers {
		t.Fatalf("Reset did not restore a fresh selection: %+v", w)
	}
}

func TestSubtotalBaseFormula(t *testing.T) {
	if got := Subtotal(649, 2); got != 1298 {
		t.Fatalf("Subtotal(649, 2) = %v, want 1298", got)
	}
	if got := Subtotal(2899, 3); got != 8697 {
		t.Fatalf("Subtotal(2899, 3) = %v, want 8697", got)
	}
}

func TestQuoteKeepsBothFormulasDistinct(t *testing.T) {
	w := NewWizard(wizardPackage())
	if err := w.Select("2025-07-15", 2); err != nil {
		t.Fatalf("Select: %v", err)
	}

	q := w.QuoteFor()
	if q.Subtotal != 1298 {
		t.Fatalf("subtotal = %v, want 1298", q.Subtotal)
	}
	if q.ServiceFee != 99 {
		t.Fatalf("service fee = %v, want 99", q.ServiceFee)
	}
	wantProcessor := 40.51 // (1298+99) * 0.029 rounded to cents
	if q.ProcessorFee != wantProcessor {
		t.Fatalf("processor fee = %v, want %v", q.ProcessorFee, wantProcessor)
	}
	if q.Total != 1298+99+wantProcessor {
		t.Fatalf("total = %v, want %v", q.Total, 1298+99+wantProcessor)
	}
	if q.Total == q.Subtotal {
		t.Fatal("fee-inclusive total must differ from the base subtotal")
	}
}

func TestAmountMinor(t *testing.T) {
	if got := AmountMinor(1437.51); got != 143751 {
		t.Fatalf("AmountMinor(1437.51) = %d", got)
	}
	if got := AmountMinor(8697); got != 869700 {
		t.Fatalf("AmountMinor(8697) = %d", got)
	}
}

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore(time.Hour)
	w := NewWizard(wizardPackage())

	id := store.Start(w)
	var got *Wizard
	if err := store.Do(id, func(inner *Wizard) error {
		got = inner
		return nil
	}); err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if got != w {
		t.Fatal("expected the same wizard instance")
	}

	store.Drop(id)
	err := store.Do(id, func(*Wizard) error { return nil })
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after Drop, got %v", err)
	}
}

func TestSessionStoreExpiry(t *testing.T) {
	store := NewSessionStore(time.Minute)
	current := time.Now()
	store.now = func() time.Time { return current }

	id := store.Start(NewWizard(wizardPackage()))
	current = current.Add(2 * time.Minute)

	err := store.Do(id, func(*Wizard) error { return nil })
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}
}

func TestSessionStoreDoSerializesMutations(t *testing.T) {
	store := NewSessionStore(time.Hour)
	id := store.Start(NewWizard(wizardPackage()))

	const workers = 32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Do(id, func(w *Wizard) error {
				w.Travelers++
				return nil
			})
		}()
	}
	wg.Wait()

	var travelers int
	if err := store.Do(id, func(w *Wizard) error {
		travelers = w.Travelers
		return nil
	}); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if travelers != DefaultTravelers+workers {
		t.Fatalf("lost updates: travelers = %d, want %d", travelers, DefaultTravelers+workers)
	}
}

func TestSessionStoreDoConfirmsOnce(t *testing.T) {
	store := NewSessionStore(time.Hour)
	w := NewWizard(wizardPackage())
	if err := w.Select("2025-07-15", 2); err != nil {
		t.Fatalf("Select: %v", err)
	}
	contact := Contact{FirstName: "Noor", LastName: "Haddad", Email: "noor@example.com"}
	if err := w.Inform(contact); err != nil {
		t.Fatalf("Inform: %v", err)
	}
	id := store.Start(w)

	// Two concurrent payment attempts: only one may observe the payment
	// state and confirm.
	var confirmed int32
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Do(id, func(w *Wizard) error {
				if w.State != StatePayment {
					return ErrInvalidState
				}
				atomic.AddInt32(&confirmed, 1)
				return w.Confirm()
			})
		}()
	}
	wg.Wait()

	if confirmed != 1 {
		t.Fatalf("confirmed %d times, want exactly once", confirmed)
	}
}
