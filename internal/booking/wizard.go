package booking

import (
	"errors"
	"math"
	"strings"

	"github.com/wandertrails/wandertrails-api/internal/domain"
)

type State string

const (
	StateSelection    State = "selection"
	StateInformation  State = "information"
	StatePayment      State = "payment"
	StateConfirmation State = "confirmation"
)

var (
	ErrDateRequired     = errors.New("a travel date must be selected")
	ErrDateUnavailable  = errors.New("selected date is not available for this package")
	ErrInvalidTravelers = errors.New("traveler count must be at least 1")
	ErrMissingContact   = errors.New("lead traveler name and email are required")
	ErrInvalidState     = errors.New("operation not allowed in current wizard state")
)

// Pricing constants for the fee-inclusive formula. The storefront carried
// two distinct price calculations; both are kept, see Quote.
const (
	ServiceFee       = 99.0
	ProcessorFeeRate = 0.029
	DefaultTravelers = 2
	DefaultCurrency  = "usd"
)

type Contact struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// Wizard is the linear selection → information → payment → confirmation
// state machine for one booking attempt. All transitions are pure in-memory
// updates; the charge and the booking insert happen outside the wizard at
// the payment step (see service.BookingService.Complete).
type Wizard struct {
	Package   domain.Package
	State     State
	Date      string
	Travelers int
	Contact   Contact
}

// NewWizard starts a wizard in the selection state with the default
// traveler count.
func NewWizard(pkg domain.Package) *Wizard {
	return &Wizard{
		Package:   pkg,
		State:     StateSelection,
		Travelers: DefaultTravelers,
	}
}

// Select records the trip selection and advances to information. The wizard
// stays in selection when the date is missing, unavailable, or the traveler
// count is invalid.
func (w *Wizard) Select(date string, travelers int) error {
	if w.State != StateSelection {
		return ErrInvalidState
	}
	if strings.TrimSpace(date) == "" {
		return ErrDateRequired
	}
	if !w.Package.HasDate(date) {
		return ErrDateUnavailable
	}
	if travelers < 1 {
		return ErrInvalidTravelers
	}
	w.Date = date
	w.Travelers = travelers
	w.State = StateInformation
	return nil
}

// Inform records the lead traveler contact and advances to payment. Only
// required-field presence is checked; richer validation is left to the form
// layer.
func (w *Wizard) Inform(contact Contact) error {
	if w.State != StateInformation {
		return ErrInvalidState
	}
	if strings.TrimSpace(contact.FirstName) == "" ||
		strings.TrimSpace(contact.LastName) == "" ||
		strings.TrimSpace(contact.Email) == "" {
		return ErrMissingContact
	}
	w.Contact = contact
	w.State = StatePayment
	return nil
}

// Back steps one state backwards. Allowed from information and payment
// only; confirmation is terminal.
func (w *Wizard) Back() error {
	switch w.State {
	case StateInformation:
		w.State = StateSelection
	case StatePayment:
		w.State = StateInformation
	default:
		return ErrInvalidState
	}
	return nil
}

// Confirm marks the wizard complete. Called by the booking service after
// the charge succeeded; never call it directly from transport code.
func (w *Wizard) Confirm() error {
	if w.State != StatePayment {
		return ErrInvalidState
	}
	w.State = StateConfirmation
	return nil
}

// Reset is the only exit from confirmation: back to a fresh selection for
// the same package.
func (w *Wizard) Reset() {
	w.State = StateSelection
	w.Date = ""
	w.Travelers = DefaultTravelers
	w.Contact = Contact{}
}

// Quote carries both price formulas the storefront displayed. Subtotal is
// the plain per-person multiplication; Total adds the flat service fee and
// the processor fee. They are distinct on purpose and must not be conflated.
type Quote struct {
	PricePerPerson float64 `json:"price_per_person"`
	Travelers      int     `json:"travelers"`
	Subtotal       float64 `json:"subtotal"`
	ServiceFee     float64 `json:"service_fee"`
	ProcessorFee   float64 `json:"processor_fee"`
	Total          float64 `json:"total"`
	Currency       string  `json:"currency"`
}

// Subtotal computes the base formula: price per person times travelers.
func Subtotal(pricePerPerson float64, travelers int) float64 {
	return pricePerPerson * float64(travelers)
}

// QuoteFor computes the fee-inclusive breakdown for the wizard's current
// selection. The processor fee is applied to subtotal plus service fee and
// rounded to cents.
func (w *Wizard) QuoteFor() Quote {
	subtotal := Subtotal(w.Package.Price, w.Travelers)
	processorFee := roundCents((subtotal + ServiceFee) * ProcessorFeeRate)
	return Quote{
		PricePerPerson: w.Package.Price,
		Travelers:      w.Travelers,
		Subtotal:       subtotal,
		ServiceFee:     ServiceFee,
		ProcessorFee:   processorFee,
		Total:          roundCents(subtotal + ServiceFee + processorFee),
		Currency:       DefaultCurrency,
	}
}

// AmountMinor converts a major-unit amount to minor currency units for the
// payment provider.
func AmountMinor(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
