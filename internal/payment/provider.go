package payment

import (
	"context"
	"fmt"
)

// ChargeRequest describes a single capture in minor currency units.
type ChargeRequest struct {
	AmountMinor  int64
	Currency     string
	Description  string
	ReceiptEmail string
	Metadata     map[string]string
}

// ChargeResult is returned on a successful capture. Reference identifies
// the charge at the processor; ClientSecret is forwarded to the storefront
// when the processor needs client-side confirmation.
type ChargeResult struct {
	Reference    string
	ClientSecret string
}

// ChargeError carries the human-readable message the storefront shows
// inline on the payment step.
type ChargeError struct {
	Message string
	Code    string
}

func (e *ChargeError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payment declined (%s): %s", e.Code, e.Message)
	}
	return "payment declined: " + e.Message
}

// Provider is the payment glue port. Implementations must not retry on
// their own; the wizard surfaces failures and stays on the payment step.
type Provider interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}
