package payment

import (
	"context"
	"fmt"
	"sync"
)

// FakeProvider is a deterministic in-process processor for development and
// tests. Charges succeed unless Decline is set.
type FakeProvider struct {
	mu      sync.Mutex
	counter int

	Decline        bool
	DeclineMessage string
	Charges        []ChargeRequest
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{}
}

func (p *FakeProvider) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if req.AmountMinor <= 0 {
		return nil, &ChargeError{Message: "amount must be positive", Code: "invalid_amount"}
	}
	if p.Decline {
		msg := p.DeclineMessage
		if msg == "" {
			msg = "card was declined"
		}
		return nil, &ChargeError{Message: msg, Code: "card_declined"}
	}

	p.counter++
	p.Charges = append(p.Charges, req)
	return &ChargeResult{
		Reference:    fmt.Sprintf("fake_pi_%06d", p.counter),
		ClientSecret: fmt.Sprintf("fake_secret_%06d", p.counter),
	}, nil
}

var _ Provider = (*FakeProvider)(nil)
