package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/charge"
)

// StripeCharger charges cards through the Stripe Charges API.
type StripeCharger struct{}

// NewStripeCharger configures the Stripe client with the given secret key
// and returns a StripeCharger.
func NewStripeCharger(secretKey string) *StripeCharger {
	stripe.Key = secretKey
	return &StripeCharger{}
}

// Charge creates a Stripe charge for amount minor units of currency against
// the given source token.
func (s *StripeCharger) Charge(ctx context.Context, amount int64, currency, token, idempotencyKey string) (*Charge, error) {
	params := &stripe.ChargeParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	if idempotencyKey != "" {
		params.SetIdempotencyKey(idempotencyKey)
	}
	if err := params.SetSource(token); err != nil {
		return nil, fmt.Errorf("invalid payment source: %w", err)
	}

	ch, err := charge.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe charge failed: %w", err)
	}

	return &Charge{
		ID:     ch.ID,
		Amount: ch.Amount,
	}, nil
}
