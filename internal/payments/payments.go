package payments

import "context"

// Charge is the result of a successful charge. Amount is the amount the
// processor actually settled, in minor currency units; callers must treat
// it as authoritative over whatever they asked to charge.
type Charge struct {
	ID     string
	Amount int64
}

// Charger submits a charge to a payment processor. The token is the opaque
// payment source the client obtained from the processor's own tooling; the
// idempotency key makes an accidental resubmission of the same attempt
// settle at most once.
type Charger interface {
	Charge(ctx context.Context, amount int64, currency, token, idempotencyKey string) (*Charge, error)
}
