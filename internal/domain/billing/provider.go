// Package billing defines the outbound interface to the external billing
// provider that mints boletos and confirms pix payments.
package billing

import (
	"context"
	"time"
)

// CreateChargeInput carries everything the provider needs to mint one
// boleto with its paired pix code. Code is our own document number and
// doubles as the idempotency key on the provider side.
type CreateChargeInput struct {
	Code          string
	PayerName     string
	PayerDocument string
	// Amount in cents.
	Amount      int64
	DueDate     time.Time
	Description string
	// SubAccount routes the payout, when the target bank account has a
	// dedicated provider sub-account.
	SubAccount string
}

// Charge is the provider's response for a minted boleto.
type Charge struct {
	ID            string
	Barcode       string
	DigitableLine string
	PixCode       string
	PixQRImage    string
}

// ConfirmedPayment is the provider's view of an already-confirmed pix
// charge, used for post-hoc reconciliation against the order total.
type ConfirmedPayment struct {
	SubAccount string
	// Amounts in cents.
	Amount    int64
	FeeAmount int64
	NetAmount int64
	Status    string
}

// Provider is the external billing collaborator. CreateCharge is an
// irreversible side effect: it runs before the settlement transaction and
// is never retried automatically.
type Provider interface {
	CreateCharge(ctx context.Context, input *CreateChargeInput) (*Charge, error)
	GetConfirmedPayment(ctx context.Context, chargeID string) (*ConfirmedPayment, error)
}
