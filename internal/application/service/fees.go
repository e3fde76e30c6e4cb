package service

import (
	"github.com/shopspring/decimal"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/enum"
)

// FeeConfig holds the fee rates applied at settlement. Percentages are
// whole percents (3.5 means 3.5%), flat amounts are cents.
type FeeConfig struct {
	CreditCardPercent decimal.Decimal
	DebitCardPercent  decimal.Decimal
	BoletoFlatFee     int64
}

// DefaultFeeConfig returns the standard acquirer and boleto rates.
func DefaultFeeConfig() FeeConfig {
	return FeeConfig{
		CreditCardPercent: decimal.NewFromFloat(3.5),
		DebitCardPercent:  decimal.NewFromFloat(1.0),
		BoletoFlatFee:     350,
	}
}

// PaymentSlice is one payment method with its assigned amount in cents.
type PaymentSlice struct {
	Method enum.PaymentMethod
	Amount int64
}

// FeeInput describes the payment split a fee computation runs against.
type FeeInput struct {
	Slices []PaymentSlice
	// CardFeeExempt waives the card fee, except when a promotional item
	// is paired with a card slice.
	CardFeeExempt bool
	HasPromoItem  bool
	// BoletoArtifacts is how many boletos the order will mint.
	BoletoArtifacts int
	BoletoFeeExempt bool
	// DeliveryFee in cents, passed through unconditionally.
	DeliveryFee int64
}

// FeeBreakdown is the computed fee total broken out by kind, in cents.
type FeeBreakdown struct {
	CardFee     int64
	BoletoFee   int64
	DeliveryFee int64
}

// Total returns the sum of all fee kinds.
func (b FeeBreakdown) Total() int64 {
	return b.CardFee + b.BoletoFee + b.DeliveryFee
}

// CalculateFees computes card, boleto and delivery fees for a payment
// split. Promotions on card payments are never fee-free: the exemption
// flag is overridden when a promotional item meets a card slice.
func CalculateFees(cfg FeeConfig, input *FeeInput) FeeBreakdown {
	var out FeeBreakdown

	hasCardSlice := false
	for _, s := range input.Slices {
		if s.Method.IsCard() {
			hasCardSlice = true
			break
		}
	}

	chargeCardFee := !input.CardFeeExempt || (input.HasPromoItem && hasCardSlice)
	if chargeCardFee {
		for _, s := range input.Slices {
			var pct decimal.Decimal
			switch s.Method {
			case enum.PaymentMethodCreditCard:
				pct = cfg.CreditCardPercent
			case enum.PaymentMethodDebitCard:
				pct = cfg.DebitCardPercent
			default:
				continue
			}
			fee := decimal.NewFromInt(s.Amount).
				Mul(pct).
				Div(decimal.NewFromInt(100)).
				Round(0)
			out.CardFee += fee.IntPart()
		}
	}

	if !input.BoletoFeeExempt && input.BoletoArtifacts > 0 {
		out.BoletoFee = cfg.BoletoFlatFee * int64(input.BoletoArtifacts)
	}

	out.DeliveryFee = input.DeliveryFee

	return out
}

// PercentOf applies a whole-percent rate to an amount in cents, rounding
// to the nearest cent. Used for card acquirer fees and commissions.
func PercentOf(amount int64, percent float64) int64 {
	return decimal.NewFromInt(amount).
		Mul(decimal.NewFromFloat(percent)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}
