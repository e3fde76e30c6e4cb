package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/enum"
)

func TestCalculateFeesCardPercentages(t *testing.T) {
	t.Parallel()

	fees := CalculateFees(DefaultFeeConfig(), &FeeInput{
		Slices: []PaymentSlice{{Method: enum.PaymentMethodCreditCard, Amount: 10000}},
	})
	// 3.5% of 100.00
	require.Equal(t, int64(350), fees.CardFee)

	fees = CalculateFees(DefaultFeeConfig(), &FeeInput{
		Slices: []PaymentSlice{{Method: enum.PaymentMethodDebitCard, Amount: 10000}},
	})
	// 1% of 100.00
	require.Equal(t, int64(100), fees.CardFee)
}

func TestCalculateFeesSplitCardSlices(t *testing.T) {
	t.Parallel()

	fees := CalculateFees(DefaultFeeConfig(), &FeeInput{
		Slices: []PaymentSlice{
			{Method: enum.PaymentMethodCreditCard, Amount: 10000},
			{Method: enum.PaymentMethodDebitCard, Amount: 5000},
		},
	})
	require.Equal(t, int64(350+50), fees.CardFee)
}

func TestCalculateFeesNonCardSlicesFree(t *testing.T) {
	t.Parallel()

	fees := CalculateFees(DefaultFeeConfig(), &FeeInput{
		Slices: []PaymentSlice{
			{Method: enum.PaymentMethodCash, Amount: 10000},
			{Method: enum.PaymentMethodPix, Amount: 5000},
		},
	})
	require.Equal(t, int64(0), fees.CardFee)
}

func TestCalculateFeesExemptionWaivesCardFee(t *testing.T) {
	t.Parallel()

	fees := CalculateFees(DefaultFeeConfig(), &FeeInput{
		Slices:        []PaymentSlice{{Method: enum.PaymentMethodCreditCard, Amount: 10000}},
		CardFeeExempt: true,
	})
	require.Equal(t, int64(0), fees.CardFee)
}

func TestCalculateFeesPromoItemOverridesExemption(t *testing.T) {
	t.Parallel()

	fees := CalculateFees(DefaultFeeConfig(), &FeeInput{
		Slices:        []PaymentSlice{{Method: enum.PaymentMethodCreditCard, Amount: 10000}},
		CardFeeExempt: true,
		HasPromoItem:  true,
	})
	require.Equal(t, int64(350), fees.CardFee)
}

func TestCalculateFeesPromoItemWithoutCardKeepsExemption(t *testing.T) {
	t.Parallel()

	fees := CalculateFees(DefaultFeeConfig(), &FeeInput{
		Slices:        []PaymentSlice{{Method: enum.PaymentMethodCash, Amount: 10000}},
		CardFeeExempt: true,
		HasPromoItem:  true,
	})
	require.Equal(t, int64(0), fees.CardFee)
}

func TestCalculateFeesBoletoPerArtifact(t *testing.T) {
	t.Parallel()

	fees := CalculateFees(DefaultFeeConfig(), &FeeInput{
		Slices:          []PaymentSlice{{Method: enum.PaymentMethodBoleto, Amount: 60000}},
		BoletoArtifacts: 3,
	})
	require.Equal(t, int64(1050), fees.BoletoFee)

	fees = CalculateFees(DefaultFeeConfig(), &FeeInput{
		Slices:          []PaymentSlice{{Method: enum.PaymentMethodBoleto, Amount: 60000}},
		BoletoArtifacts: 3,
		BoletoFeeExempt: true,
	})
	require.Equal(t, int64(0), fees.BoletoFee)
}

func TestCalculateFeesDeliveryPassthrough(t *testing.T) {
	t.Parallel()

	fees := CalculateFees(DefaultFeeConfig(), &FeeInput{
		Slices:      []PaymentSlice{{Method: enum.PaymentMethodCash, Amount: 10000}},
		DeliveryFee: 1500,
	})
	require.Equal(t, int64(1500), fees.DeliveryFee)
	require.Equal(t, int64(1500), fees.Total())
}

func TestPercentOfRounding(t *testing.T) {
	t.Parallel()

	// 3.24% of 99.99 = 3.2397, rounds to 3.24
	require.Equal(t, int64(324), PercentOf(9999, 3.24))
	// 0.9% of 0.55 = 0.00495, rounds to 0.00
	require.Equal(t, int64(0), PercentOf(55, 0.9))
	require.Equal(t, int64(1), PercentOf(111, 0.9))
}
