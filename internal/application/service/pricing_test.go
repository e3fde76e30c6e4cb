package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/entity"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/enum"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/pkg/apperror"
)

func testProduct() *entity.Product {
	return &entity.Product{
		Name:           "Farinha 25kg",
		WholesalePrice: 10000,
		RetailPrice:    12000,
	}
}

func TestResolvePriceBasePriceByOrderType(t *testing.T) {
	t.Parallel()

	product := testProduct()
	now := time.Now()

	quote, err := ResolvePrice(&PriceRequest{
		Product:   product,
		OrderType: enum.OrderTypeWholesale,
		Quantity:  3,
		Now:       now,
	})
	require.NoError(t, err)
	require.Equal(t, int64(10000), quote.UnitPrice)
	require.Equal(t, int64(30000), quote.LineTotal)
	require.False(t, quote.Promotional)

	quote, err = ResolvePrice(&PriceRequest{
		Product:   product,
		OrderType: enum.OrderTypeRetail,
		Quantity:  1,
		Now:       now,
	})
	require.NoError(t, err)
	require.Equal(t, int64(12000), quote.UnitPrice)
}

func TestResolvePricePromotionWinsOverEverything(t *testing.T) {
	t.Parallel()

	expires := time.Now().Add(24 * time.Hour)
	product := testProduct()
	product.PromoPrice = 8000
	product.PromoExpires = &expires
	product.TierPrice = 8500
	product.TierMinQty = 2
	personalized := int64(9000)

	quote, err := ResolvePrice(&PriceRequest{
		Product:           product,
		PersonalizedPrice: &personalized,
		OrderType:         enum.OrderTypeWholesale,
		Quantity:          5,
		Now:               time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, int64(8000), quote.UnitPrice)
	require.True(t, quote.Promotional)
}

func TestResolvePriceBoletoExcludesPromotion(t *testing.T) {
	t.Parallel()

	expires := time.Now().Add(24 * time.Hour)
	product := testProduct()
	product.PromoPrice = 8000
	product.PromoExpires = &expires

	quote, err := ResolvePrice(&PriceRequest{
		Product:       product,
		OrderType:     enum.OrderTypeWholesale,
		Quantity:      1,
		BoletoPayment: true,
		Now:           time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, int64(10000), quote.UnitPrice)
	require.False(t, quote.Promotional)
}

func TestResolvePriceExpiredPromotionIgnored(t *testing.T) {
	t.Parallel()

	expired := time.Now().Add(-time.Hour)
	product := testProduct()
	product.PromoPrice = 8000
	product.PromoExpires = &expired

	quote, err := ResolvePrice(&PriceRequest{
		Product:   product,
		OrderType: enum.OrderTypeWholesale,
		Quantity:  1,
		Now:       time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, int64(10000), quote.UnitPrice)
}

func TestResolvePricePersonalizedAndTierTakeLesser(t *testing.T) {
	t.Parallel()

	product := testProduct()
	product.TierPrice = 8500
	product.TierMinQty = 10

	personalized := int64(9000)
	quote, err := ResolvePrice(&PriceRequest{
		Product:           product,
		PersonalizedPrice: &personalized,
		OrderType:         enum.OrderTypeWholesale,
		Quantity:          10,
		Now:               time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, int64(8500), quote.UnitPrice)

	// Personalized lower than tier
	personalized = int64(8000)
	quote, err = ResolvePrice(&PriceRequest{
		Product:           product,
		PersonalizedPrice: &personalized,
		OrderType:         enum.OrderTypeWholesale,
		Quantity:          10,
		Now:               time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, int64(8000), quote.UnitPrice)
}

func TestResolvePricePersonalizedWithoutTier(t *testing.T) {
	t.Parallel()

	product := testProduct()
	product.TierPrice = 8500
	product.TierMinQty = 10

	// Below the tier threshold only the personalized price applies.
	personalized := int64(9500)
	quote, err := ResolvePrice(&PriceRequest{
		Product:           product,
		PersonalizedPrice: &personalized,
		OrderType:         enum.OrderTypeWholesale,
		Quantity:          5,
		Now:               time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, int64(9500), quote.UnitPrice)
}

func TestResolvePriceTierOnly(t *testing.T) {
	t.Parallel()

	product := testProduct()
	product.TierPrice = 9000
	product.TierMinQty = 6

	quote, err := ResolvePrice(&PriceRequest{
		Product:   product,
		OrderType: enum.OrderTypeWholesale,
		Quantity:  6,
		Now:       time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, int64(9000), quote.UnitPrice)

	quote, err = ResolvePrice(&PriceRequest{
		Product:   product,
		OrderType: enum.OrderTypeWholesale,
		Quantity:  5,
		Now:       time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, int64(10000), quote.UnitPrice)
}

func TestResolvePriceExpectedPriceMismatch(t *testing.T) {
	t.Parallel()

	product := testProduct()
	expected := int64(9000)

	_, err := ResolvePrice(&PriceRequest{
		Product:           product,
		OrderType:         enum.OrderTypeWholesale,
		Quantity:          1,
		ExpectedUnitPrice: &expected,
		Now:               time.Now(),
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	require.Equal(t, apperror.CodePriceMismatch, appErr.Code)
	require.Equal(t, 409, appErr.Status)
	require.Equal(t, 90.0, appErr.Details["expected_price"])
	require.Equal(t, 100.0, appErr.Details["resolved_price"])
}

func TestResolvePriceExpectedPriceWithinEpsilon(t *testing.T) {
	t.Parallel()

	product := testProduct()
	expected := int64(10001)

	quote, err := ResolvePrice(&PriceRequest{
		Product:           product,
		OrderType:         enum.OrderTypeWholesale,
		Quantity:          2,
		ExpectedUnitPrice: &expected,
		Now:               time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, int64(10000), quote.UnitPrice)
}

func TestResolvePriceGiftZeroesTotals(t *testing.T) {
	t.Parallel()

	product := testProduct()
	quote, err := ResolvePrice(&PriceRequest{
		Product:   product,
		OrderType: enum.OrderTypeWholesale,
		Quantity:  4,
		IsGift:    true,
		Now:       time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), quote.UnitPrice)
	require.Equal(t, int64(0), quote.LineTotal)
}
