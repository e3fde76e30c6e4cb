package service

import (
	"net/http"
	"time"

	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/entity"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/enum"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/pkg/apperror"
)

// priceEpsilonCents is the tolerance for the optimistic client-price
// check. Anything beyond one cent is a mismatch.
const priceEpsilonCents = 1

// PriceQuote is the outcome of resolving one line item.
type PriceQuote struct {
	// UnitPrice in cents; zero when the item is a gift.
	UnitPrice int64
	LineTotal int64
	// Promotional reports whether the promotion tier won.
	Promotional bool
}

// PriceRequest carries everything needed to resolve one line item.
type PriceRequest struct {
	Product *entity.Product
	// PersonalizedPrice is the customer's negotiated price for this
	// product, when one exists.
	PersonalizedPrice *int64
	OrderType         enum.OrderType
	Quantity          int
	// BoletoPayment marks that the order pays (fully or partially) via
	// boleto, which excludes promotions.
	BoletoPayment bool
	// ExpectedUnitPrice is the client's optimistic price in cents.
	ExpectedUnitPrice *int64
	IsGift            bool
	Now               time.Time
}

// ResolvePrice resolves the unit price of a line item under the pricing
// priority policy, first match wins:
//
//  1. active promotion, unless the order pays via boleto
//  2. personalized price and quantity tier both applicable: the lesser
//  3. personalized price
//  4. quantity tier, when the ordered quantity reaches the threshold
//  5. base price for the order type
//
// A client-expected price differing from the resolved price beyond the
// epsilon fails with a price-mismatch carrying both values.
func ResolvePrice(req *PriceRequest) (*PriceQuote, error) {
	p := req.Product

	price := p.WholesalePrice
	if req.OrderType == enum.OrderTypeRetail {
		price = p.RetailPrice
	}

	promotional := false
	tierApplies := p.TierMinQty > 0 && p.TierPrice > 0 && req.Quantity >= p.TierMinQty

	switch {
	case p.HasActivePromo(req.Now) && !req.BoletoPayment:
		price = p.PromoPrice
		promotional = true
	case req.PersonalizedPrice != nil && tierApplies:
		price = *req.PersonalizedPrice
		if p.TierPrice < price {
			price = p.TierPrice
		}
	case req.PersonalizedPrice != nil:
		price = *req.PersonalizedPrice
	case tierApplies:
		price = p.TierPrice
	}

	if req.ExpectedUnitPrice != nil {
		diff := price - *req.ExpectedUnitPrice
		if diff < 0 {
			diff = -diff
		}
		if diff > priceEpsilonCents {
			return nil, apperror.NewWithDetails(
				http.StatusConflict,
				apperror.CodePriceMismatch,
				"Resolved price differs from the expected price",
				map[string]interface{}{
					"product_id":     p.ID,
					"expected_price": float64(*req.ExpectedUnitPrice) / 100,
					"resolved_price": float64(price) / 100,
				},
			)
		}
	}

	if req.IsGift {
		return &PriceQuote{UnitPrice: 0, LineTotal: 0, Promotional: promotional}, nil
	}

	return &PriceQuote{
		UnitPrice:   price,
		LineTotal:   price * int64(req.Quantity),
		Promotional: promotional,
	}, nil
}
