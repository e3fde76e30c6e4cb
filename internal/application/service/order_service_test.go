package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/billing"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/entity"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/enum"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/repository"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/pkg/apperror"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/pkg/pagination"
)

// --- fakes -----------------------------------------------------------------

type fakeSettlementRepo struct {
	orders map[uuid.UUID]*entity.Order
	last   *repository.Settlement
	calls  int
	err    error
}

func (r *fakeSettlementRepo) Create(_ context.Context, s *repository.Settlement) error {
	r.calls++
	if r.err != nil {
		return r.err
	}
	r.last = s
	r.orders[s.Order.ID] = s.Order
	return nil
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*entity.Order
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) GetByNumber(_ context.Context, number string) (*entity.Order, error) {
	for _, o := range r.orders {
		if o.Number == number {
			return o, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetWithDetails(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) List(_ context.Context, _ *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	var out []entity.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) MovementsByOrder(_ context.Context, _ uuid.UUID) ([]entity.StockMovement, error) {
	return nil, nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) List(_ context.Context, _ *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return nil, 0, nil
}

type fakeRawMaterialRepo struct {
	materials map[uuid.UUID]*entity.RawMaterial
}

func (r *fakeRawMaterialRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.RawMaterial, error) {
	var out []entity.RawMaterial
	for _, id := range ids {
		if m, ok := r.materials[id]; ok {
			out = append(out, *m)
		}
	}
	return out, nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
	prices    map[uuid.UUID]map[uuid.UUID]int64
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) GetPrices(_ context.Context, customerID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64)
	for _, productID := range productIDs {
		if p, ok := r.prices[customerID][productID]; ok {
			out[productID] = p
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[uuid.UUID]*entity.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Employee, error) {
	return r.employees[id], nil
}

type fakeCouponRepo struct {
	coupons map[uuid.UUID]*entity.Coupon
}

func (r *fakeCouponRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Coupon, error) {
	return r.coupons[id], nil
}

func (r *fakeCouponRepo) GetByCode(_ context.Context, code string) (*entity.Coupon, error) {
	for _, c := range r.coupons {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, nil
}

type fakeBankAccountRepo struct {
	accounts map[uuid.UUID]*entity.BankAccount
}

func (r *fakeBankAccountRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.BankAccount, error) {
	return r.accounts[id], nil
}

type fakeProvider struct {
	charges   []*billing.CreateChargeInput
	confirmed *billing.ConfirmedPayment
	err       error
}

func (p *fakeProvider) CreateCharge(_ context.Context, input *billing.CreateChargeInput) (*billing.Charge, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.charges = append(p.charges, input)
	return &billing.Charge{
		ID:            "prov-" + input.Code,
		Barcode:       "23790.00000 00000.000000 00000.000000 0 00000000000000",
		DigitableLine: "23790000000000000000000000000000000000000000000",
		PixCode:       "pix-copy-paste-" + input.Code,
		PixQRImage:    "data:image/png;base64,qr",
	}, nil
}

func (p *fakeProvider) GetConfirmedPayment(_ context.Context, _ string) (*billing.ConfirmedPayment, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.confirmed, nil
}

// --- fixture ---------------------------------------------------------------

type fixture struct {
	svc        *OrderService
	settlement *fakeSettlementRepo
	provider   *fakeProvider
	products   *fakeProductRepo
	customers  *fakeCustomerRepo
	employees  *fakeEmployeeRepo
	coupons    *fakeCouponRepo
	accounts   *fakeBankAccountRepo

	productID  uuid.UUID
	customerID uuid.UUID
	userID     uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	orders := make(map[uuid.UUID]*entity.Order)
	productID := uuid.New()
	customerID := uuid.New()

	f := &fixture{
		settlement: &fakeSettlementRepo{orders: orders},
		provider:   &fakeProvider{},
		products: &fakeProductRepo{products: map[uuid.UUID]*entity.Product{
			productID: {
				ID:             productID,
				Name:           "Farinha 25kg",
				Quantity:       50,
				WholesalePrice: 10000,
				RetailPrice:    12000,
			},
		}},
		customers: &fakeCustomerRepo{
			customers: map[uuid.UUID]*entity.Customer{
				customerID: {
					ID:          customerID,
					Name:        "Padaria Central",
					CreditLimit: 500000,
				},
			},
			prices: map[uuid.UUID]map[uuid.UUID]int64{},
		},
		employees:  &fakeEmployeeRepo{employees: map[uuid.UUID]*entity.Employee{}},
		coupons:    &fakeCouponRepo{coupons: map[uuid.UUID]*entity.Coupon{}},
		accounts:   &fakeBankAccountRepo{accounts: map[uuid.UUID]*entity.BankAccount{}},
		productID:  productID,
		customerID: customerID,
		userID:     uuid.New(),
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	f.svc = NewOrderService(
		&fakeOrderRepo{orders: orders},
		f.settlement,
		f.products,
		&fakeRawMaterialRepo{materials: map[uuid.UUID]*entity.RawMaterial{}},
		f.customers,
		f.employees,
		f.coupons,
		f.accounts,
		f.provider,
		nil,
		DefaultSettlementConfig(),
		log,
	)
	return f
}

func (f *fixture) item(qty int) CartItemInput {
	id := f.productID
	return CartItemInput{ProductID: &id, Quantity: qty}
}

// --- tests -----------------------------------------------------------------

func TestCreateOrderCashAlreadyPaid(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	accountID := uuid.New()
	f.accounts.accounts[accountID] = &entity.BankAccount{ID: accountID, Name: "Conta Principal"}

	order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CreatedBy:     f.userID,
		CustomerID:    &f.customerID,
		OrderType:     enum.OrderTypeWholesale,
		Items:         []CartItemInput{f.item(3)},
		Payment:       PaymentSliceInput{Method: enum.PaymentMethodCash},
		BankAccountID: &accountID,
		AlreadyPaid:   true,
	})
	require.NoError(t, err)
	require.NotNil(t, order)
	require.Equal(t, int64(30000), order.Total)
	require.Equal(t, enum.PaymentStatusPaid, order.PaymentStatus)

	s := f.settlement.last
	require.Len(t, s.Receivables, 1)
	require.Equal(t, enum.ReceivableStatusPaid, s.Receivables[0].Status)
	require.NotNil(t, s.Receivables[0].PaidAt)
	require.Equal(t, int64(30000), s.Receivables[0].Amount)

	require.Len(t, s.LedgerPostings, 1)
	require.Equal(t, accountID, s.LedgerPostings[0].AccountID)
	require.Equal(t, int64(30000), s.LedgerPostings[0].Amount)
	require.Equal(t, &s.Receivables[0].ID, s.LedgerPostings[0].ReceivableID)

	require.Equal(t, map[uuid.UUID]int{f.productID: 3}, s.StockDecrements)
	require.Empty(t, s.Boletos)
	require.Empty(t, f.provider.charges)

	// Registered customer reserves the full total regardless of method.
	require.NotNil(t, s.CreditReservation)
	require.Equal(t, int64(30000), s.CreditReservation.Amount)
}

func TestCreateOrderBoletoInstallments(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	delivery := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CreatedBy:    f.userID,
		CustomerID:   &f.customerID,
		OrderType:    enum.OrderTypeWholesale,
		Items:        []CartItemInput{f.item(10)},
		Payment:      PaymentSliceInput{Method: enum.PaymentMethodBoleto},
		Installments: &InstallmentSpec{Count: 3, DayOffsets: []int{7, 14, 21}},
		DeliveryDate: &delivery,
	})
	require.NoError(t, err)

	// 10 x 100.00 + 3 x 3.50 boleto fee
	require.Equal(t, int64(101050), order.Total)
	require.Equal(t, int64(1050), order.BoletoFee)
	require.Equal(t, enum.PaymentStatusPending, order.PaymentStatus)

	s := f.settlement.last
	require.Len(t, s.Boletos, 3)
	require.Empty(t, s.Receivables, "boleto slices must not double-book a receivable")

	var sum int64
	for i, b := range s.Boletos {
		sum += b.Amount
		require.Equal(t, i+1, b.Installment)
		require.Equal(t, enum.BoletoStatusOpen, b.Status)
		require.NotEmpty(t, b.ProviderID)
		require.Equal(t, delivery.AddDate(0, 0, (i+1)*7), b.DueDate)
	}
	require.Equal(t, order.Total, sum)

	require.Len(t, f.provider.charges, 3)
	require.Equal(t, "Padaria Central", f.provider.charges[0].PayerName)
}

func TestCreateOrderBoletoRequiresRegisteredPayer(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	buyer := "Maria"
	_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CreatedBy: f.userID,
		BuyerName: &buyer,
		OrderType: enum.OrderTypeRetail,
		Items:     []CartItemInput{f.item(1)},
		Payment:   PaymentSliceInput{Method: enum.PaymentMethodBoleto},
	})
	require.Error(t, err)
	require.Empty(t, f.provider.charges)
	require.Zero(t, f.settlement.calls)
}

func TestCreateOrderInsufficientCredit(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.customers.customers[f.customerID].CreditLimit = 50000

	_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CreatedBy:  f.userID,
		CustomerID: &f.customerID,
		OrderType:  enum.OrderTypeWholesale,
		Items:      []CartItemInput{f.item(10)},
		Payment:    PaymentSliceInput{Method: enum.PaymentMethodBoleto},
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	require.Equal(t, apperror.CodeInsufficientCredit, appErr.Code)
	require.Equal(t, 422, appErr.Status)

	// The guard rejects before any provider side effect.
	require.Empty(t, f.provider.charges)
	require.Zero(t, f.settlement.calls)
}

func TestCreateOrderSplitMustSumToTotal(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CreatedBy:        f.userID,
		CustomerID:       &f.customerID,
		OrderType:        enum.OrderTypeWholesale,
		Items:            []CartItemInput{f.item(3)},
		Payment:          PaymentSliceInput{Method: enum.PaymentMethodCash, Amount: 10000},
		SecondaryPayment: &PaymentSliceInput{Method: enum.PaymentMethodPix, Amount: 10000},
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	require.Equal(t, apperror.CodeValidation, appErr.Code)
	require.Equal(t, 422, appErr.Status)
}

func TestCreateOrderSplitCashAndCard(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	// 3 x 100.00 = 300.00 subtotal; credit card slice 200.00 carries
	// 3.5% = 7.00 fee, total 307.00.
	order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CreatedBy:        f.userID,
		CustomerID:       &f.customerID,
		OrderType:        enum.OrderTypeWholesale,
		Items:            []CartItemInput{f.item(3)},
		Payment:          PaymentSliceInput{Method: enum.PaymentMethodCash, Amount: 10700},
		SecondaryPayment: &PaymentSliceInput{Method: enum.PaymentMethodCreditCard, Amount: 20000},
		AlreadyPaid:      true,
	})
	require.NoError(t, err)
	require.Equal(t, int64(30700), order.Total)
	require.Equal(t, int64(700), order.CardFee)
	require.Equal(t, enum.PaymentStatusPartial, order.PaymentStatus)

	s := f.settlement.last
	require.Len(t, s.Receivables, 2)
	require.Equal(t, enum.ReceivableStatusPaid, s.Receivables[0].Status)
	require.Equal(t, enum.ReceivableStatusPending, s.Receivables[1].Status, "card funds clear later")

	require.Len(t, s.CardSettlements, 1)
	cs := s.CardSettlements[0]
	require.Equal(t, enum.PaymentMethodCreditCard, cs.Method)
	require.Equal(t, int64(20000), cs.GrossAmount)
	require.Equal(t, int64(20000-648), cs.NetAmount) // 3.24% acquirer fee
}

func TestCreateOrderSingleCardFee(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	// The request carries no amount for a single-method payment; the
	// fee still applies to the whole cart: 3.5% of 300.00 = 10.50.
	order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CreatedBy:  f.userID,
		CustomerID: &f.customerID,
		OrderType:  enum.OrderTypeWholesale,
		Items:      []CartItemInput{f.item(3)},
		Payment:    PaymentSliceInput{Method: enum.PaymentMethodCreditCard},
	})
	require.NoError(t, err)
	require.Equal(t, int64(1050), order.CardFee)
	require.Equal(t, int64(31050), order.Total)

	s := f.settlement.last
	require.Len(t, s.CardSettlements, 1)
	require.Equal(t, order.Total, s.CardSettlements[0].GrossAmount)
}

func TestCreateOrderCardFeeExemptionOverriddenByPromo(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.products.products[f.productID].PromoPrice = 8000

	order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CreatedBy:     f.userID,
		CustomerID:    &f.customerID,
		OrderType:     enum.OrderTypeWholesale,
		Items:         []CartItemInput{f.item(3)},
		Payment:       PaymentSliceInput{Method: enum.PaymentMethodCreditCard},
		CardFeeExempt: true,
	})
	require.NoError(t, err)

	// Promotional items on a card payment are never fee-free: 3.5% of
	// the promo subtotal 240.00.
	require.Equal(t, int64(840), order.CardFee)
	require.Equal(t, int64(24840), order.Total)
}

func TestCreateCounterSaleCardFee(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	buyer := "Maria"
	order, err := f.svc.CreateCounterSale(context.Background(), &CounterSaleInput{
		CreatedBy: f.userID,
		BuyerName: &buyer,
		Items:     []CartItemInput{f.item(2)},
		Payment:   PaymentSliceInput{Method: enum.PaymentMethodCreditCard},
	})
	require.NoError(t, err)

	// 2 x 120.00 retail + 3.5% card fee.
	require.Equal(t, int64(840), order.CardFee)
	require.Equal(t, int64(24840), order.Total)

	// Card funds clear later even at the counter.
	s := f.settlement.last
	require.Len(t, s.Receivables, 1)
	require.Equal(t, enum.ReceivableStatusPending, s.Receivables[0].Status)
	require.Equal(t, enum.PaymentStatusPending, order.PaymentStatus)
	require.Len(t, s.CardSettlements, 1)
	require.Equal(t, order.Total, s.CardSettlements[0].GrossAmount)
}

func TestCreateOrderPixNormalizesWithinTolerance(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	chargeID := "pix-123"
	f.provider.confirmed = &billing.ConfirmedPayment{
		Amount:    29900,
		FeeAmount: 100,
		NetAmount: 29800,
		Status:    "CONFIRMED",
	}

	order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CreatedBy:   f.userID,
		CustomerID:  &f.customerID,
		OrderType:   enum.OrderTypeWholesale,
		Items:       []CartItemInput{f.item(3)},
		Payment:     PaymentSliceInput{Method: enum.PaymentMethodPix},
		PixChargeID: &chargeID,
		AlreadyPaid: true,
	})
	require.NoError(t, err)

	// Computed 300.00, confirmed 299.00: within tolerance, normalized.
	require.Equal(t, int64(29900), order.Total)

	s := f.settlement.last
	require.NotNil(t, s.PixCharge)
	require.Equal(t, chargeID, s.PixCharge.ChargeID)
	require.Equal(t, &order.ID, s.PixCharge.OrderID)
}

func TestCreateOrderPixRejectsBeyondTolerance(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	chargeID := "pix-456"
	f.provider.confirmed = &billing.ConfirmedPayment{Amount: 25000, NetAmount: 25000, Status: "CONFIRMED"}

	_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CreatedBy:   f.userID,
		CustomerID:  &f.customerID,
		OrderType:   enum.OrderTypeWholesale,
		Items:       []CartItemInput{f.item(3)},
		Payment:     PaymentSliceInput{Method: enum.PaymentMethodPix},
		PixChargeID: &chargeID,
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	require.Equal(t, apperror.CodePixAmountMismatch, appErr.Code)
	require.Equal(t, 409, appErr.Status)
	require.Zero(t, f.settlement.calls)
}

func TestCreateOrderMapsInsufficientStock(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.settlement.err = &repository.InsufficientStockError{
		ProductID: f.productID,
		Name:      "Farinha 25kg",
		Requested: 3,
		Available: 1,
	}

	_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CreatedBy:  f.userID,
		CustomerID: &f.customerID,
		OrderType:  enum.OrderTypeWholesale,
		Items:      []CartItemInput{f.item(3)},
		Payment:    PaymentSliceInput{Method: enum.PaymentMethodCash},
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	require.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	require.Equal(t, 422, appErr.Status)
	require.Equal(t, 1, appErr.Details["available"])
}

func TestCreateOrderInstallmentBelowMinimum(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	// 10.00 order split into 3 boletos of ~3.33 falls below the 5.00
	// provider minimum.
	personalized := int64(1000)
	f.customers.prices[f.customerID] = map[uuid.UUID]int64{f.productID: personalized}

	_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CreatedBy:       f.userID,
		CustomerID:      &f.customerID,
		OrderType:       enum.OrderTypeWholesale,
		Items:           []CartItemInput{f.item(1)},
		Payment:         PaymentSliceInput{Method: enum.PaymentMethodBoleto},
		Installments:    &InstallmentSpec{Count: 3, DayOffsets: []int{7, 14, 21}},
		BoletoFeeExempt: true,
	})
	require.Error(t, err)
	require.Empty(t, f.provider.charges, "minimum check runs before any provider call")
}

func TestCreateOrderCommissionForLinkedSeller(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	sellerID := uuid.New()
	f.customers.customers[f.customerID].Seller = &entity.Seller{ID: sellerID, Name: "Carlos", CommissionRate: 0.02}

	_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CreatedBy:  f.userID,
		CustomerID: &f.customerID,
		OrderType:  enum.OrderTypeWholesale,
		Items:      []CartItemInput{f.item(3)},
		Payment:    PaymentSliceInput{Method: enum.PaymentMethodCash},
	})
	require.NoError(t, err)

	c := f.settlement.last.Commission
	require.NotNil(t, c)
	require.Equal(t, sellerID, c.SellerID)
	require.Equal(t, int64(600), c.Amount) // 2% of 300.00
}

func TestCreateOrderCouponDiscount(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	couponID := uuid.New()
	f.coupons.coupons[couponID] = &entity.Coupon{ID: couponID, Code: "BEMVINDO", FixedAmount: 2000, MaxUses: 10}

	order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CreatedBy:  f.userID,
		CustomerID: &f.customerID,
		OrderType:  enum.OrderTypeWholesale,
		Items:      []CartItemInput{f.item(3)},
		Payment:    PaymentSliceInput{Method: enum.PaymentMethodCash},
		CouponID:   &couponID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(2000), order.Discount)
	require.Equal(t, int64(28000), order.Total)
	require.Equal(t, &couponID, f.settlement.last.CouponID)
}

func TestCreateOrderExhaustedCouponRejected(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	couponID := uuid.New()
	f.coupons.coupons[couponID] = &entity.Coupon{ID: couponID, Code: "ESGOTADO", FixedAmount: 2000, MaxUses: 5, UsedCount: 5}

	_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CreatedBy:  f.userID,
		CustomerID: &f.customerID,
		OrderType:  enum.OrderTypeWholesale,
		Items:      []CartItemInput{f.item(1)},
		Payment:    PaymentSliceInput{Method: enum.PaymentMethodCash},
		CouponID:   &couponID,
	})
	require.Error(t, err)
	require.Zero(t, f.settlement.calls)
}

func TestCreateOrderGiftItemsFreeButDecrementStock(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	giftID := f.productID
	order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CreatedBy:  f.userID,
		CustomerID: &f.customerID,
		OrderType:  enum.OrderTypeWholesale,
		Items: []CartItemInput{
			f.item(3),
			{ProductID: &giftID, Quantity: 1, IsGift: true},
		},
		Payment: PaymentSliceInput{Method: enum.PaymentMethodCash},
	})
	require.NoError(t, err)
	require.Equal(t, int64(30000), order.Total)

	// Gifts still leave the shelf.
	require.Equal(t, map[uuid.UUID]int{f.productID: 4}, f.settlement.last.StockDecrements)
}

func TestCreateOrderValidation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	// No payer at all.
	_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CreatedBy: f.userID,
		OrderType: enum.OrderTypeWholesale,
		Items:     []CartItemInput{f.item(1)},
		Payment:   PaymentSliceInput{Method: enum.PaymentMethodCash},
	})
	require.Error(t, err)
	require.Equal(t, apperror.CodeValidation, apperror.GetAppError(err).Code)

	// Installments without a boleto slice.
	_, err = f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CreatedBy:    f.userID,
		CustomerID:   &f.customerID,
		OrderType:    enum.OrderTypeWholesale,
		Items:        []CartItemInput{f.item(1)},
		Payment:      PaymentSliceInput{Method: enum.PaymentMethodCash},
		Installments: &InstallmentSpec{Count: 2, DayOffsets: []int{7, 14}},
	})
	require.Error(t, err)

	// No items.
	_, err = f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CreatedBy:  f.userID,
		CustomerID: &f.customerID,
		OrderType:  enum.OrderTypeWholesale,
		Payment:    PaymentSliceInput{Method: enum.PaymentMethodCash},
	})
	require.Error(t, err)
}

func TestCreateCounterSale(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	buyer := "Maria"
	order, err := f.svc.CreateCounterSale(context.Background(), &CounterSaleInput{
		CreatedBy: f.userID,
		BuyerName: &buyer,
		Items:     []CartItemInput{f.item(2)},
		Payment:   PaymentSliceInput{Method: enum.PaymentMethodCash},
	})
	require.NoError(t, err)

	// Counter sales price at retail and settle immediately.
	require.Equal(t, enum.OrderTypeRetail, order.OrderType)
	require.Equal(t, int64(24000), order.Total)
	require.Equal(t, enum.PaymentStatusPaid, order.PaymentStatus)

	// No credit account, no reservation.
	require.Nil(t, f.settlement.last.CreditReservation)
}

func TestCreateCounterSaleRejectsBoleto(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	buyer := "Maria"
	_, err := f.svc.CreateCounterSale(context.Background(), &CounterSaleInput{
		CreatedBy: f.userID,
		BuyerName: &buyer,
		Items:     []CartItemInput{f.item(1)},
		Payment:   PaymentSliceInput{Method: enum.PaymentMethodBoleto},
	})
	require.Error(t, err)
}

func TestCreateOrderListOrders(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CreatedBy:  f.userID,
		CustomerID: &f.customerID,
		OrderType:  enum.OrderTypeWholesale,
		Items:      []CartItemInput{f.item(1)},
		Payment:    PaymentSliceInput{Method: enum.PaymentMethodCash},
	})
	require.NoError(t, err)

	result, err := f.svc.ListOrders(context.Background(), &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 15},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.Equal(t, int64(1), result.Pagination.Total)
}
