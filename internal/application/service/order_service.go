package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/billing"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/entity"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/enum"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/repository"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/pkg/apperror"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/pkg/email"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/pkg/pagination"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/pkg/utils"
)

// SettlementConfig collects the tunable settlement parameters. Amounts
// are cents, percentages whole percents.
type SettlementConfig struct {
	Fees FeeConfig

	// Acquirer settlement fees for pending card-settlement records.
	DebitSettleFeePercent  float64
	CreditSettleFeePercent float64

	MinBoletoAmount    int64
	BoletoDueDays      int
	StoreCreditDueDays int

	// PixTolerance bounds the accepted difference between the computed
	// total and an externally confirmed pix amount.
	PixTolerance int64

	NotifyEmail string
}

// DefaultSettlementConfig returns the production defaults.
func DefaultSettlementConfig() SettlementConfig {
	return SettlementConfig{
		Fees:                   DefaultFeeConfig(),
		DebitSettleFeePercent:  0.9,
		CreditSettleFeePercent: 3.24,
		MinBoletoAmount:        500,
		BoletoDueDays:          7,
		StoreCreditDueDays:     30,
		PixTolerance:           200,
	}
}

// OrderService runs the order settlement pipeline
type OrderService struct {
	orderRepo       repository.OrderRepository
	settlementRepo  repository.SettlementRepository
	productRepo     repository.ProductRepository
	rawMaterialRepo repository.RawMaterialRepository
	customerRepo    repository.CustomerRepository
	employeeRepo    repository.EmployeeRepository
	couponRepo      repository.CouponRepository
	bankAccountRepo repository.BankAccountRepository
	provider        billing.Provider
	mailer          *email.EmailService
	cfg             SettlementConfig
	log             *logrus.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	settlementRepo repository.SettlementRepository,
	productRepo repository.ProductRepository,
	rawMaterialRepo repository.RawMaterialRepository,
	customerRepo repository.CustomerRepository,
	employeeRepo repository.EmployeeRepository,
	couponRepo repository.CouponRepository,
	bankAccountRepo repository.BankAccountRepository,
	provider billing.Provider,
	mailer *email.EmailService,
	cfg SettlementConfig,
	log *logrus.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:       orderRepo,
		settlementRepo:  settlementRepo,
		productRepo:     productRepo,
		rawMaterialRepo: rawMaterialRepo,
		customerRepo:    customerRepo,
		employeeRepo:    employeeRepo,
		couponRepo:      couponRepo,
		bankAccountRepo: bankAccountRepo,
		provider:        provider,
		mailer:          mailer,
		cfg:             cfg,
		log:             log,
	}
}

// CartItemInput is one requested line item
type CartItemInput struct {
	ProductID     *uuid.UUID
	RawMaterialID *uuid.UUID
	Quantity      int
	// ExpectedUnitPrice is the client's optimistic unit price in cents.
	ExpectedUnitPrice *int64
	IsGift            bool
}

// PaymentSliceInput is one payment method with its assigned amount in cents
type PaymentSliceInput struct {
	Method enum.PaymentMethod
	Amount int64
}

// InstallmentSpec describes a boleto installment plan; offsets are days
// counted from the delivery date.
type InstallmentSpec struct {
	Count      int
	DayOffsets []int
}

// CreateOrderInput represents the settlement request
type CreateOrderInput struct {
	CreatedBy uuid.UUID

	CustomerID *uuid.UUID
	EmployeeID *uuid.UUID
	BuyerName  *string

	OrderType enum.OrderType
	Items     []CartItemInput

	Payment          PaymentSliceInput
	SecondaryPayment *PaymentSliceInput

	// DiscountPercent / DiscountAmount (cents): at most one is set.
	DiscountPercent *float64
	DiscountAmount  *int64
	CouponID        *uuid.UUID

	Installments *InstallmentSpec

	BankAccountID *uuid.UUID
	AlreadyPaid   bool

	CardFeeExempt   bool
	BoletoFeeExempt bool

	PixChargeID *string

	DeliveryFee  int64
	DeliveryDate *time.Time
	DeliveryType *string
	Notes        *string
}

// splitToleranceCents bounds the accepted rounding gap between the two
// slices of a split payment and the order total.
const splitToleranceCents = 1

// CreateOrder converts a confirmed cart into durable financial state:
// resolved prices, fees, credit reservation, externally minted boletos,
// and the atomic settlement transaction. This is the wholesale/retail
// entry point.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	now := time.Now()

	payer, customer, employee, err := s.resolvePayer(ctx, input)
	if err != nil {
		return nil, err
	}

	items, subTotal, hasPromoItem, stockDecrements, err := s.resolveItems(ctx, input, customer, now)
	if err != nil {
		return nil, err
	}

	coupon, err := s.resolveCoupon(ctx, input.CouponID, now)
	if err != nil {
		return nil, err
	}

	discount := s.resolveDiscount(input, customer, coupon, subTotal)

	boletoArtifacts := s.boletoArtifactCount(input)
	fees := CalculateFees(s.cfg.Fees, &FeeInput{
		Slices:          s.feeSlices(input, subTotal-discount),
		CardFeeExempt:   input.CardFeeExempt,
		HasPromoItem:    hasPromoItem,
		BoletoArtifacts: boletoArtifacts,
		BoletoFeeExempt: input.BoletoFeeExempt,
		DeliveryFee:     input.DeliveryFee,
	})

	total := subTotal - discount + fees.Total()

	// Reconcile against an externally confirmed pix amount before anything
	// else commits to the computed total.
	var pixCharge *entity.PixCharge
	if input.PixChargeID != nil {
		pixCharge, total, err = s.reconcilePix(ctx, *input.PixChargeID, total)
		if err != nil {
			return nil, err
		}
	}

	primaryAmount, secondaryAmount, err := s.resolveSliceAmounts(input, total)
	if err != nil {
		return nil, err
	}

	if err := s.checkCredit(input, payer, primaryAmount, secondaryAmount); err != nil {
		return nil, err
	}

	orderID := uuid.New()
	number := utils.GenerateOrderNumber()

	// Mint boletos before the transaction: an external, irreversible side
	// effect that a local rollback cannot retract.
	boletos, err := s.mintBoletos(ctx, input, payer, orderID, number, primaryAmount, secondaryAmount)
	if err != nil {
		return nil, err
	}

	settlement, err := s.buildSettlement(ctx, input, payer, customer, employee, settlementParams{
		orderID:         orderID,
		number:          number,
		items:           items,
		subTotal:        subTotal,
		discount:        discount,
		fees:            fees,
		total:           total,
		primaryAmount:   primaryAmount,
		secondaryAmount: secondaryAmount,
		stockDecrements: stockDecrements,
		boletos:         boletos,
		pixCharge:       pixCharge,
		now:             now,
	})
	if err != nil {
		return nil, err
	}

	if err := s.settlementRepo.Create(ctx, settlement); err != nil {
		return nil, s.mapSettlementError(err, settlement)
	}

	s.notifyOrderCreated(settlement.Order, len(items), payer.PayerName())

	return s.orderRepo.GetWithDetails(ctx, orderID)
}

// CounterSaleInput is the point-of-sale entry: a walk-in buyer paying a
// single immediate method, no delivery.
type CounterSaleInput struct {
	CreatedBy  uuid.UUID
	CustomerID *uuid.UUID
	BuyerName  *string
	Items      []CartItemInput
	Payment    PaymentSliceInput
	// BankAccountID is where the confirmed payment is posted.
	BankAccountID  *uuid.UUID
	DiscountAmount *int64
	Notes          *string
}

// CreateCounterSale settles a retail counter sale through the same
// pipeline as CreateOrder.
func (s *OrderService) CreateCounterSale(ctx context.Context, input *CounterSaleInput) (*entity.Order, error) {
	if input.Payment.Method == enum.PaymentMethodBoleto {
		return nil, apperror.NewBadRequestError("Boleto is not accepted at the counter")
	}

	return s.CreateOrder(ctx, &CreateOrderInput{
		CreatedBy:      input.CreatedBy,
		CustomerID:     input.CustomerID,
		BuyerName:      input.BuyerName,
		OrderType:      enum.OrderTypeRetail,
		Items:          input.Items,
		Payment:        input.Payment,
		DiscountAmount: input.DiscountAmount,
		BankAccountID:  input.BankAccountID,
		AlreadyPaid:    true,
		Notes:          input.Notes,
	})
}

func (s *OrderService) validate(input *CreateOrderInput) error {
	var fieldErrors []apperror.FieldError

	payers := 0
	if input.CustomerID != nil {
		payers++
	}
	if input.EmployeeID != nil {
		payers++
	}
	if input.BuyerName != nil && *input.BuyerName != "" {
		payers++
	}
	if payers != 1 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "payer",
			Message: "Exactly one of customer_id, employee_id or buyer_name is required",
		})
	}

	if len(input.Items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "At least one item is required"})
	}
	for i, item := range input.Items {
		if item.Quantity <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "Quantity must be positive",
			})
		}
		if (item.ProductID == nil) == (item.RawMaterialID == nil) {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d]", i),
				Message: "Exactly one of product_id or raw_material_id is required",
			})
		}
	}

	if !input.Payment.Method.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payment_method", Message: "Unsupported payment method"})
	}
	if input.SecondaryPayment != nil {
		if !input.SecondaryPayment.Method.IsValid() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "secondary_payment_method", Message: "Unsupported payment method"})
		}
		if input.Payment.Amount <= 0 || input.SecondaryPayment.Amount <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   "payment",
				Message: "Split payments require a positive amount per slice",
			})
		}
		if input.SecondaryPayment.Method == input.Payment.Method {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   "secondary_payment_method",
				Message: "Split payment slices must use different methods",
			})
		}
	}

	if input.DiscountPercent != nil && input.DiscountAmount != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "discount",
			Message: "Use either a percent or a fixed discount, not both",
		})
	}

	if input.Installments != nil {
		if !s.paysByBoleto(input) {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   "installments",
				Message: "Installments require a boleto payment slice",
			})
		}
		if input.Installments.Count < 1 || len(input.Installments.DayOffsets) != input.Installments.Count {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   "installments",
				Message: "Installment count must match the supplied day offsets",
			})
		}
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

func (s *OrderService) paysByBoleto(input *CreateOrderInput) bool {
	if input.Payment.Method == enum.PaymentMethodBoleto {
		return true
	}
	return input.SecondaryPayment != nil && input.SecondaryPayment.Method == enum.PaymentMethodBoleto
}

func (s *OrderService) resolvePayer(ctx context.Context, input *CreateOrderInput) (entity.Payer, *entity.Customer, *entity.Employee, error) {
	switch {
	case input.CustomerID != nil:
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, nil, nil, err
		}
		if customer == nil {
			return nil, nil, nil, apperror.NewNotFoundError("Customer")
		}
		return customer, customer, nil, nil
	case input.EmployeeID != nil:
		employee, err := s.employeeRepo.GetByID(ctx, *input.EmployeeID)
		if err != nil {
			return nil, nil, nil, err
		}
		if employee == nil {
			return nil, nil, nil, apperror.NewNotFoundError("Employee")
		}
		return employee, nil, employee, nil
	default:
		return &entity.CasualBuyer{Name: *input.BuyerName}, nil, nil, nil
	}
}

// resolveItems prices every line item and accumulates stock decrements
// for trackable products. Raw materials are exempt from stock tracking.
func (s *OrderService) resolveItems(
	ctx context.Context,
	input *CreateOrderInput,
	customer *entity.Customer,
	now time.Time,
) ([]entity.OrderItem, int64, bool, map[uuid.UUID]int, error) {
	var productIDs, materialIDs []uuid.UUID
	for _, item := range input.Items {
		if item.ProductID != nil {
			productIDs = append(productIDs, *item.ProductID)
		} else {
			materialIDs = append(materialIDs, *item.RawMaterialID)
		}
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(productIDs))
	if len(productIDs) > 0 {
		products, err := s.productRepo.GetByIDs(ctx, productIDs)
		if err != nil {
			return nil, 0, false, nil, err
		}
		for i := range products {
			productMap[products[i].ID] = &products[i]
		}
	}

	materialMap := make(map[uuid.UUID]*entity.RawMaterial, len(materialIDs))
	if len(materialIDs) > 0 {
		materials, err := s.rawMaterialRepo.GetByIDs(ctx, materialIDs)
		if err != nil {
			return nil, 0, false, nil, err
		}
		for i := range materials {
			materialMap[materials[i].ID] = &materials[i]
		}
	}

	var personalized map[uuid.UUID]int64
	if customer != nil && len(productIDs) > 0 {
		var err error
		personalized, err = s.customerRepo.GetPrices(ctx, customer.ID, productIDs)
		if err != nil {
			return nil, 0, false, nil, err
		}
	}

	boletoPayment := s.paysByBoleto(input)

	var subTotal int64
	hasPromoItem := false
	items := make([]entity.OrderItem, 0, len(input.Items))
	stockDecrements := make(map[uuid.UUID]int)

	for _, item := range input.Items {
		if item.ProductID != nil {
			product, exists := productMap[*item.ProductID]
			if !exists {
				return nil, 0, false, nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", *item.ProductID))
			}

			var personalizedPrice *int64
			if p, ok := personalized[product.ID]; ok {
				personalizedPrice = &p
			}

			quote, err := ResolvePrice(&PriceRequest{
				Product:           product,
				PersonalizedPrice: personalizedPrice,
				OrderType:         input.OrderType,
				Quantity:          item.Quantity,
				BoletoPayment:     boletoPayment,
				ExpectedUnitPrice: item.ExpectedUnitPrice,
				IsGift:            item.IsGift,
				Now:               now,
			})
			if err != nil {
				return nil, 0, false, nil, err
			}

			if quote.Promotional && !item.IsGift {
				hasPromoItem = true
			}

			subTotal += quote.LineTotal
			productID := product.ID
			items = append(items, entity.OrderItem{
				ProductID: &productID,
				Quantity:  item.Quantity,
				UnitPrice: quote.UnitPrice,
				Total:     quote.LineTotal,
				IsGift:    item.IsGift,
			})
			stockDecrements[product.ID] += item.Quantity
			continue
		}

		material, exists := materialMap[*item.RawMaterialID]
		if !exists {
			return nil, 0, false, nil, apperror.NewNotFoundError(fmt.Sprintf("Raw material %s", *item.RawMaterialID))
		}

		price := material.UnitPrice
		lineTotal := price * int64(item.Quantity)
		if item.IsGift {
			price, lineTotal = 0, 0
		}
		subTotal += lineTotal
		materialID := material.ID
		items = append(items, entity.OrderItem{
			RawMaterialID: &materialID,
			Quantity:      item.Quantity,
			UnitPrice:     price,
			Total:         lineTotal,
			IsGift:        item.IsGift,
		})
	}

	return items, subTotal, hasPromoItem, stockDecrements, nil
}

func (s *OrderService) resolveCoupon(ctx context.Context, couponID *uuid.UUID, now time.Time) (*entity.Coupon, error) {
	if couponID == nil {
		return nil, nil
	}
	coupon, err := s.couponRepo.GetByID(ctx, *couponID)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, apperror.NewNotFoundError("Coupon")
	}
	if !coupon.IsUsable(now) {
		return nil, apperror.NewBadRequestError("Coupon is expired or exhausted")
	}
	return coupon, nil
}

// resolveDiscount combines the request discount (or the customer-wide
// default) with an applied coupon, capped at the subtotal.
func (s *OrderService) resolveDiscount(input *CreateOrderInput, customer *entity.Customer, coupon *entity.Coupon, subTotal int64) int64 {
	var discount int64
	switch {
	case input.DiscountPercent != nil:
		discount = PercentOf(subTotal, *input.DiscountPercent)
	case input.DiscountAmount != nil:
		discount = *input.DiscountAmount
	case customer != nil && customer.DiscountPercent > 0:
		discount = PercentOf(subTotal, customer.DiscountPercent)
	}

	if coupon != nil {
		if coupon.Percent > 0 {
			discount += PercentOf(subTotal, coupon.Percent)
		} else {
			discount += coupon.FixedAmount
		}
	}

	if discount > subTotal {
		discount = subTotal
	}
	return discount
}

func (s *OrderService) boletoArtifactCount(input *CreateOrderInput) int {
	count := 0
	if input.Payment.Method == enum.PaymentMethodBoleto {
		count = 1
		if input.Installments != nil {
			count = input.Installments.Count
		}
	}
	if input.SecondaryPayment != nil && input.SecondaryPayment.Method == enum.PaymentMethodBoleto {
		n := 1
		if input.Installments != nil && input.Payment.Method != enum.PaymentMethodBoleto {
			n = input.Installments.Count
		}
		count += n
	}
	return count
}

// feeSlices resolves the amounts the fee calculation runs on. A single
// method covers the whole discounted subtotal; the request amount is
// only authoritative for splits.
func (s *OrderService) feeSlices(input *CreateOrderInput, singleAmount int64) []PaymentSlice {
	if input.SecondaryPayment == nil {
		return []PaymentSlice{{Method: input.Payment.Method, Amount: singleAmount}}
	}
	return []PaymentSlice{
		{Method: input.Payment.Method, Amount: input.Payment.Amount},
		{Method: input.SecondaryPayment.Method, Amount: input.SecondaryPayment.Amount},
	}
}

// reconcilePix compares the computed total against the externally
// confirmed pix amount: beyond tolerance it rejects, within tolerance it
// normalizes the total to the confirmed amount.
func (s *OrderService) reconcilePix(ctx context.Context, chargeID string, total int64) (*entity.PixCharge, int64, error) {
	confirmed, err := s.provider.GetConfirmedPayment(ctx, chargeID)
	if err != nil {
		s.log.WithError(err).WithField("charge_id", chargeID).Error("failed to fetch confirmed pix payment")
		return nil, 0, apperror.New(http.StatusBadGateway, apperror.CodeInternal, "Billing provider unavailable")
	}

	diff := total - confirmed.Amount
	if diff < 0 {
		diff = -diff
	}
	if diff > s.cfg.PixTolerance {
		return nil, 0, apperror.NewWithDetails(
			http.StatusConflict,
			apperror.CodePixAmountMismatch,
			"Confirmed pix amount does not match the order total",
			map[string]interface{}{
				"order_total":      float64(total) / 100,
				"confirmed_amount": float64(confirmed.Amount) / 100,
			},
		)
	}

	charge := &entity.PixCharge{
		ID:          uuid.New(),
		ChargeID:    chargeID,
		SubAccount:  confirmed.SubAccount,
		Amount:      confirmed.Amount,
		FeeAmount:   confirmed.FeeAmount,
		NetAmount:   confirmed.NetAmount,
		Status:      confirmed.Status,
		ConfirmedAt: time.Now(),
	}

	return charge, confirmed.Amount, nil
}

// resolveSliceAmounts fixes the per-slice amounts against the final
// total: a single method absorbs the whole total, a split must sum to it.
func (s *OrderService) resolveSliceAmounts(input *CreateOrderInput, total int64) (int64, int64, error) {
	if input.SecondaryPayment == nil {
		return total, 0, nil
	}

	sum := input.Payment.Amount + input.SecondaryPayment.Amount
	diff := sum - total
	if diff < 0 {
		diff = -diff
	}
	if diff > splitToleranceCents {
		return 0, 0, apperror.NewWithDetails(
			http.StatusUnprocessableEntity,
			apperror.CodeValidation,
			"Split payment amounts must sum to the order total",
			map[string]interface{}{
				"order_total": float64(total) / 100,
				"slices_sum":  float64(sum) / 100,
			},
		)
	}
	return input.Payment.Amount, input.SecondaryPayment.Amount, nil
}

// checkCredit validates credit-consuming slices against the payer's
// available credit. The reservation itself (full order total) happens
// inside the settlement transaction.
func (s *OrderService) checkCredit(input *CreateOrderInput, payer entity.Payer, primaryAmount, secondaryAmount int64) error {
	var creditSum int64
	if input.Payment.Method.ConsumesCredit() {
		creditSum += primaryAmount
	}
	if input.SecondaryPayment != nil && input.SecondaryPayment.Method.ConsumesCredit() {
		creditSum += secondaryAmount
	}
	if creditSum == 0 {
		return nil
	}

	available, hasAccount := payer.CreditAvailable()
	if !hasAccount {
		return apperror.NewBadRequestError("Deferred payment methods require a registered payer")
	}
	if creditSum > available {
		return apperror.NewWithDetails(
			http.StatusUnprocessableEntity,
			apperror.CodeInsufficientCredit,
			"Insufficient credit for the deferred payment slices",
			map[string]interface{}{
				"required_credit":  float64(creditSum) / 100,
				"available_credit": float64(available) / 100,
			},
		)
	}
	return nil
}

// mintBoletos calls the billing provider for every boleto the order
// needs, before the settlement transaction starts. A failure aborts the
// whole settlement with no durable internal state.
func (s *OrderService) mintBoletos(
	ctx context.Context,
	input *CreateOrderInput,
	payer entity.Payer,
	orderID uuid.UUID,
	orderNumber string,
	primaryAmount, secondaryAmount int64,
) ([]entity.Boleto, error) {
	sliceAmount := int64(0)
	if input.Payment.Method == enum.PaymentMethodBoleto {
		sliceAmount = primaryAmount
	} else if input.SecondaryPayment != nil && input.SecondaryPayment.Method == enum.PaymentMethodBoleto {
		sliceAmount = secondaryAmount
	}
	if sliceAmount == 0 {
		return nil, nil
	}

	baseDate := time.Now()
	if input.DeliveryDate != nil {
		baseDate = *input.DeliveryDate
	}

	count := 1
	offsets := []int{s.cfg.BoletoDueDays}
	if input.Installments != nil {
		count = input.Installments.Count
		offsets = input.Installments.DayOffsets
	}

	amounts := SplitInstallments(sliceAmount, count)
	for _, amount := range amounts {
		if amount < s.cfg.MinBoletoAmount {
			return nil, apperror.NewWithDetails(
				http.StatusUnprocessableEntity,
				apperror.CodeValidation,
				"Installment amount is below the minimum payable boleto amount",
				map[string]interface{}{
					"installment_amount": float64(amount) / 100,
					"minimum_amount":     float64(s.cfg.MinBoletoAmount) / 100,
				},
			)
		}
	}

	var subAccount string
	if input.BankAccountID != nil {
		account, err := s.bankAccountRepo.GetByID(ctx, *input.BankAccountID)
		if err != nil {
			return nil, err
		}
		if account == nil {
			return nil, apperror.NewNotFoundError("Bank account")
		}
		if account.PixSubAccount != nil {
			subAccount = *account.PixSubAccount
		}
	}

	boletos := make([]entity.Boleto, 0, count)
	for i, amount := range amounts {
		number := utils.GenerateBoletoNumber()
		dueDate := baseDate.AddDate(0, 0, offsets[i])

		charge, err := s.provider.CreateCharge(ctx, &billing.CreateChargeInput{
			Code:          number,
			PayerName:     payer.PayerName(),
			PayerDocument: payer.PayerDocument(),
			Amount:        amount,
			DueDate:       dueDate,
			Description:   fmt.Sprintf("Pedido %s - parcela %d/%d", orderNumber, i+1, count),
			SubAccount:    subAccount,
		})
		if err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"order_number": orderNumber,
				"installment":  i + 1,
			}).Error("billing provider rejected boleto creation")
			return nil, apperror.New(http.StatusBadGateway, apperror.CodeInternal, "Billing provider unavailable")
		}

		var qrImage *string
		if charge.PixQRImage != "" {
			qr := charge.PixQRImage
			qrImage = &qr
		}
		boletos = append(boletos, entity.Boleto{
			ID:            uuid.New(),
			OrderID:       orderID,
			Number:        number,
			Installment:   i + 1,
			Amount:        amount,
			DueDate:       dueDate,
			Status:        enum.BoletoStatusOpen,
			ProviderID:    charge.ID,
			Barcode:       charge.Barcode,
			DigitableLine: charge.DigitableLine,
			PixCode:       charge.PixCode,
			PixQRImage:    qrImage,
		})
	}

	return boletos, nil
}

type settlementParams struct {
	orderID         uuid.UUID
	number          string
	items           []entity.OrderItem
	subTotal        int64
	discount        int64
	fees            FeeBreakdown
	total           int64
	primaryAmount   int64
	secondaryAmount int64
	stockDecrements map[uuid.UUID]int
	boletos         []entity.Boleto
	pixCharge       *entity.PixCharge
	now             time.Time
}

// buildSettlement assembles the full settlement aggregate: order, items,
// receivables, card settlements, commission, ledger postings and the
// credit reservation.
func (s *OrderService) buildSettlement(
	ctx context.Context,
	input *CreateOrderInput,
	payer entity.Payer,
	customer *entity.Customer,
	employee *entity.Employee,
	p settlementParams,
) (*repository.Settlement, error) {
	order := &entity.Order{
		ID:            p.orderID,
		Number:        p.number,
		CreatedBy:     input.CreatedBy,
		CustomerID:    input.CustomerID,
		EmployeeID:    input.EmployeeID,
		BuyerName:     input.BuyerName,
		OrderType:     input.OrderType,
		OrderStatus:   enum.OrderStatusPending,
		PaymentMethod: input.Payment.Method,
		PaymentAmount: p.primaryAmount,
		SubTotal:      p.subTotal,
		Discount:      p.discount,
		CardFee:       p.fees.CardFee,
		BoletoFee:     p.fees.BoletoFee,
		DeliveryFee:   p.fees.DeliveryFee,
		Total:         p.total,
		CouponID:      input.CouponID,
		PixChargeID:   input.PixChargeID,
		DeliveryDate:  input.DeliveryDate,
		DeliveryType:  input.DeliveryType,
		Notes:         input.Notes,
	}
	if input.SecondaryPayment != nil {
		method := input.SecondaryPayment.Method
		order.SecondaryPaymentMethod = &method
		order.SecondaryPaymentAmount = p.secondaryAmount
	}

	for i := range p.items {
		p.items[i].OrderID = p.orderID
	}
	order.Items = p.items

	slices := []PaymentSlice{{Method: input.Payment.Method, Amount: p.primaryAmount}}
	if input.SecondaryPayment != nil {
		slices = append(slices, PaymentSlice{Method: input.SecondaryPayment.Method, Amount: p.secondaryAmount})
	}

	var receivables []entity.Receivable
	var cardSettlements []entity.CardSettlement
	var postings []repository.LedgerPosting
	paidSlices := 0

	for _, slice := range slices {
		if slice.Method == enum.PaymentMethodBoleto {
			// The boleto itself tracks the expected payment; a receivable
			// here would double-book it.
			continue
		}

		status := enum.ReceivableStatusPending
		var paidAt *time.Time
		if input.AlreadyPaid && slice.Method.SettlesImmediately() {
			status = enum.ReceivableStatusPaid
			now := p.now
			paidAt = &now
			paidSlices++
		}

		var dueDate *time.Time
		if slice.Method == enum.PaymentMethodStoreCredit {
			due := p.now.AddDate(0, 0, s.cfg.StoreCreditDueDays)
			dueDate = &due
		}

		receivable := entity.Receivable{
			ID:            uuid.New(),
			OrderID:       p.orderID,
			CustomerID:    payer.CustomerRef(),
			PaymentMethod: slice.Method,
			Amount:        slice.Amount,
			Status:        status,
			DueDate:       dueDate,
			PaidAt:        paidAt,
			Description:   fmt.Sprintf("Pedido %s - %s", p.number, slice.Method),
		}
		receivables = append(receivables, receivable)

		if slice.Method.IsCard() {
			feePercent := s.cfg.DebitSettleFeePercent
			businessDays := 1
			if slice.Method == enum.PaymentMethodCreditCard {
				feePercent = s.cfg.CreditSettleFeePercent
				businessDays = 2
			}
			feeAmount := PercentOf(slice.Amount, feePercent)
			cardSettlements = append(cardSettlements, entity.CardSettlement{
				OrderID:     p.orderID,
				Method:      slice.Method,
				GrossAmount: slice.Amount,
				FeePercent:  feePercent,
				NetAmount:   slice.Amount - feeAmount,
				ExpectedAt:  AddBusinessDays(p.now, businessDays),
			})
		}

		if status == enum.ReceivableStatusPaid && input.BankAccountID != nil {
			posting := repository.LedgerPosting{
				AccountID:    *input.BankAccountID,
				ReceivableID: &receivable.ID,
				Amount:       slice.Amount,
				Description:  receivable.Description,
			}
			// Pix routed through a provider sub-account posts the net
			// amount; the provider fee goes in the description.
			if slice.Method == enum.PaymentMethodPix && p.pixCharge != nil && p.pixCharge.SubAccount != "" {
				posting.Amount = p.pixCharge.NetAmount
				posting.Description = fmt.Sprintf("%s (taxa R$ %.2f)", receivable.Description, float64(p.pixCharge.FeeAmount)/100)
			}
			postings = append(postings, posting)
		}
	}

	switch {
	case len(p.boletos) > 0:
		order.PaymentStatus = enum.PaymentStatusPending
		if paidSlices > 0 {
			order.PaymentStatus = enum.PaymentStatusPartial
		}
	case paidSlices == len(slices) && paidSlices > 0:
		order.PaymentStatus = enum.PaymentStatusPaid
	case paidSlices > 0:
		order.PaymentStatus = enum.PaymentStatusPartial
	default:
		order.PaymentStatus = enum.PaymentStatusPending
	}

	var commission *entity.Commission
	if seller := payer.CommissionSeller(); seller != nil && seller.CommissionRate > 0 {
		commission = &entity.Commission{
			SellerID: seller.ID,
			OrderID:  p.orderID,
			Rate:     seller.CommissionRate,
			Amount:   PercentOf(p.total, seller.CommissionRate*100),
		}
	}

	var reservation *repository.CreditReservation
	if customer != nil {
		reservation = &repository.CreditReservation{CustomerID: input.CustomerID, Amount: p.total}
	} else if employee != nil {
		reservation = &repository.CreditReservation{EmployeeID: input.EmployeeID, Amount: p.total}
	}

	if p.pixCharge != nil {
		orderID := p.orderID
		p.pixCharge.OrderID = &orderID
	}

	return &repository.Settlement{
		Order:             order,
		Receivables:       receivables,
		Boletos:           p.boletos,
		CardSettlements:   cardSettlements,
		Commission:        commission,
		PixCharge:         p.pixCharge,
		StockDecrements:   p.stockDecrements,
		CouponID:          input.CouponID,
		CreditReservation: reservation,
		LedgerPostings:    postings,
	}, nil
}

// mapSettlementError translates transaction failures into structured
// rejections. A failure after boletos were minted leaves them orphaned at
// the provider; that is logged for manual reconciliation, never hidden.
func (s *OrderService) mapSettlementError(err error, settlement *repository.Settlement) error {
	var stockErr *repository.InsufficientStockError
	if errors.As(err, &stockErr) {
		return apperror.NewWithDetails(
			http.StatusUnprocessableEntity,
			apperror.CodeInsufficientStock,
			fmt.Sprintf("Insufficient stock for %s", stockErr.Name),
			map[string]interface{}{
				"product_id": stockErr.ProductID,
				"requested":  stockErr.Requested,
				"available":  stockErr.Available,
			},
		)
	}

	var creditErr *repository.CreditExceededError
	if errors.As(err, &creditErr) {
		return apperror.NewWithDetails(
			http.StatusUnprocessableEntity,
			apperror.CodeInsufficientCredit,
			"Credit limit exceeded",
			map[string]interface{}{
				"required_credit":  float64(creditErr.Required) / 100,
				"available_credit": float64(creditErr.Available) / 100,
			},
		)
	}

	var couponErr *repository.CouponExhaustedError
	if errors.As(err, &couponErr) {
		return apperror.NewBadRequestError("Coupon is no longer usable")
	}

	fields := logrus.Fields{"order_number": settlement.Order.Number}
	if len(settlement.Boletos) > 0 {
		ids := make([]string, len(settlement.Boletos))
		for i, b := range settlement.Boletos {
			ids[i] = b.ProviderID
		}
		fields["orphaned_boletos"] = ids
	}
	s.log.WithError(err).WithFields(fields).Error("settlement transaction failed")

	return apperror.ErrInternalServer
}

// notifyOrderCreated dispatches the back-office notification without
// blocking or affecting the committed settlement.
func (s *OrderService) notifyOrderCreated(order *entity.Order, itemCount int, buyerName string) {
	if s.mailer == nil || s.cfg.NotifyEmail == "" {
		return
	}
	number := order.Number
	total := float64(order.Total) / 100
	go func() {
		err := s.mailer.SendOrderCreated(s.cfg.NotifyEmail, email.OrderCreatedData{
			Number:    number,
			BuyerName: buyerName,
			Total:     total,
			ItemCount: itemCount,
		})
		if err != nil {
			s.log.WithError(err).WithField("order_number", number).Warn("order notification failed")
		}
	}()
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}
