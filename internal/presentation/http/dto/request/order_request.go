package request

import (
	"time"

	"github.com/google/uuid"
)

// OrderItemRequest represents one requested line item. Prices arrive as
// decimal values and are converted to cents at the handler boundary.
type OrderItemRequest struct {
	ProductID         *uuid.UUID `json:"product_id"`
	RawMaterialID     *uuid.UUID `json:"raw_material_id"`
	Quantity          int        `json:"quantity" binding:"required,min=1"`
	ExpectedUnitPrice *float64   `json:"expected_unit_price" binding:"omitempty,min=0"`
	IsGift            bool       `json:"is_gift"`
}

// PaymentRequest represents one payment slice
type PaymentRequest struct {
	Method int     `json:"method" binding:"min=0,max=5"`
	Amount float64 `json:"amount" binding:"min=0"`
}

// InstallmentRequest describes a boleto installment plan
type InstallmentRequest struct {
	Count      int   `json:"count" binding:"required,min=1,max=12"`
	DayOffsets []int `json:"day_offsets" binding:"required"`
}

// CreateOrderRequest represents an order settlement request
type CreateOrderRequest struct {
	CustomerID *uuid.UUID `json:"customer_id"`
	EmployeeID *uuid.UUID `json:"employee_id"`
	BuyerName  *string    `json:"buyer_name" binding:"omitempty,max=255"`

	OrderType int                `json:"order_type" binding:"min=0,max=1"`
	Items     []OrderItemRequest `json:"items" binding:"required,min=1,dive"`

	Payment          PaymentRequest  `json:"payment" binding:"required"`
	SecondaryPayment *PaymentRequest `json:"secondary_payment"`

	DiscountPercent *float64 `json:"discount_percent" binding:"omitempty,min=0,max=100"`
	DiscountAmount  *float64 `json:"discount_amount" binding:"omitempty,min=0"`
	CouponID        *uuid.UUID `json:"coupon_id"`

	Installments *InstallmentRequest `json:"installments"`

	BankAccountID *uuid.UUID `json:"bank_account_id"`
	AlreadyPaid   bool       `json:"already_paid"`

	CardFeeExempt   bool `json:"card_fee_exempt"`
	BoletoFeeExempt bool `json:"boleto_fee_exempt"`

	PixChargeID *string `json:"pix_charge_id"`

	DeliveryFee  float64    `json:"delivery_fee" binding:"min=0"`
	DeliveryDate *time.Time `json:"delivery_date"`
	DeliveryType *string    `json:"delivery_type" binding:"omitempty,max=100"`
	Notes        *string    `json:"notes"`
}

// CreateCounterSaleRequest represents a point-of-sale counter sale
type CreateCounterSaleRequest struct {
	CustomerID *uuid.UUID `json:"customer_id"`
	BuyerName  *string    `json:"buyer_name" binding:"omitempty,max=255"`

	Items   []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Payment PaymentRequest     `json:"payment" binding:"required"`

	BankAccountID  *uuid.UUID `json:"bank_account_id"`
	DiscountAmount *float64   `json:"discount_amount" binding:"omitempty,min=0"`
	Notes          *string    `json:"notes"`
}

// OrderFilterRequest represents order filter parameters
type OrderFilterRequest struct {
	Search        string `form:"search"`
	Status        *int   `form:"status"`
	PaymentStatus *int   `form:"payment_status"`
	OrderType     *int   `form:"order_type"`
	CustomerID    string `form:"customer_id"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	SortBy        string `form:"sort_by"`
	SortOrder     string `form:"sort_order"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}

// ReceivableFilterRequest represents receivable filter parameters
type ReceivableFilterRequest struct {
	Status     *int   `form:"status"`
	CustomerID string `form:"customer_id"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
