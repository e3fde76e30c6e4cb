package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/enum"
	"gorm.io/gorm"
)

// Order represents a settled sale, wholesale or retail
type Order struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Number     string         `gorm:"size:100;unique;not null" json:"number"`
	CreatedBy  uuid.UUID      `gorm:"type:uuid;not null;index" json:"created_by"`
	CustomerID *uuid.UUID     `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	EmployeeID *uuid.UUID     `gorm:"type:uuid;index" json:"employee_id,omitempty"`
	// BuyerName is filled when the payer is a casual buyer with no account.
	BuyerName *string `gorm:"size:255" json:"buyer_name,omitempty"`

	OrderType     enum.OrderType     `gorm:"default:0" json:"order_type"`
	OrderStatus   enum.OrderStatus   `gorm:"default:0" json:"order_status"`
	PaymentStatus enum.PaymentStatus `gorm:"default:0" json:"payment_status"`

	PaymentMethod          enum.PaymentMethod  `gorm:"not null" json:"payment_method"`
	PaymentAmount          int64               `gorm:"default:0" json:"-"`
	SecondaryPaymentMethod *enum.PaymentMethod `json:"secondary_payment_method,omitempty"`
	SecondaryPaymentAmount int64               `gorm:"default:0" json:"-"`

	SubTotal    int64 `gorm:"default:0" json:"-"`
	Discount    int64 `gorm:"default:0" json:"-"`
	CardFee     int64 `gorm:"default:0" json:"-"`
	BoletoFee   int64 `gorm:"default:0" json:"-"`
	DeliveryFee int64 `gorm:"default:0" json:"-"`
	Total       int64 `gorm:"default:0" json:"-"`

	CouponID    *uuid.UUID `gorm:"type:uuid;index" json:"coupon_id,omitempty"`
	PixChargeID *string    `gorm:"size:255;index" json:"pix_charge_id,omitempty"`

	DeliveryDate *time.Time `gorm:"type:date" json:"delivery_date,omitempty"`
	DeliveryType *string    `gorm:"size:50" json:"delivery_type,omitempty"`
	Notes        *string    `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer    *Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Employee    *Employee    `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Items       []OrderItem  `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Receivables []Receivable `gorm:"foreignKey:OrderID" json:"receivables,omitempty"`
	Boletos     []Boleto     `gorm:"foreignKey:OrderID" json:"boletos,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		PaymentAmount          float64 `json:"payment_amount"`
		SecondaryPaymentAmount float64 `json:"secondary_payment_amount"`
		SubTotal               float64 `json:"sub_total"`
		Discount               float64 `json:"discount"`
		CardFee                float64 `json:"card_fee"`
		BoletoFee              float64 `json:"boleto_fee"`
		DeliveryFee            float64 `json:"delivery_fee"`
		Total                  float64 `json:"total"`
	}{
		Alias:                  Alias(o),
		PaymentAmount:          float64(o.PaymentAmount) / 100,
		SecondaryPaymentAmount: float64(o.SecondaryPaymentAmount) / 100,
		SubTotal:               float64(o.SubTotal) / 100,
		Discount:               float64(o.Discount) / 100,
		CardFee:                float64(o.CardFee) / 100,
		BoletoFee:              float64(o.BoletoFee) / 100,
		DeliveryFee:            float64(o.DeliveryFee) / 100,
		Total:                  float64(o.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// IsSplit reports whether the order was settled with two payment slices.
func (o *Order) IsSplit() bool {
	return o.SecondaryPaymentMethod != nil
}

// OrderItem represents a line item in an order
type OrderItem struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	OrderID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID     *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	RawMaterialID *uuid.UUID `gorm:"type:uuid;index" json:"raw_material_id,omitempty"`
	Quantity      int        `gorm:"not null" json:"quantity"`
	UnitPrice     int64      `gorm:"not null" json:"-"`
	Total         int64      `gorm:"not null" json:"-"`
	IsGift        bool       `gorm:"default:false" json:"is_gift"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relationships
	Order       Order        `gorm:"foreignKey:OrderID" json:"-"`
	Product     *Product     `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	RawMaterial *RawMaterial `gorm:"foreignKey:RawMaterialID" json:"raw_material,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(i),
		UnitPrice: float64(i.UnitPrice) / 100,
		Total:     float64(i.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
