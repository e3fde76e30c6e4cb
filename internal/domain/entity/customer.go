package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a registered buyer with a credit account
type Customer struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Document *string   `gorm:"size:50" json:"document,omitempty"`
	Email    *string   `gorm:"size:255" json:"email,omitempty"`
	Phone    *string   `gorm:"size:50" json:"phone,omitempty"`
	Address  *string   `gorm:"type:text" json:"address,omitempty"`

	// CreditLimit is the spending ceiling; CreditUsed is the standing
	// commitment consumed by settled, not-yet-paid orders.
	CreditLimit int64 `gorm:"default:0" json:"-"`
	CreditUsed  int64 `gorm:"default:0" json:"-"`

	// DiscountPercent is a customer-wide override applied on top of
	// resolved prices, when the sales team negotiated one.
	DiscountPercent float64 `gorm:"default:0" json:"discount_percent"`

	SellerID *uuid.UUID `gorm:"type:uuid;index" json:"seller_id,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Seller *Seller `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Orders []Order `gorm:"foreignKey:CustomerID" json:"-"`
	Prices []CustomerPrice `gorm:"foreignKey:CustomerID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c Customer) MarshalJSON() ([]byte, error) {
	type Alias Customer
	return json.Marshal(&struct {
		Alias
		CreditLimit     float64 `json:"credit_limit"`
		CreditUsed      float64 `json:"credit_used"`
		AvailableCredit float64 `json:"available_credit"`
	}{
		Alias:           Alias(c),
		CreditLimit:     float64(c.CreditLimit) / 100,
		CreditUsed:      float64(c.CreditUsed) / 100,
		AvailableCredit: float64(c.AvailableCredit()) / 100,
	})
}

// AvailableCredit returns the credit still open for new settlements.
func (c *Customer) AvailableCredit() int64 {
	return c.CreditLimit - c.CreditUsed
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// CustomerPrice is a personalized unit price negotiated for one customer
// and one product.
type CustomerPrice struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index:idx_customer_product,unique" json:"customer_id"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index:idx_customer_product,unique" json:"product_id"`
	UnitPrice  int64     `gorm:"not null" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p CustomerPrice) MarshalJSON() ([]byte, error) {
	type Alias CustomerPrice
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
	}{
		Alias:     Alias(p),
		UnitPrice: float64(p.UnitPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new customer price
func (p *CustomerPrice) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CustomerPrice model
func (CustomerPrice) TableName() string {
	return "customer_prices"
}

// Employee represents a staff member buying on an internal credit account
type Employee struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Document *string   `gorm:"size:50" json:"document,omitempty"`
	Phone    *string   `gorm:"size:50" json:"phone,omitempty"`

	CreditLimit int64 `gorm:"default:0" json:"-"`
	CreditUsed  int64 `gorm:"default:0" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (e Employee) MarshalJSON() ([]byte, error) {
	type Alias Employee
	return json.Marshal(&struct {
		Alias
		CreditLimit     float64 `json:"credit_limit"`
		CreditUsed      float64 `json:"credit_used"`
		AvailableCredit float64 `json:"available_credit"`
	}{
		Alias:           Alias(e),
		CreditLimit:     float64(e.CreditLimit) / 100,
		CreditUsed:      float64(e.CreditUsed) / 100,
		AvailableCredit: float64(e.AvailableCredit()) / 100,
	})
}

// AvailableCredit returns the credit still open for new settlements.
func (e *Employee) AvailableCredit() int64 {
	return e.CreditLimit - e.CreditUsed
}

// BeforeCreate generates a UUID before creating a new employee
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Employee model
func (Employee) TableName() string {
	return "employees"
}

// Seller represents a commissioned sales representative
type Seller struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"size:255;not null" json:"name"`
	// CommissionRate is a fraction of the order total, e.g. 0.02 for 2%.
	CommissionRate float64 `gorm:"default:0" json:"commission_rate"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new seller
func (s *Seller) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Seller model
func (Seller) TableName() string {
	return "sellers"
}
