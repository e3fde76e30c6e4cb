package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a catalog product with tracked stock
type Product struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"size:255;not null" json:"name"`
	Code string    `gorm:"size:100;unique;not null" json:"code"`

	Quantity      int `gorm:"default:0" json:"quantity"`
	QuantityAlert int `gorm:"default:0" json:"quantity_alert"`

	// Base unit prices per order type, in cents.
	WholesalePrice int64 `gorm:"default:0" json:"-"`
	RetailPrice    int64 `gorm:"default:0" json:"-"`

	// PromoPrice is the active promotional unit price; zero means no
	// promotion. Promotions are honored for every payment method except
	// boleto, where the customer defers payment.
	PromoPrice   int64      `gorm:"default:0" json:"-"`
	PromoExpires *time.Time `json:"promo_expires,omitempty"`

	// Quantity-tier discount: TierPrice applies when the ordered quantity
	// reaches TierMinQty. Zero TierMinQty disables the tier.
	TierPrice  int64 `gorm:"default:0" json:"-"`
	TierMinQty int   `gorm:"default:0" json:"tier_min_qty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		WholesalePrice float64 `json:"wholesale_price"`
		RetailPrice    float64 `json:"retail_price"`
		PromoPrice     float64 `json:"promo_price"`
		TierPrice      float64 `json:"tier_price"`
	}{
		Alias:          Alias(p),
		WholesalePrice: float64(p.WholesalePrice) / 100,
		RetailPrice:    float64(p.RetailPrice) / 100,
		PromoPrice:     float64(p.PromoPrice) / 100,
		TierPrice:      float64(p.TierPrice) / 100,
	})
}

// HasActivePromo reports whether the product carries a live promotion at t.
func (p *Product) HasActivePromo(t time.Time) bool {
	if p.PromoPrice <= 0 {
		return false
	}
	return p.PromoExpires == nil || p.PromoExpires.After(t)
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// RawMaterial represents a production input sold occasionally; raw
// materials are exempt from stock movement tracking.
type RawMaterial struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	UnitPrice int64          `gorm:"default:0" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (m RawMaterial) MarshalJSON() ([]byte, error) {
	type Alias RawMaterial
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
	}{
		Alias:     Alias(m),
		UnitPrice: float64(m.UnitPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new raw material
func (m *RawMaterial) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RawMaterial model
func (RawMaterial) TableName() string {
	return "raw_materials"
}
