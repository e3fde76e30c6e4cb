package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Coupon is a promotional code applied at settlement time
type Coupon struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Code string    `gorm:"size:100;unique;not null" json:"code"`

	// Either a percent discount or a fixed amount in cents; one of the
	// two is zero.
	Percent     float64 `gorm:"default:0" json:"percent"`
	FixedAmount int64   `gorm:"default:0" json:"-"`

	MaxUses   int        `gorm:"default:0" json:"max_uses"`
	UsedCount int        `gorm:"default:0" json:"used_count"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c Coupon) MarshalJSON() ([]byte, error) {
	type Alias Coupon
	return json.Marshal(&struct {
		Alias
		FixedAmount float64 `json:"fixed_amount"`
	}{
		Alias:       Alias(c),
		FixedAmount: float64(c.FixedAmount) / 100,
	})
}

// IsUsable reports whether the coupon can still be applied at t.
func (c *Coupon) IsUsable(t time.Time) bool {
	if c.ExpiresAt != nil && c.ExpiresAt.Before(t) {
		return false
	}
	return c.MaxUses == 0 || c.UsedCount < c.MaxUses
}

// BeforeCreate generates a UUID before creating a new coupon
func (c *Coupon) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Coupon model
func (Coupon) TableName() string {
	return "coupons"
}

// CouponUsage records one application of a coupon to an order
type CouponUsage struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CouponID  uuid.UUID `gorm:"type:uuid;not null;index" json:"coupon_id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new coupon usage
func (u *CouponUsage) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CouponUsage model
func (CouponUsage) TableName() string {
	return "coupon_usages"
}
