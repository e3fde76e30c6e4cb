package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Commission is a seller's cut of a settled order, created once when the
// paying customer is linked to a seller.
type Commission struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SellerID uuid.UUID `gorm:"type:uuid;not null;index" json:"seller_id"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`

	Rate   float64 `gorm:"not null" json:"rate"`
	Amount int64   `gorm:"not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Seller Seller `gorm:"foreignKey:SellerID" json:"-"`
	Order  Order  `gorm:"foreignKey:OrderID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c Commission) MarshalJSON() ([]byte, error) {
	type Alias Commission
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(c),
		Amount: float64(c.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new commission
func (c *Commission) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Commission model
func (Commission) TableName() string {
	return "commissions"
}
