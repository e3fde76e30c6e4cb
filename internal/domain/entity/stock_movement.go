package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockMovement is an immutable audit record of a stock decrement made by
// a settlement. PreviousStock and NewStock capture the row values around
// the guarded update; NewStock == PreviousStock - Quantity always holds.
type StockMovement struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`

	Quantity      int `gorm:"not null" json:"quantity"`
	PreviousStock int `gorm:"not null" json:"previous_stock"`
	NewStock      int `gorm:"not null" json:"new_stock"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock movement
func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockMovement model
func (StockMovement) TableName() string {
	return "stock_movements"
}
