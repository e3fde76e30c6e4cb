package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/enum"
	"gorm.io/gorm"
)

// Receivable is an accounts-receivable record for one payment slice of an
// order. Boleto slices never get a receivable; the boleto itself tracks
// the expected payment.
type Receivable struct {
	ID            uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	OrderID       uuid.UUID             `gorm:"type:uuid;not null;index" json:"order_id"`
	CustomerID    *uuid.UUID            `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	PaymentMethod enum.PaymentMethod    `gorm:"not null" json:"payment_method"`
	Amount        int64                 `gorm:"not null" json:"-"`
	Status        enum.ReceivableStatus `gorm:"default:0" json:"status"`
	DueDate       *time.Time            `gorm:"type:date" json:"due_date,omitempty"`
	PaidAt        *time.Time            `json:"paid_at,omitempty"`
	Description   string                `gorm:"size:255" json:"description"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	DeletedAt     gorm.DeletedAt        `gorm:"index" json:"-"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r Receivable) MarshalJSON() ([]byte, error) {
	type Alias Receivable
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(r),
		Amount: float64(r.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new receivable
func (r *Receivable) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receivable model
func (Receivable) TableName() string {
	return "receivables"
}
