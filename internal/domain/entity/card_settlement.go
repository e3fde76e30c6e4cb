package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/enum"
	"gorm.io/gorm"
)

// CardSettlement is one pending acquirer-settlement record per card-paid
// slice of an order.
type CardSettlement struct {
	ID      uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrderID uuid.UUID          `gorm:"type:uuid;not null;index" json:"order_id"`
	Method  enum.PaymentMethod `gorm:"not null" json:"method"`

	GrossAmount int64   `gorm:"not null" json:"-"`
	FeePercent  float64 `gorm:"not null" json:"fee_percent"`
	NetAmount   int64   `gorm:"not null" json:"-"`

	// ExpectedAt is sale date + 1 business day for debit, + 2 for credit.
	ExpectedAt time.Time  `gorm:"type:date;not null" json:"expected_at"`
	SettledAt  *time.Time `json:"settled_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s CardSettlement) MarshalJSON() ([]byte, error) {
	type Alias CardSettlement
	return json.Marshal(&struct {
		Alias
		GrossAmount float64 `json:"gross_amount"`
		NetAmount   float64 `json:"net_amount"`
	}{
		Alias:       Alias(s),
		GrossAmount: float64(s.GrossAmount) / 100,
		NetAmount:   float64(s.NetAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new card settlement
func (s *CardSettlement) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CardSettlement model
func (CardSettlement) TableName() string {
	return "card_settlements"
}
