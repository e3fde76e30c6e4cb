package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PixCharge is an externally confirmed instant payment linked to an order
// after the fact. Amounts mirror what the provider reported.
type PixCharge struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	// ChargeID is the provider's charge identifier.
	ChargeID   string     `gorm:"size:255;uniqueIndex;not null" json:"charge_id"`
	OrderID    *uuid.UUID `gorm:"type:uuid;index" json:"order_id,omitempty"`
	SubAccount string     `gorm:"size:255" json:"sub_account"`

	Amount    int64 `gorm:"not null" json:"-"`
	FeeAmount int64 `gorm:"default:0" json:"-"`
	NetAmount int64 `gorm:"not null" json:"-"`

	Status      string    `gorm:"size:50" json:"status"`
	ConfirmedAt time.Time `json:"confirmed_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p PixCharge) MarshalJSON() ([]byte, error) {
	type Alias PixCharge
	return json.Marshal(&struct {
		Alias
		Amount    float64 `json:"amount"`
		FeeAmount float64 `json:"fee_amount"`
		NetAmount float64 `json:"net_amount"`
	}{
		Alias:     Alias(p),
		Amount:    float64(p.Amount) / 100,
		FeeAmount: float64(p.FeeAmount) / 100,
		NetAmount: float64(p.NetAmount) / 100,
	})
}

// TableName returns the table name for the PixCharge model
func (PixCharge) TableName() string {
	return "pix_charges"
}
