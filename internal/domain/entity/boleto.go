package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/enum"
	"gorm.io/gorm"
)

// Boleto is one billing artifact issued through the external provider,
// possibly one of an installment series. Provider identifiers are minted
// before the settlement transaction and persisted inside it.
type Boleto struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	// Number is our own generated document number, used as the
	// idempotency code on the provider call.
	Number      string            `gorm:"size:100;unique;not null" json:"number"`
	Installment int               `gorm:"default:1" json:"installment"`
	Amount      int64             `gorm:"not null" json:"-"`
	DueDate     time.Time         `gorm:"type:date;not null" json:"due_date"`
	Status      enum.BoletoStatus `gorm:"default:0" json:"status"`

	// Provider-issued identifiers.
	ProviderID    string  `gorm:"size:255" json:"provider_id"`
	Barcode       string  `gorm:"size:255" json:"barcode"`
	DigitableLine string  `gorm:"size:255" json:"digitable_line"`
	PixCode       string  `gorm:"type:text" json:"pix_code"`
	PixQRImage    *string `gorm:"type:text" json:"pix_qr_image,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (b Boleto) MarshalJSON() ([]byte, error) {
	type Alias Boleto
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(b),
		Amount: float64(b.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new boleto
func (b *Boleto) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Boleto model
func (Boleto) TableName() string {
	return "boletos"
}
