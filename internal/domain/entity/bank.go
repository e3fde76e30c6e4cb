package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BankAccount represents a company bank account the ledger posts against
type BankAccount struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name    string    `gorm:"size:255;not null" json:"name"`
	Bank    string    `gorm:"size:255" json:"bank"`
	Balance int64     `gorm:"default:0" json:"-"`

	// PixSubAccount identifies the provider sub-account that receives pix
	// payouts for this account, when configured.
	PixSubAccount *string `gorm:"size:255" json:"pix_sub_account,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (a BankAccount) MarshalJSON() ([]byte, error) {
	type Alias BankAccount
	return json.Marshal(&struct {
		Alias
		Balance float64 `json:"balance"`
	}{
		Alias:   Alias(a),
		Balance: float64(a.Balance) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new bank account
func (a *BankAccount) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BankAccount model
func (BankAccount) TableName() string {
	return "bank_accounts"
}

// BankTransaction is a posted ledger entry against a bank account. The
// receivable reference supports later reversal.
type BankTransaction struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	AccountID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"account_id"`
	ReceivableID *uuid.UUID `gorm:"type:uuid;index" json:"receivable_id,omitempty"`

	Amount int64 `gorm:"not null" json:"-"`
	// Balance is the account balance after this entry was posted.
	Balance     int64  `gorm:"not null" json:"-"`
	Description string `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Account    BankAccount `gorm:"foreignKey:AccountID" json:"-"`
	Receivable *Receivable `gorm:"foreignKey:ReceivableID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (t BankTransaction) MarshalJSON() ([]byte, error) {
	type Alias BankTransaction
	return json.Marshal(&struct {
		Alias
		Amount  float64 `json:"amount"`
		Balance float64 `json:"balance"`
	}{
		Alias:   Alias(t),
		Amount:  float64(t.Amount) / 100,
		Balance: float64(t.Balance) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new bank transaction
func (t *BankTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BankTransaction model
func (BankTransaction) TableName() string {
	return "bank_transactions"
}
