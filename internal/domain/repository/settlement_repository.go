package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/entity"
)

// CreditReservation reserves the full order total against a payer's
// credit account. Exactly one of CustomerID/EmployeeID is set.
type CreditReservation struct {
	CustomerID *uuid.UUID
	EmployeeID *uuid.UUID
	// Amount is the full order total in cents, not just the deferred
	// portion: credit tracks total exposure.
	Amount int64
}

// LedgerPosting asks the settlement transaction to post one bank-ledger
// entry for an already-confirmed payment slice.
type LedgerPosting struct {
	AccountID uuid.UUID
	// ReceivableID links the entry back to the originating receivable
	// so a later reversal can find it.
	ReceivableID *uuid.UUID
	Amount       int64
	Description  string
}

// Settlement is the fully computed outcome of an order settlement, built
// by the service layer and persisted atomically by the repository. Boletos
// carry provider identifiers already, since the provider is called before
// the transaction starts.
type Settlement struct {
	Order           *entity.Order
	Receivables     []entity.Receivable
	Boletos         []entity.Boleto
	CardSettlements []entity.CardSettlement
	Commission      *entity.Commission
	PixCharge       *entity.PixCharge

	// StockDecrements maps trackable product ids to quantities. Raw
	// material items never appear here.
	StockDecrements map[uuid.UUID]int

	CouponID *uuid.UUID

	CreditReservation *CreditReservation
	LedgerPostings    []LedgerPosting
}

// SettlementRepository persists a settlement as one atomic transaction.
type SettlementRepository interface {
	// Create executes the settlement transaction: order and items, guarded
	// stock decrements with movement records, coupon usage, commission,
	// card settlements, boletos, receivables, ledger postings and the
	// credit reservation. Any failure rolls everything back.
	Create(ctx context.Context, s *Settlement) error
}
