package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/entity"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// GetPrices returns the personalized prices a customer has for the
	// given products, keyed by product id.
	GetPrices(ctx context.Context, customerID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

// EmployeeRepository defines the interface for employee data operations
type EmployeeRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
}

// CouponRepository defines the interface for coupon data operations
type CouponRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Coupon, error)
	GetByCode(ctx context.Context, code string) (*entity.Coupon, error)
}

// BankAccountRepository defines the interface for bank account reads.
// Ledger postings happen only inside the settlement transaction.
type BankAccountRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.BankAccount, error)
}
