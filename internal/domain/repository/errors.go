package repository

import (
	"fmt"

	"github.com/google/uuid"
)

// InsufficientStockError reports a guarded stock decrement that found
// fewer units than the settlement needs.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.Name, e.Requested, e.Available)
}

// CreditExceededError reports a credit reservation that would drive the
// payer's available credit below zero.
type CreditExceededError struct {
	Required  int64
	Available int64
}

func (e *CreditExceededError) Error() string {
	return fmt.Sprintf("credit limit exceeded: required %d, available %d", e.Required, e.Available)
}

// CouponExhaustedError reports a coupon whose usage counter hit its
// maximum between validation and settlement.
type CouponExhaustedError struct {
	CouponID uuid.UUID
}

func (e *CouponExhaustedError) Error() string {
	return fmt.Sprintf("coupon %s is no longer usable", e.CouponID)
}
