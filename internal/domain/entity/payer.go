package entity

import "github.com/google/uuid"

// Payer abstracts over who pays for an order: a registered customer, an
// employee buying on the internal account, or a casual buyer identified
// only by name. Credit and commission rules differ per variant, so
// settlement always goes through this interface instead of branching on
// which request fields happen to be set.
type Payer interface {
	PayerName() string
	PayerDocument() string
	// CreditAvailable returns the open credit in cents and whether the
	// payer carries a credit account at all.
	CreditAvailable() (int64, bool)
	// CommissionSeller returns the linked seller, if orders by this payer
	// earn a commission.
	CommissionSeller() *Seller
	// CustomerRef returns the customer id when the payer is a customer.
	CustomerRef() *uuid.UUID
}

// PayerName implements Payer
func (c *Customer) PayerName() string { return c.Name }

// PayerDocument implements Payer
func (c *Customer) PayerDocument() string {
	if c.Document == nil {
		return ""
	}
	return *c.Document
}

// CreditAvailable implements Payer
func (c *Customer) CreditAvailable() (int64, bool) { return c.AvailableCredit(), true }

// CommissionSeller implements Payer
func (c *Customer) CommissionSeller() *Seller { return c.Seller }

// CustomerRef implements Payer
func (c *Customer) CustomerRef() *uuid.UUID {
	id := c.ID
	return &id
}

// PayerName implements Payer
func (e *Employee) PayerName() string { return e.Name }

// PayerDocument implements Payer
func (e *Employee) PayerDocument() string {
	if e.Document == nil {
		return ""
	}
	return *e.Document
}

// CreditAvailable implements Payer
func (e *Employee) CreditAvailable() (int64, bool) { return e.AvailableCredit(), true }

// CommissionSeller implements Payer. Employee self-orders never earn one.
func (e *Employee) CommissionSeller() *Seller { return nil }

// CustomerRef implements Payer
func (e *Employee) CustomerRef() *uuid.UUID { return nil }

// CasualBuyer is a payer with no persistent account, identified only by a
// supplied name at settlement time.
type CasualBuyer struct {
	Name     string
	Document string
}

// PayerName implements Payer
func (b *CasualBuyer) PayerName() string { return b.Name }

// PayerDocument implements Payer
func (b *CasualBuyer) PayerDocument() string { return b.Document }

// CreditAvailable implements Payer. Casual buyers carry no credit account.
func (b *CasualBuyer) CreditAvailable() (int64, bool) { return 0, false }

// CommissionSeller implements Payer
func (b *CasualBuyer) CommissionSeller() *Seller { return nil }

// CustomerRef implements Payer
func (b *CasualBuyer) CustomerRef() *uuid.UUID { return nil }
