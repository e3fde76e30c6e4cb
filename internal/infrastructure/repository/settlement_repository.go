package repository

import (
	"context"
	"errors"

	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/entity"
	domainRepo "github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settlementRepository struct {
	db *gorm.DB
}

// NewSettlementRepository creates a new settlement repository
func NewSettlementRepository(db *gorm.DB) domainRepo.SettlementRepository {
	return &settlementRepository{db: db}
}

// Create persists the whole settlement in one transaction. Stock, credit
// and coupon writes are guarded so concurrent settlements cannot
// oversell, overdraw or overuse.
func (r *settlementRepository) Create(ctx context.Context, s *domainRepo.Settlement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(s.Order).Error; err != nil {
			return err
		}

		if err := r.decrementStock(tx, s); err != nil {
			return err
		}

		if s.CreditReservation != nil {
			if err := r.reserveCredit(tx, s.CreditReservation); err != nil {
				return err
			}
		}

		if s.CouponID != nil {
			if err := r.consumeCoupon(tx, s); err != nil {
				return err
			}
		}

		if len(s.Receivables) > 0 {
			if err := tx.Create(&s.Receivables).Error; err != nil {
				return err
			}
		}

		if len(s.Boletos) > 0 {
			if err := tx.Create(&s.Boletos).Error; err != nil {
				return err
			}
		}

		if len(s.CardSettlements) > 0 {
			if err := tx.Create(&s.CardSettlements).Error; err != nil {
				return err
			}
		}

		if s.Commission != nil {
			if err := tx.Create(s.Commission).Error; err != nil {
				return err
			}
		}

		if s.PixCharge != nil {
			if err := r.upsertPixCharge(tx, s.PixCharge); err != nil {
				return err
			}
		}

		for i := range s.LedgerPostings {
			if err := r.postLedgerEntry(tx, &s.LedgerPostings[i]); err != nil {
				return err
			}
		}

		return nil
	})
}

// decrementStock locks each product row, applies a guarded decrement and
// writes the movement record with the balances around the update.
func (r *settlementRepository) decrementStock(tx *gorm.DB, s *domainRepo.Settlement) error {
	for productID, quantity := range s.StockDecrements {
		var product entity.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", productID).Error
		if err != nil {
			return err
		}

		if product.Quantity < quantity {
			return &domainRepo.InsufficientStockError{
				ProductID: productID,
				Name:      product.Name,
				Requested: quantity,
				Available: product.Quantity,
			}
		}

		result := tx.Model(&entity.Product{}).
			Where("id = ? AND quantity >= ?", productID, quantity).
			Update("quantity", gorm.Expr("quantity - ?", quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &domainRepo.InsufficientStockError{
				ProductID: productID,
				Name:      product.Name,
				Requested: quantity,
				Available: product.Quantity,
			}
		}

		movement := entity.StockMovement{
			ProductID:     productID,
			OrderID:       s.Order.ID,
			Quantity:      quantity,
			PreviousStock: product.Quantity,
			NewStock:      product.Quantity - quantity,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return err
		}
	}
	return nil
}

// reserveCredit applies a guarded increment of credit_used; the guard
// rejects when the reservation would push usage past the limit.
func (r *settlementRepository) reserveCredit(tx *gorm.DB, res *domainRepo.CreditReservation) error {
	var result *gorm.DB
	switch {
	case res.CustomerID != nil:
		result = tx.Model(&entity.Customer{}).
			Where("id = ? AND credit_used + ? <= credit_limit", *res.CustomerID, res.Amount).
			Update("credit_used", gorm.Expr("credit_used + ?", res.Amount))
	case res.EmployeeID != nil:
		result = tx.Model(&entity.Employee{}).
			Where("id = ? AND credit_used + ? <= credit_limit", *res.EmployeeID, res.Amount).
			Update("credit_used", gorm.Expr("credit_used + ?", res.Amount))
	default:
		return nil
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		available, err := r.availableCredit(tx, res)
		if err != nil {
			return err
		}
		return &domainRepo.CreditExceededError{Required: res.Amount, Available: available}
	}
	return nil
}

func (r *settlementRepository) availableCredit(tx *gorm.DB, res *domainRepo.CreditReservation) (int64, error) {
	if res.CustomerID != nil {
		var customer entity.Customer
		if err := tx.First(&customer, "id = ?", *res.CustomerID).Error; err != nil {
			return 0, err
		}
		return customer.AvailableCredit(), nil
	}
	var employee entity.Employee
	if err := tx.First(&employee, "id = ?", *res.EmployeeID).Error; err != nil {
		return 0, err
	}
	return employee.AvailableCredit(), nil
}

// consumeCoupon increments used_count under the max_uses guard and
// records the usage. An unlimited coupon has max_uses = 0.
func (r *settlementRepository) consumeCoupon(tx *gorm.DB, s *domainRepo.Settlement) error {
	result := tx.Model(&entity.Coupon{}).
		Where("id = ? AND (max_uses = 0 OR used_count < max_uses)", *s.CouponID).
		Update("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &domainRepo.CouponExhaustedError{CouponID: *s.CouponID}
	}

	usage := entity.CouponUsage{CouponID: *s.CouponID, OrderID: s.Order.ID}
	return tx.Create(&usage).Error
}

func (r *settlementRepository) upsertPixCharge(tx *gorm.DB, charge *entity.PixCharge) error {
	var existing entity.PixCharge
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&existing, "charge_id = ?", charge.ChargeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(charge).Error
	}
	if err != nil {
		return err
	}

	return tx.Model(&entity.PixCharge{}).
		Where("id = ?", existing.ID).
		Updates(map[string]interface{}{
			"order_id":     charge.OrderID,
			"amount":       charge.Amount,
			"fee_amount":   charge.FeeAmount,
			"net_amount":   charge.NetAmount,
			"status":       charge.Status,
			"confirmed_at": charge.ConfirmedAt,
		}).Error
}

// postLedgerEntry locks the account row, moves the balance and writes the
// transaction with the balance after the posting.
func (r *settlementRepository) postLedgerEntry(tx *gorm.DB, posting *domainRepo.LedgerPosting) error {
	var account entity.BankAccount
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&account, "id = ?", posting.AccountID).Error
	if err != nil {
		return err
	}

	newBalance := account.Balance + posting.Amount
	if err := tx.Model(&entity.BankAccount{}).
		Where("id = ?", posting.AccountID).
		Update("balance", newBalance).Error; err != nil {
		return err
	}

	transaction := entity.BankTransaction{
		AccountID:    posting.AccountID,
		ReceivableID: posting.ReceivableID,
		Amount:       posting.Amount,
		Balance:      newBalance,
		Description:  posting.Description,
	}
	return tx.Create(&transaction).Error
}
