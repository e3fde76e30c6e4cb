package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/entity"
	domainRepo "github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/repository"
	"gorm.io/gorm"
)

type receivableRepository struct {
	db *gorm.DB
}

// NewReceivableRepository creates a new receivable repository
func NewReceivableRepository(db *gorm.DB) domainRepo.ReceivableRepository {
	return &receivableRepository{db: db}
}

func (r *receivableRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Receivable, error) {
	var receivables []entity.Receivable
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&receivables).Error
	return receivables, err
}

func (r *receivableRepository) List(ctx context.Context, params *domainRepo.ReceivableFilterParams) ([]entity.Receivable, int64, error) {
	var receivables []entity.Receivable
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Receivable{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&receivables).Error

	return receivables, total, err
}
