package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/entity"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/repository"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/pkg/pagination"
)

// ReceivableService handles receivable business logic
type ReceivableService struct {
	receivableRepo repository.ReceivableRepository
}

// NewReceivableService creates a new receivable service
func NewReceivableService(receivableRepo repository.ReceivableRepository) *ReceivableService {
	return &ReceivableService{receivableRepo: receivableRepo}
}

// ListReceivables lists receivables with filtering
func (s *ReceivableService) ListReceivables(ctx context.Context, params *repository.ReceivableFilterParams) (*pagination.PaginatedResult[entity.Receivable], error) {
	receivables, total, err := s.receivableRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(receivables, pag), nil
}

// GetByOrder returns the receivables created for a single order
func (s *ReceivableService) GetByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.Receivable, error) {
	return s.receivableRepo.GetByOrderID(ctx, orderID)
}
