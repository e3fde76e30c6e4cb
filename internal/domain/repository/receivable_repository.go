package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/entity"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/enum"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/pkg/pagination"
)

// ReceivableRepository defines the interface for receivable queries
type ReceivableRepository interface {
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Receivable, error)
	List(ctx context.Context, params *ReceivableFilterParams) ([]entity.Receivable, int64, error)
}

// ReceivableFilterParams contains filtering parameters for receivable queries
type ReceivableFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.ReceivableStatus
	CustomerID *uuid.UUID
}
