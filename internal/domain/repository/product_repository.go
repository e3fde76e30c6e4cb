package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/entity"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/pkg/pagination"
)

// ProductRepository defines the interface for catalog product reads.
// Stock writes happen only inside the settlement transaction.
type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
}

// RawMaterialRepository defines the interface for raw material reads
type RawMaterialRepository interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.RawMaterial, error)
}
