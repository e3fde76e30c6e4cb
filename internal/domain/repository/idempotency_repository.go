package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/entity"
)

// IdempotencyRepository stores settlement responses for replay. The
// replay policy (what gets stored, for how long) lives here, not in the
// transport layer.
type IdempotencyRepository interface {
	// GetByKey returns the stored response for a key, or nil when the
	// key is unknown or its replay window has passed.
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	// SaveResponse stores a response for later replay; responses outside
	// the storable range are silently skipped.
	SaveResponse(ctx context.Context, ikey *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
