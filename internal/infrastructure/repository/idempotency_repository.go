package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/entity"
	domainRepo "github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/repository"
	"gorm.io/gorm"
)

// replayTTL bounds how long a stored settlement response can be replayed.
const replayTTL = 24 * time.Hour

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

// GetByKey returns the stored response for a key, or nil when the key is
// unknown or its replay window has passed.
func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	var ikey entity.IdempotencyKey
	err := r.db.WithContext(ctx).
		Where("key = ? AND user_id = ? AND expires_at > ?", key, userID, time.Now()).
		First(&ikey).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ikey, err
}

// SaveResponse stores a response for later replay. Only successful
// responses are kept: a failed settlement may be legitimately retried
// with the same key.
func (r *idempotencyRepository) SaveResponse(ctx context.Context, ikey *entity.IdempotencyKey) error {
	if ikey.ResponseCode < 200 || ikey.ResponseCode >= 300 {
		return nil
	}
	ikey.ExpiresAt = time.Now().Add(replayTTL)
	return r.db.WithContext(ctx).Create(ikey).Error
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&entity.IdempotencyKey{}).Error
}
