package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
)

// IdempotencyRepository stores the responses of replay-protected requests,
// keyed by (key, user). Not tenant scoped: users belong to one store.
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	// Create overwrites an existing record with the same key and user
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) (int64, error)
}
