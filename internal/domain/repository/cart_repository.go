package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
)

// CartRepository stores open point-of-sale carts
type CartRepository interface {
	Create(ctx context.Context, cart *entity.Cart) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error)
	Update(ctx context.Context, cart *entity.Cart) error
	// Delete reports whether a cart was removed. Checkout uses it to claim
	// the cart so a second concurrent checkout finds nothing to remove.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Cart, error)
}
