package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	domainRepo "github.com/sangkips/optica-api/internal/domain/repository"
	"gorm.io/gorm"
)

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *gorm.DB) domainRepo.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(ctx context.Context, cart *entity.Cart) error {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return err
	}
	cart.TenantID = tenantID
	return conn(ctx, r.db).Create(cart).Error
}

func (r *cartRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	var cart entity.Cart
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).First(&cart, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cart, err
}

func (r *cartRepository) Update(ctx context.Context, cart *entity.Cart) error {
	return conn(ctx, r.db).Scopes(TenantScope(ctx)).
		Model(&entity.Cart{}).
		Where("id = ?", cart.ID).
		Select("customer_id", "customer_name", "lines", "discount", "discount_authorized_by").
		Updates(cart).Error
}

func (r *cartRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := conn(ctx, r.db).Scopes(TenantScope(ctx)).Delete(&entity.Cart{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *cartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Cart, error) {
	var carts []entity.Cart
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&carts).Error
	return carts, err
}
