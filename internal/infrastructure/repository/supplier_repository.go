package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	domainRepo "github.com/sangkips/optica-api/internal/domain/repository"
	"github.com/sangkips/optica-api/pkg/pagination"
	"gorm.io/gorm"
)

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *gorm.DB) domainRepo.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return err
	}
	supplier.TenantID = tenantID
	return conn(ctx, r.db).Create(supplier).Error
}

func (r *supplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).First(&supplier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &supplier, err
}

func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	return conn(ctx, r.db).Scopes(TenantScope(ctx)).
		Model(&entity.Supplier{}).
		Where("id = ?", supplier.ID).
		Select("name", "cnpj", "contact_name", "phone", "email").
		Updates(supplier).Error
}

func (r *supplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Scopes(TenantScope(ctx)).Delete(&entity.Supplier{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *supplierRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Supplier, int64, error) {
	var suppliers []entity.Supplier
	var total int64

	query := conn(ctx, r.db).Scopes(TenantScope(ctx)).Model(&entity.Supplier{})

	if search != "" {
		pattern := likePattern(search)
		query = query.Where("LOWER(name) LIKE ? OR cnpj LIKE ? OR LOWER(contact_name) LIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&suppliers).Error

	return suppliers, total, err
}

func (r *supplierRepository) All(ctx context.Context) ([]entity.Supplier, error) {
	var suppliers []entity.Supplier
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}
