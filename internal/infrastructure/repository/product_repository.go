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

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return err
	}
	product.TenantID = tenantID
	product.SoldCount = 0
	return conn(ctx, r.db).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// GetByIDs retrieves multiple products by their IDs in a single query
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}

func (r *productRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var product entity.Product
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).First(&product, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return conn(ctx, r.db).Scopes(TenantScope(ctx)).
		Model(&entity.Product{}).
		Where("id = ?", product.ID).
		Select("code", "barcode", "name", "category", "brand", "cost_price", "sale_price", "min_stock_level").
		Updates(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Scopes(TenantScope(ctx)).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := conn(ctx, r.db).Scopes(TenantScope(ctx)).Model(&entity.Product{})

	if params.Search != "" {
		pattern := likePattern(params.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ? OR barcode LIKE ? OR LOWER(brand) LIKE ?",
			pattern, pattern, pattern, pattern)
	}

	if params.Category != nil {
		query = query.Where("category = ?", *params.Category)
	}

	if params.LowStock {
		query = query.Where("stock_level <= min_stock_level AND category <> ?", "service")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(orderClause(params.SortBy, params.SortOrder, "created_at",
			"name", "code", "sale_price", "stock_level", "sold_count", "created_at")).
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) All(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepository) Search(ctx context.Context, q string, limit int) ([]entity.Product, error) {
	var products []entity.Product
	pattern := likePattern(q)
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).
		Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ? OR barcode LIKE ?", pattern, pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepository) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).
		Where("stock_level <= min_stock_level AND category <> ?", "service").
		Order("stock_level ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) TopSelling(ctx context.Context, limit int) ([]entity.Product, error) {
	var products []entity.Product
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).
		Where("sold_count > 0").
		Order("sold_count DESC, name ASC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

// AtomicDecrementBatch atomically decrements stock for multiple products in a single transaction.
// Uses: UPDATE products SET stock_level = stock_level - n WHERE id = ? AND stock_level >= n
// If any product has insufficient stock, the entire transaction is rolled back.
func (r *productRepository) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	if len(decrements) == 0 {
		return nil, nil
	}

	var failedIDs []uuid.UUID

	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		for _, id := range sortedIDs(decrements) {
			amount := decrements[id]
			result := tx.Model(&entity.Product{}).
				Scopes(TenantScope(ctx)).
				Where("id = ? AND stock_level >= ?", id, amount).
				Update("stock_level", gorm.Expr("stock_level - ?", amount))

			if result.Error != nil {
				return result.Error
			}

			if result.RowsAffected == 0 {
				failedIDs = append(failedIDs, id)
			}
		}

		// If any products failed, rollback entire transaction
		if len(failedIDs) > 0 {
			return gorm.ErrInvalidTransaction
		}

		return nil
	})

	// If we rolled back due to insufficient stock, return the failed IDs without the transaction error
	if errors.Is(err, gorm.ErrInvalidTransaction) && len(failedIDs) > 0 {
		return failedIDs, nil
	}

	return failedIDs, err
}

// AtomicIncrementBatch atomically increments stock for multiple products (restocks and reversals).
func (r *productRepository) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	if len(increments) == 0 {
		return nil
	}

	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		for _, id := range sortedIDs(increments) {
			result := tx.Model(&entity.Product{}).
				Scopes(TenantScope(ctx)).
				Where("id = ?", id).
				Update("stock_level", gorm.Expr("stock_level + ?", increments[id]))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

func (r *productRepository) IncrementSoldCount(ctx context.Context, sold map[uuid.UUID]int) error {
	if len(sold) == 0 {
		return nil
	}

	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		for _, id := range sortedIDs(sold) {
			if err := tx.Model(&entity.Product{}).
				Scopes(TenantScope(ctx)).
				Where("id = ?", id).
				Update("sold_count", gorm.Expr("sold_count + ?", sold[id])).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

type stockMovementRepository struct {
	db *gorm.DB
}

// NewStockMovementRepository creates a new stock movement repository
func NewStockMovementRepository(db *gorm.DB) domainRepo.StockMovementRepository {
	return &stockMovementRepository{db: db}
}

func (r *stockMovementRepository) CreateBatch(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return err
	}
	for i := range movements {
		movements[i].TenantID = tenantID
	}
	return conn(ctx, r.db).Create(&movements).Error
}

func (r *stockMovementRepository) ListByProduct(ctx context.Context, productID uuid.UUID, params *pagination.PaginationParams) ([]entity.StockMovement, int64, error) {
	var movements []entity.StockMovement
	var total int64

	query := conn(ctx, r.db).Scopes(TenantScope(ctx)).
		Model(&entity.StockMovement{}).
		Where("product_id = ?", productID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&movements).Error

	return movements, total, err
}
