package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// Update writes catalog fields only; stock_level and sold_count are left alone.
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	All(ctx context.Context) ([]entity.Product, error)
	// Search matches name, code or barcode.
	Search(ctx context.Context, query string, limit int) ([]entity.Product, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	TopSelling(ctx context.Context, limit int) ([]entity.Product, error)
	// AtomicDecrementBatch atomically decrements stock for multiple products.
	// Returns the IDs that lacked stock; if any product fails nothing is decremented.
	AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) (failedIDs []uuid.UUID, err error)
	// AtomicIncrementBatch atomically increments stock for multiple products.
	AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error
	IncrementSoldCount(ctx context.Context, sold map[uuid.UUID]int) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   *enum.ProductCategory
	LowStock   bool
	SortBy     string
	SortOrder  string
}

// StockMovementRepository is append-only.
type StockMovementRepository interface {
	CreateBatch(ctx context.Context, movements []entity.StockMovement) error
	ListByProduct(ctx context.Context, productID uuid.UUID, params *pagination.PaginationParams) ([]entity.StockMovement, int64, error)
}
