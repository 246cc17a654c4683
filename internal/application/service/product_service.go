package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/internal/domain/repository"
	"github.com/sangkips/optica-api/pkg/apperror"
	"github.com/sangkips/optica-api/pkg/money"
	"github.com/sangkips/optica-api/pkg/pagination"
	"github.com/sangkips/optica-api/pkg/utils"
	"github.com/sangkips/optica-api/pkg/validation"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	transactor   repository.Transactor
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	transactor repository.Transactor,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		transactor:   transactor,
	}
}

// ProductInput represents the create and update product input
type ProductInput struct {
	Code          string
	Barcode       string
	Name          string
	Category      enum.ProductCategory
	Brand         string
	CostPrice     money.Cents
	SalePrice     money.Cents
	MinStockLevel int
}

func (in *ProductInput) validate(v validation.Violations) {
	validation.Required("name", in.Name, v)
	validation.MaxLength("name", in.Name, 255, v)
	validation.MaxLength("code", in.Code, 100, v)
	if !in.Category.IsValid() {
		v.Add("category", "must be frame, lens, accessory or service")
	}
	validation.NonNegativeAmount("cost_price", in.CostPrice, v)
	validation.NonNegativeAmount("sale_price", in.SalePrice, v)
	if in.MinStockLevel < 0 {
		v.Add("min_stock_level", "must not be negative")
	}
}

func (in *ProductInput) apply(p *entity.Product) {
	p.Code = strings.TrimSpace(in.Code)
	p.Barcode = strings.TrimSpace(in.Barcode)
	p.Name = strings.TrimSpace(in.Name)
	p.Category = in.Category
	p.Brand = in.Brand
	p.CostPrice = in.CostPrice
	p.SalePrice = in.SalePrice
	p.MinStockLevel = in.MinStockLevel
}

// CreateProduct creates a new product. An initial stock level is recorded as
// a restock movement in the same transaction.
func (s *ProductService) CreateProduct(ctx context.Context, userID uuid.UUID, input *ProductInput, initialStock int) (*entity.Product, error) {
	if _, err := tenantOf(ctx); err != nil {
		return nil, err
	}

	v := validation.Violations{}
	input.validate(v)
	if initialStock < 0 {
		v.Add("stock_level", "must not be negative")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if input.Code == "" {
		input.Code = utils.GenerateProductCode()
	}
	if err := s.ensureCodeFree(ctx, input.Code, uuid.Nil); err != nil {
		return nil, err
	}

	product := &entity.Product{}
	input.apply(product)
	product.StockLevel = initialStock

	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Create(txCtx, product); err != nil {
			return err
		}
		if initialStock == 0 {
			return nil
		}
		return s.movementRepo.CreateBatch(txCtx, []entity.StockMovement{{
			ProductID:   product.ID,
			UserID:      userID,
			Kind:        enum.MovementKindRestock,
			Quantity:    initialStock,
			LevelBefore: 0,
			LevelAfter:  initialStock,
			Note:        "Estoque inicial",
		}})
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) ensureCodeFree(ctx context.Context, code string, self uuid.UUID) error {
	existing, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return apperror.NewConflictError("Product code already exists")
	}
	return nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProduct changes catalog fields. Stock level and sold count are not
// editable here.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	v := validation.Violations{}
	input.validate(v)
	validation.Required("code", input.Code, v)
	if err := v.Err(); err != nil {
		return nil, err
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCodeFree(ctx, strings.TrimSpace(input.Code), product.ID); err != nil {
		return nil, err
	}

	input.apply(product)
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

// DeleteProduct soft deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(products, params.Pagination, total), nil
}

// GetLowStockProducts returns tracked products at or below their minimum
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// AdjustStockInput represents a manual stock change
type AdjustStockInput struct {
	ProductID uuid.UUID
	UserID    uuid.UUID
	Kind      enum.MovementKind
	Delta     int
	Note      string
}

// AdjustStock applies a restock or an inventory adjustment through the
// atomic stock operations and records the movement in the same transaction.
func (s *ProductService) AdjustStock(ctx context.Context, input *AdjustStockInput) (*entity.StockMovement, error) {
	v := validation.Violations{}
	switch input.Kind {
	case enum.MovementKindRestock:
		if input.Delta <= 0 {
			v.Add("quantity", "must be greater than zero for a restock")
		}
	case enum.MovementKindAdjustment:
		if input.Delta == 0 {
			v.Add("quantity", "must not be zero")
		}
	default:
		v.Add("kind", "must be restock or adjustment")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	var movement *entity.StockMovement
	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		product, err := s.GetProduct(txCtx, input.ProductID)
		if err != nil {
			return err
		}
		if !product.Category.Tracked() {
			return apperror.NewFieldError("product_id", "services have no stock")
		}

		if input.Delta > 0 {
			err = s.productRepo.AtomicIncrementBatch(txCtx, map[uuid.UUID]int{product.ID: input.Delta})
		} else {
			var failed []uuid.UUID
			failed, err = s.productRepo.AtomicDecrementBatch(txCtx, map[uuid.UUID]int{product.ID: -input.Delta})
			if err == nil && len(failed) > 0 {
				return apperror.NewConflictError(fmt.Sprintf("Insufficient stock for: %s", product.Name))
			}
		}
		if err != nil {
			return err
		}

		after, err := s.GetProduct(txCtx, product.ID)
		if err != nil {
			return err
		}
		movement = &entity.StockMovement{
			ProductID:   product.ID,
			UserID:      input.UserID,
			Kind:        input.Kind,
			Quantity:    input.Delta,
			LevelBefore: after.StockLevel - input.Delta,
			LevelAfter:  after.StockLevel,
			Note:        input.Note,
		}
		movements := []entity.StockMovement{*movement}
		if err := s.movementRepo.CreateBatch(txCtx, movements); err != nil {
			return err
		}
		*movement = movements[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// ListMovements returns the stock history of a product, newest first
func (s *ProductService) ListMovements(ctx context.Context, productID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.StockMovement], error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	movements, total, err := s.movementRepo.ListByProduct(ctx, productID, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(movements, params, total), nil
}
