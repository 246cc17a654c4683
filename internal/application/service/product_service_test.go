package service_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/pkg/money"
	"github.com/sangkips/optica-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.products.CreateProduct(f.ctx, f.owner.ID, &service.ProductInput{
		Category:  "sunglasses",
		SalePrice: -1,
	}, -2)
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))
	assert.ElementsMatch(t, []string{"name", "category", "sale_price", "stock_level"}, fieldsOf(err))

	frame, err := f.products.CreateProduct(f.ctx, f.owner.ID, &service.ProductInput{
		Name:      "Armação Aviador",
		Category:  enum.ProductCategoryFrame,
		SalePrice: money.FromUnits(300),
	}, 4)
	require.NoError(t, err)
	assert.NotEmpty(t, frame.Code, "code is generated when blank")
	assert.Equal(t, 4, frame.StockLevel)
	assert.Zero(t, frame.SoldCount)
	assert.EqualValues(t, 1, f.count(t, &entity.StockMovement{}), "initial stock is a restock movement")

	_, err = f.products.CreateProduct(f.ctx, f.owner.ID, &service.ProductInput{
		Code:     frame.Code,
		Name:     "Outra",
		Category: enum.ProductCategoryFrame,
	}, 0)
	assert.Equal(t, http.StatusConflict, appCode(t, err))
	assert.EqualValues(t, 1, f.count(t, &entity.StockMovement{}))
}

func TestUpdateProductKeepsStock(t *testing.T) {
	f := newFixture(t)
	frame := f.product(t, "Armação", enum.ProductCategoryFrame, 300, 5)

	updated, err := f.products.UpdateProduct(f.ctx, frame.ID, &service.ProductInput{
		Code:          frame.Code,
		Name:          "Armação Redonda",
		Category:      enum.ProductCategoryFrame,
		SalePrice:     money.FromUnits(350),
		MinStockLevel: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "Armação Redonda", updated.Name)
	assert.Equal(t, money.FromUnits(350), updated.SalePrice)
	assert.Equal(t, 5, updated.StockLevel)

	_, err = f.products.UpdateProduct(f.ctx, uuid.New(), &service.ProductInput{
		Code: "X", Name: "Nada", Category: enum.ProductCategoryLens,
	})
	assert.Equal(t, http.StatusNotFound, appCode(t, err))
}

func TestAdjustStock(t *testing.T) {
	f := newFixture(t)
	lens := f.product(t, "Lente", enum.ProductCategoryLens, 120, 3)
	exam := f.product(t, "Exame", enum.ProductCategoryService, 80, 0)

	_, err := f.products.AdjustStock(f.ctx, &service.AdjustStockInput{ProductID: lens.ID, Kind: enum.MovementKindRestock, Delta: -1})
	assert.ElementsMatch(t, []string{"quantity"}, fieldsOf(err))
	_, err = f.products.AdjustStock(f.ctx, &service.AdjustStockInput{ProductID: lens.ID, Kind: enum.MovementKindSale, Delta: 1})
	assert.ElementsMatch(t, []string{"kind"}, fieldsOf(err))
	_, err = f.products.AdjustStock(f.ctx, &service.AdjustStockInput{ProductID: exam.ID, Kind: enum.MovementKindRestock, Delta: 1})
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))

	restock, err := f.products.AdjustStock(f.ctx, &service.AdjustStockInput{
		ProductID: lens.ID, UserID: f.owner.ID, Kind: enum.MovementKindRestock, Delta: 7, Note: "NF 123",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, restock.LevelBefore)
	assert.Equal(t, 10, restock.LevelAfter)

	_, err = f.products.AdjustStock(f.ctx, &service.AdjustStockInput{
		ProductID: lens.ID, UserID: f.owner.ID, Kind: enum.MovementKindAdjustment, Delta: -11,
	})
	assert.Equal(t, http.StatusConflict, appCode(t, err))
	assert.Equal(t, 10, f.reload(t, lens.ID).StockLevel, "a failed adjustment changes nothing")

	loss, err := f.products.AdjustStock(f.ctx, &service.AdjustStockInput{
		ProductID: lens.ID, UserID: f.owner.ID, Kind: enum.MovementKindAdjustment, Delta: -4,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, loss.LevelAfter)

	history, err := f.products.ListMovements(f.ctx, lens.ID, pagination.DefaultPagination())
	require.NoError(t, err)
	assert.EqualValues(t, 3, history.Pagination.Total)
	quantities := make([]int, 0, len(history.Items))
	for _, m := range history.Items {
		quantities = append(quantities, m.Quantity)
	}
	assert.ElementsMatch(t, []int{3, 7, -4}, quantities)
}

func TestLowStock(t *testing.T) {
	f := newFixture(t)
	low := f.product(t, "Armação", enum.ProductCategoryFrame, 300, 1)
	f.product(t, "Lente", enum.ProductCategoryLens, 120, 10)
	f.product(t, "Ajuste", enum.ProductCategoryService, 30, 0)

	_, err := f.products.UpdateProduct(f.ctx, low.ID, &service.ProductInput{
		Code: low.Code, Name: low.Name, Category: low.Category, SalePrice: low.SalePrice, MinStockLevel: 2,
	})
	require.NoError(t, err)

	products, err := f.products.GetLowStockProducts(f.ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, low.ID, products[0].ID)
	assert.True(t, products[0].IsLowStock())
}
