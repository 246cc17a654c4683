package request

import (
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/pkg/money"
)

// ProductRequest is used for both create and update
type ProductRequest struct {
	Code          string               `json:"code" binding:"omitempty,max=100"`
	Barcode       string               `json:"barcode" binding:"omitempty,max=100"`
	Name          string               `json:"name"`
	Category      enum.ProductCategory `json:"category"`
	Brand         string               `json:"brand" binding:"omitempty,max=100"`
	CostPrice     money.Cents          `json:"cost_price"`
	SalePrice     money.Cents          `json:"sale_price"`
	MinStockLevel int                  `json:"min_stock_level"`
	// StockLevel is only read on create
	StockLevel int `json:"stock_level" binding:"min=0,max=1000000"`
}

func (r *ProductRequest) ToInput() *service.ProductInput {
	return &service.ProductInput{
		Code:          r.Code,
		Barcode:       r.Barcode,
		Name:          r.Name,
		Category:      r.Category,
		Brand:         r.Brand,
		CostPrice:     r.CostPrice,
		SalePrice:     r.SalePrice,
		MinStockLevel: r.MinStockLevel,
	}
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// AdjustStockRequest is a manual restock or inventory correction
type AdjustStockRequest struct {
	Kind     enum.MovementKind `json:"kind" binding:"required"`
	Quantity int               `json:"quantity" binding:"min=-1000000,max=1000000"`
	Note     string            `json:"note" binding:"omitempty,max=255"`
}
