package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/internal/domain/repository"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/request"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/response"
	"github.com/sangkips/optica-api/pkg/pagination"
)

// ProductHandler handles the catalog and stock
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	var req request.ProductFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	category, err := queryCode(req.Category, "category", enum.ProductCategory.IsValid)
	if err != nil {
		response.Error(c, err)
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: pageParams(req.Page, req.PerPage),
		Search:     req.Search,
		Category:   category,
		LowStock:   req.LowStock,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	}
	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, "Products retrieved successfully", result)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req request.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), actor.UserID, req.ToInput(), req.StockLevel)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Product created successfully", product)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}
	var req request.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product deleted successfully", nil)
}

// LowStock lists tracked products at or below their minimum
func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.productService.GetLowStockProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Low stock products retrieved successfully", products)
}

// AdjustStock records a restock or inventory correction
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}
	var req request.AdjustStockRequest
	if !bindJSON(c, &req) {
		return
	}

	movement, err := h.productService.AdjustStock(c.Request.Context(), &service.AdjustStockInput{
		ProductID: id,
		UserID:    actor.UserID,
		Kind:      req.Kind,
		Delta:     req.Quantity,
		Note:      req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Stock adjusted successfully", movement)
}

// Movements lists a product's stock history
func (h *ProductHandler) Movements(c *gin.Context) {
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}
	var page pagination.PaginationParams
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.productService.ListMovements(c.Request.Context(), id, pageParams(page.Page, page.PerPage))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, "Stock movements retrieved successfully", result)
}
