package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/request"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/response"
	"github.com/sangkips/optica-api/pkg/pagination"
)

// SupplierHandler handles suppliers
type SupplierHandler struct {
	supplierService *service.SupplierService
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(supplierService *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// List handles listing suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	var page pagination.PaginationParams
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.supplierService.ListSuppliers(c.Request.Context(), pageParams(page.Page, page.PerPage), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, "Suppliers retrieved successfully", result)
}

// Create handles creating a supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	var req request.SupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Supplier created successfully", supplier)
}

// Get handles getting a single supplier
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "supplier")
	if !ok {
		return
	}

	supplier, err := h.supplierService.GetSupplier(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Supplier retrieved successfully", supplier)
}

// Update handles updating a supplier
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "supplier")
	if !ok {
		return
	}
	var req request.SupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Request.Context(), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Supplier updated successfully", supplier)
}

// PressDelete is one press of the delete button. The third press within
// the confirm window deletes.
func (h *SupplierHandler) PressDelete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "supplier")
	if !ok {
		return
	}

	outcome, err := h.supplierService.PressDelete(c.Request.Context(), actor.UserID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	message := "Press again to confirm"
	if outcome.Deleted {
		message = "Supplier deleted successfully"
	}
	response.OK(c, message, outcome)
}

// DeleteStage reports where the delete confirmation stands
func (h *SupplierHandler) DeleteStage(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "supplier")
	if !ok {
		return
	}
	response.OK(c, "Delete stage retrieved", gin.H{"stage": h.supplierService.DeleteStage(actor.UserID, id)})
}

// CancelDelete resets the confirmation
func (h *SupplierHandler) CancelDelete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "supplier")
	if !ok {
		return
	}
	h.supplierService.CancelDelete(actor.UserID, id)
	response.NoContent(c)
}
