package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/request"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/response"
)

// TenantHandler handles the store profile
type TenantHandler struct {
	tenantService *service.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *service.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// Get returns the current store
func (h *TenantHandler) Get(c *gin.Context) {
	tenant, err := h.tenantService.Current(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Store retrieved successfully", tenant)
}

// Update changes the store profile printed on receipts
func (h *TenantHandler) Update(c *gin.Context) {
	var req request.UpdateStoreRequest
	if !bindJSON(c, &req) {
		return
	}

	tenant, err := h.tenantService.UpdateStore(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Store updated successfully", tenant)
}

// SetManagerPIN replaces the discount authorization PIN
func (h *TenantHandler) SetManagerPIN(c *gin.Context) {
	var req request.ManagerPINRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.tenantService.SetManagerPIN(c.Request.Context(), req.PIN); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Manager PIN updated successfully", nil)
}
