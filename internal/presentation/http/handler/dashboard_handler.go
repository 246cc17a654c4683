package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles the store overview and the full data load
type DashboardHandler struct {
	dashboardService *service.DashboardService
	snapshotService  *service.SnapshotService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService, snapshotService *service.SnapshotService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, snapshotService: snapshotService}
}

// GetStats handles getting dashboard statistics
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Dashboard stats retrieved successfully", stats)
}

// Snapshot loads every collection of the store at once. Failed collections
// come back empty with a warning unless strict=true.
func (h *DashboardHandler) Snapshot(c *gin.Context) {
	strict, _ := strconv.ParseBool(c.DefaultQuery("strict", "false"))

	snap, err := h.snapshotService.LoadAll(c.Request.Context(), strict)
	if err != nil {
		response.Error(c, err)
		return
	}
	message := "Store data loaded"
	if snap.Partial() {
		message = "Store data partially loaded"
	}
	response.OK(c, message, snap)
}
