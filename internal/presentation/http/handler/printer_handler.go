package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/request"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus())
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	outcome := h.printerService.TestPrint(c.Request.Context())
	if !outcome.Printed {
		response.OK(c, "Test print not completed (printer may be disabled)", gin.H{"print": outcome})
		return
	}
	response.OK(c, "Test page sent to printer", gin.H{"print": outcome})
}

// Print prints the receipt or the installment slip of an order. The
// document is returned even when the printer fails.
func (h *PrinterHandler) Print(c *gin.Context) {
	var req request.PrintRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	switch req.Type {
	case "slip":
		slip, outcome, err := h.printerService.PrintSlip(ctx, req.OrderID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, printMessage(outcome), gin.H{"slip": slip, "print": outcome})
	default:
		receipt, outcome, err := h.printerService.PrintReceipt(ctx, req.OrderID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, printMessage(outcome), gin.H{"receipt": receipt, "print": outcome})
	}
}

func printMessage(outcome *service.PrintOutcome) string {
	if outcome.Printed {
		return "Document printed successfully"
	}
	return "Document generated but not printed"
}
