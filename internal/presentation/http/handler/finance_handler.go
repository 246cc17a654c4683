package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/internal/domain/repository"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/request"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/response"
)

// FinanceHandler handles the ledger and debts
type FinanceHandler struct {
	financeService *service.FinanceService
	debtService    *service.DebtService
	printerService *service.PrinterService
}

// NewFinanceHandler creates a new finance handler
func NewFinanceHandler(financeService *service.FinanceService, debtService *service.DebtService, printerService *service.PrinterService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService, debtService: debtService, printerService: printerService}
}

// ListTransactions handles listing ledger entries
func (h *FinanceHandler) ListTransactions(c *gin.Context) {
	var req request.TransactionFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.TransactionFilterParams{
		Pagination: pageParams(req.Page, req.PerPage),
		Search:     req.Search,
	}
	var err error
	if params.Type, err = queryCode(req.Type, "type", enum.TransactionType.IsValid); err != nil {
		response.Error(c, err)
		return
	}
	if params.Category, err = queryCode(req.Category, "category", enum.TransactionCategory.IsValid); err != nil {
		response.Error(c, err)
		return
	}
	if params.Status, err = queryCode(req.Status, "status", enum.TransactionStatus.IsValid); err != nil {
		response.Error(c, err)
		return
	}
	if params.OrderID, err = queryUUID(req.OrderID, "order_id"); err != nil {
		response.Error(c, err)
		return
	}
	if params.StartDate, err = queryDate(req.StartDate, "start_date"); err != nil {
		response.Error(c, err)
		return
	}
	if params.EndDate, err = queryDate(req.EndDate, "end_date"); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.financeService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, "Transactions retrieved successfully", result)
}

// CreateTransaction appends a manual ledger entry
func (h *FinanceHandler) CreateTransaction(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req request.TransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	txn, err := h.financeService.CreateTransaction(c.Request.Context(), req.ToInput(actor.UserID))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Transaction created successfully", txn)
}

// Summary returns the cash position over an optional period
func (h *FinanceHandler) Summary(c *gin.Context) {
	var req request.PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	from, err := queryDate(req.From, "from")
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := queryDate(req.To, "to")
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.financeService.Summarize(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Summary retrieved successfully", summary)
}

// Debts returns the receivables report with interest as of today
func (h *FinanceHandler) Debts(c *gin.Context) {
	report, err := h.debtService.Report(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Debt report retrieved successfully", report)
}

// Slip returns the installment slip of an unpaid order
func (h *FinanceHandler) Slip(c *gin.Context) {
	id, ok := paramID(c, "order_id", "order")
	if !ok {
		return
	}

	slip, err := h.debtService.Slip(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment slip generated", slip)
}

// EmailSlip sends the slip to the customer
func (h *FinanceHandler) EmailSlip(c *gin.Context) {
	id, ok := paramID(c, "order_id", "order")
	if !ok {
		return
	}

	slip, err := h.debtService.EmailSlip(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment slip sent", slip)
}

// PrintSlip prints the slip on the thermal printer
func (h *FinanceHandler) PrintSlip(c *gin.Context) {
	id, ok := paramID(c, "order_id", "order")
	if !ok {
		return
	}

	slip, outcome, err := h.printerService.PrintSlip(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, printMessage(outcome), gin.H{"slip": slip, "print": outcome})
}
