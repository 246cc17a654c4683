package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/internal/domain/repository"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/request"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/response"
)

// OrderHandler handles service order HTTP requests
type OrderHandler struct {
	orderService   *service.OrderService
	printerService *service.PrinterService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, printerService *service.PrinterService) *OrderHandler {
	return &OrderHandler{orderService: orderService, printerService: printerService}
}

// List handles listing orders
func (h *OrderHandler) List(c *gin.Context) {
	var req request.OrderFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params, err := orderFilter(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, "Orders retrieved successfully", result)
}

func orderFilter(req *request.OrderFilterRequest) (*repository.OrderFilterParams, error) {
	params := &repository.OrderFilterParams{
		Pagination: pageParams(req.Page, req.PerPage),
		Search:     req.Search,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	}
	var err error
	if params.Status, err = queryCode(req.Status, "status", enum.OrderStatus.IsValid); err != nil {
		return nil, err
	}
	if params.PaymentStatus, err = queryCode(req.PaymentStatus, "payment_status", enum.PaymentStatus.IsValid); err != nil {
		return nil, err
	}
	if params.CustomerID, err = queryUUID(req.CustomerID, "customer_id"); err != nil {
		return nil, err
	}
	if params.StartDate, err = queryDate(req.StartDate, "start_date"); err != nil {
		return nil, err
	}
	if params.EndDate, err = queryDate(req.EndDate, "end_date"); err != nil {
		return nil, err
	}
	return params, nil
}

// Create handles opening a counter order
func (h *OrderHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req request.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req.ToInput(actor.UserID))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Order created successfully", order)
}

// Get handles getting a single order
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "order")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order retrieved successfully", order)
}

// Advance moves the order one step through the lab workflow
func (h *OrderHandler) Advance(c *gin.Context) {
	id, ok := paramID(c, "id", "order")
	if !ok {
		return
	}

	result, err := h.orderService.AdvanceStatus(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	message := "Order status advanced"
	if !result.Advanced {
		message = "Order already delivered"
	}
	response.OK(c, message, gin.H{"order": result.Order, "advanced": result.Advanced})
}

// RecordPayment pays towards the order balance
func (h *OrderHandler) RecordPayment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "order")
	if !ok {
		return
	}
	var req request.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.RecordPayment(c.Request.Context(), &service.RecordPaymentInput{
		OrderID:       id,
		UserID:        actor.UserID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment recorded successfully", order)
}

// Receipt returns the composed receipt of an order
func (h *OrderHandler) Receipt(c *gin.Context) {
	id, ok := paramID(c, "id", "order")
	if !ok {
		return
	}

	receipt, err := h.printerService.Receipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt retrieved successfully", receipt)
}

// PrintReceipt prints the receipt of an order
func (h *OrderHandler) PrintReceipt(c *gin.Context) {
	id, ok := paramID(c, "id", "order")
	if !ok {
		return
	}

	receipt, outcome, err := h.printerService.PrintReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, printMessage(outcome), gin.H{"receipt": receipt, "print": outcome})
}

// Delete handles deleting an order
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "order")
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Order deleted successfully", nil)
}
