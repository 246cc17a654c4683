package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/request"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles customers, their prescriptions and lens advice
type CustomerHandler struct {
	customerService *service.CustomerService
	advisorService  *service.AdvisorService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService, advisorService *service.AdvisorService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, advisorService: advisorService}
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	var req request.CustomerFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	status, err := queryCode(req.CreditStatus, "credit_status", enum.CreditStatus.IsValid)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), pageParams(req.Page, req.PerPage), req.Search, status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customers retrieved successfully", result)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Customer created successfully", customer)
}

// Get handles getting a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "customer")
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "customer")
	if !ok {
		return
	}
	var req request.CustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer updated successfully", customer)
}

// Birthdays lists today's birthdays, or a whole month with ?month=1..12
func (h *CustomerHandler) Birthdays(c *gin.Context) {
	month, err := queryMonth(c.Query("month"), "month")
	if err != nil {
		response.Error(c, err)
		return
	}
	customers, err := h.customerService.Birthdays(c.Request.Context(), month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Birthdays retrieved successfully", customers)
}

// LookupAddress resolves a postal code
func (h *CustomerHandler) LookupAddress(c *gin.Context) {
	addr, err := h.customerService.LookupAddress(c.Request.Context(), c.Param("cep"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Address retrieved successfully", addr)
}

// ListPrescriptions returns a customer's exams, newest first
func (h *CustomerHandler) ListPrescriptions(c *gin.Context) {
	id, ok := paramID(c, "id", "customer")
	if !ok {
		return
	}

	prescriptions, err := h.customerService.ListPrescriptions(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Prescriptions retrieved successfully", prescriptions)
}

// AddPrescription records an exam
func (h *CustomerHandler) AddPrescription(c *gin.Context) {
	id, ok := paramID(c, "id", "customer")
	if !ok {
		return
	}
	var req request.PrescriptionRequest
	if !bindJSON(c, &req) {
		return
	}

	prescription, err := h.customerService.AddPrescription(c.Request.Context(), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Prescription created successfully", prescription)
}

// GetPrescription returns one exam
func (h *CustomerHandler) GetPrescription(c *gin.Context) {
	customerID, ok := paramID(c, "id", "customer")
	if !ok {
		return
	}
	prescriptionID, ok := paramID(c, "pid", "prescription")
	if !ok {
		return
	}

	prescription, err := h.customerService.GetPrescription(c.Request.Context(), customerID, prescriptionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Prescription retrieved successfully", prescription)
}

// Advise asks for a lens recommendation. The response is 200 even when
// the advisor is unavailable; Degraded tells the client.
func (h *CustomerHandler) Advise(c *gin.Context) {
	customerID, ok := paramID(c, "id", "customer")
	if !ok {
		return
	}
	prescriptionID, ok := paramID(c, "pid", "prescription")
	if !ok {
		return
	}
	var req request.AdviceRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	advice, err := h.advisorService.Recommend(c.Request.Context(), customerID, prescriptionID, req.Lifestyle)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Recommendation generated", advice)
}
