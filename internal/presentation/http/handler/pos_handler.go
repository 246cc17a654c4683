package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/request"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/response"
	"github.com/sangkips/optica-api/pkg/money"
)

// POSHandler handles the point-of-sale carts
type POSHandler struct {
	posService     *service.POSService
	printerService *service.PrinterService
}

// NewPOSHandler creates a new point-of-sale handler
func NewPOSHandler(posService *service.POSService, printerService *service.PrinterService) *POSHandler {
	return &POSHandler{posService: posService, printerService: printerService}
}

// cartView adds the derived totals to a cart.
type cartView struct {
	*entity.Cart
	Subtotal money.Cents `json:"subtotal"`
	Total    money.Cents `json:"total"`
}

func viewCart(cart *entity.Cart) cartView {
	return cartView{Cart: cart, Subtotal: cart.Subtotal(), Total: cart.Total()}
}

type cartOp func(actor service.Actor, cartID uuid.UUID) (*entity.Cart, error)

func (h *POSHandler) withCart(c *gin.Context, message string, op cartOp) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	cartID, ok := paramID(c, "id", "cart")
	if !ok {
		return
	}

	cart, err := op(actor, cartID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, message, viewCart(cart))
}

func (h *POSHandler) withCartBody(c *gin.Context, req interface{}, message string, op cartOp) {
	if !bindJSON(c, req) {
		return
	}
	h.withCart(c, message, op)
}

// OpenCart starts a new sale
func (h *POSHandler) OpenCart(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	cart, err := h.posService.OpenCart(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Cart opened", viewCart(cart))
}

// ListCarts lists the user's open sales
func (h *POSHandler) ListCarts(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	carts, err := h.posService.ListCarts(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	views := make([]cartView, 0, len(carts))
	for i := range carts {
		views = append(views, viewCart(&carts[i]))
	}
	response.OK(c, "Carts retrieved successfully", views)
}

// GetCart returns one cart
func (h *POSHandler) GetCart(c *gin.Context) {
	h.withCart(c, "Cart retrieved successfully", func(actor service.Actor, cartID uuid.UUID) (*entity.Cart, error) {
		return h.posService.GetCart(c.Request.Context(), actor, cartID)
	})
}

// DiscardCart abandons a sale
func (h *POSHandler) DiscardCart(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	cartID, ok := paramID(c, "id", "cart")
	if !ok {
		return
	}

	if err := h.posService.DiscardCart(c.Request.Context(), actor, cartID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddLine adds one unit of a product
func (h *POSHandler) AddLine(c *gin.Context) {
	var req request.CartLineRequest
	h.withCartBody(c, &req, "Product added", func(actor service.Actor, cartID uuid.UUID) (*entity.Cart, error) {
		return h.posService.AddLine(c.Request.Context(), actor, cartID, req.ProductID)
	})
}

// RemoveLine removes a product from the cart
func (h *POSHandler) RemoveLine(c *gin.Context) {
	productID, ok := paramID(c, "productId", "product")
	if !ok {
		return
	}
	h.withCart(c, "Product removed", func(actor service.Actor, cartID uuid.UUID) (*entity.Cart, error) {
		return h.posService.RemoveLine(c.Request.Context(), actor, cartID, productID)
	})
}

// AdjustQuantity changes a line quantity, never below one
func (h *POSHandler) AdjustQuantity(c *gin.Context) {
	productID, ok := paramID(c, "productId", "product")
	if !ok {
		return
	}
	var req request.AdjustQuantityRequest
	h.withCartBody(c, &req, "Quantity updated", func(actor service.Actor, cartID uuid.UUID) (*entity.Cart, error) {
		return h.posService.AdjustQuantity(c.Request.Context(), actor, cartID, productID, req.Delta)
	})
}

// AttachCustomer sets the buyer
func (h *POSHandler) AttachCustomer(c *gin.Context) {
	var req request.CartCustomerRequest
	h.withCartBody(c, &req, "Customer attached", func(actor service.Actor, cartID uuid.UUID) (*entity.Cart, error) {
		return h.posService.AttachCustomer(c.Request.Context(), actor, cartID, req.CustomerID)
	})
}

// DetachCustomer clears the buyer
func (h *POSHandler) DetachCustomer(c *gin.Context) {
	h.withCart(c, "Customer removed", func(actor service.Actor, cartID uuid.UUID) (*entity.Cart, error) {
		return h.posService.DetachCustomer(c.Request.Context(), actor, cartID)
	})
}

// ApplyDiscount sets the cart discount
func (h *POSHandler) ApplyDiscount(c *gin.Context) {
	var req request.DiscountRequest
	h.withCartBody(c, &req, "Discount applied", func(actor service.Actor, cartID uuid.UUID) (*entity.Cart, error) {
		return h.posService.ApplyDiscount(c.Request.Context(), actor, cartID, req.Amount, req.PIN)
	})
}

// Checkout settles the sale and prints the receipt. A printer failure is
// reported in the response and never undoes the sale.
func (h *POSHandler) Checkout(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	cartID, ok := paramID(c, "id", "cart")
	if !ok {
		return
	}
	var req request.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.posService.Checkout(c.Request.Context(), actor, cartID, req.PaymentMethod)
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := gin.H{
		"order":       result.Order,
		"transaction": result.Transaction,
		"subtotal":    result.Subtotal,
		"discount":    result.Discount,
	}
	if h.printerService != nil {
		_, outcome, err := h.printerService.PrintReceipt(c.Request.Context(), result.Order.ID)
		if err != nil {
			outcome = &service.PrintOutcome{Error: err.Error()}
		}
		payload["print"] = outcome
	}
	response.Created(c, "Sale completed", payload)
}

// SearchProducts is the POS quick search by name, code or barcode
func (h *POSHandler) SearchProducts(c *gin.Context) {
	products, err := h.posService.SearchProducts(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Products retrieved successfully", products)
}
