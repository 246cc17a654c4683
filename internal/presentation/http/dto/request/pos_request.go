package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/pkg/money"
)

// CartLineRequest adds a product to the cart
type CartLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// AdjustQuantityRequest moves a line quantity up or down
type AdjustQuantityRequest struct {
	Delta int `json:"delta" binding:"required,min=-999,max=999"`
}

// CartCustomerRequest attaches a customer to the cart
type CartCustomerRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
}

// DiscountRequest sets the cart discount. A seller must send the manager PIN.
type DiscountRequest struct {
	Amount money.Cents `json:"amount"`
	PIN    string      `json:"pin"`
}

// CheckoutRequest settles the cart
type CheckoutRequest struct {
	PaymentMethod enum.PaymentMethod `json:"payment_method" binding:"required"`
}
