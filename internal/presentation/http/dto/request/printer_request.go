package request

import "github.com/google/uuid"

// PrintRequest is the request body for printing an order document.
type PrintRequest struct {
	Type    string    `json:"type" binding:"required,oneof=receipt slip"`
	OrderID uuid.UUID `json:"order_id" binding:"required"`
}
