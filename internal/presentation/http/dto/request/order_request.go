package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/pkg/money"
)

// CreateOrderRequest opens a counter service order
type CreateOrderRequest struct {
	CustomerID     uuid.UUID           `json:"customer_id"`
	Date           *entity.Date        `json:"date"`
	TotalAmount    money.Cents         `json:"total_amount"`
	PaidAmount     money.Cents         `json:"paid_amount"`
	PaymentMethod  *enum.PaymentMethod `json:"payment_method"`
	PrescriptionID *uuid.UUID          `json:"prescription_id"`
	FrameModel     string              `json:"frame_model" binding:"omitempty,max=255"`
	FrameNotes     string              `json:"frame_notes"`
	LensType       string              `json:"lens_type" binding:"omitempty,max=255"`
	LensNotes      string              `json:"lens_notes"`
	DeliveryDate   *entity.Date        `json:"delivery_date"`
}

func (r *CreateOrderRequest) ToInput(userID uuid.UUID) *service.CreateOrderInput {
	return &service.CreateOrderInput{
		UserID:         userID,
		CustomerID:     r.CustomerID,
		Date:           r.Date,
		TotalAmount:    r.TotalAmount,
		PaidAmount:     r.PaidAmount,
		PaymentMethod:  r.PaymentMethod,
		PrescriptionID: r.PrescriptionID,
		FrameModel:     r.FrameModel,
		FrameNotes:     r.FrameNotes,
		LensType:       r.LensType,
		LensNotes:      r.LensNotes,
		DeliveryDate:   r.DeliveryDate,
	}
}

// OrderFilterRequest represents order list query parameters
type OrderFilterRequest struct {
	Search        string `form:"search"`
	Status        string `form:"status"`
	PaymentStatus string `form:"payment_status"`
	CustomerID    string `form:"customer_id"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	SortBy        string `form:"sort_by"`
	SortOrder     string `form:"sort_order"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}

// PaymentRequest pays towards an order balance
type PaymentRequest struct {
	Amount        money.Cents         `json:"amount"`
	PaymentMethod *enum.PaymentMethod `json:"payment_method"`
}
