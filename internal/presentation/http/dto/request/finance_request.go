package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/pkg/money"
)

// TransactionRequest is a manual ledger entry
type TransactionRequest struct {
	Date          *entity.Date             `json:"date"`
	Description   string                   `json:"description"`
	Type          enum.TransactionType     `json:"type"`
	Category      enum.TransactionCategory `json:"category"`
	Amount        money.Cents              `json:"amount"`
	Status        enum.TransactionStatus   `json:"status"`
	PaymentMethod *enum.PaymentMethod      `json:"payment_method"`
	OrderID       *uuid.UUID               `json:"order_id"`
}

func (r *TransactionRequest) ToInput(userID uuid.UUID) *service.CreateTransactionInput {
	return &service.CreateTransactionInput{
		UserID:        userID,
		Date:          r.Date,
		Description:   r.Description,
		Type:          r.Type,
		Category:      r.Category,
		Amount:        r.Amount,
		Status:        r.Status,
		PaymentMethod: r.PaymentMethod,
		OrderID:       r.OrderID,
	}
}

// TransactionFilterRequest represents ledger query parameters
type TransactionFilterRequest struct {
	Search    string `form:"search"`
	Type      string `form:"type"`
	Category  string `form:"category"`
	Status    string `form:"status"`
	OrderID   string `form:"order_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// PeriodRequest is an optional inclusive date range
type PeriodRequest struct {
	From string `form:"from"`
	To   string `form:"to"`
}
