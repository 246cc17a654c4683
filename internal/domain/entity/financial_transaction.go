package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/pkg/money"
	"gorm.io/gorm"
)

// FinancialTransaction is an append-only ledger entry.
type FinancialTransaction struct {
	ID            uuid.UUID                `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID                `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Date          Date                     `gorm:"not null;index" json:"date"`
	Description   string                   `gorm:"size:500;not null" json:"description"`
	Type          enum.TransactionType     `gorm:"size:10;not null" json:"type"`
	Category      enum.TransactionCategory `gorm:"size:20;not null" json:"category"`
	Amount        money.Cents              `gorm:"not null" json:"amount"`
	Status        enum.TransactionStatus   `gorm:"size:10;not null" json:"status"`
	PaymentMethod *enum.PaymentMethod      `gorm:"size:20" json:"payment_method,omitempty"`
	OrderID       *uuid.UUID               `gorm:"type:uuid;index" json:"order_id,omitempty"`
	UserID        *uuid.UUID               `gorm:"type:uuid" json:"user_id,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`

	Order *Order `gorm:"foreignKey:OrderID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *FinancialTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FinancialTransaction model
func (FinancialTransaction) TableName() string {
	return "financial_transactions"
}

// Signed returns the amount as a balance delta.
func (t *FinancialTransaction) Signed() money.Cents {
	if t.Type == enum.TransactionTypeOut {
		return -t.Amount
	}
	return t.Amount
}
