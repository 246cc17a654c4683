package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/pkg/money"
	"gorm.io/gorm"
)

// NotInformed fills frame and lens fields the seller left blank.
const NotInformed = "Não informado"

// Order is a service order ("OS"): glasses made for a customer, or a
// point-of-sale sale settled at the counter.
type Order struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID       uuid.UUID          `gorm:"type:uuid;not null;index;uniqueIndex:idx_orders_tenant_number" json:"tenant_id"`
	OrderNumber    string             `gorm:"size:50;not null;uniqueIndex:idx_orders_tenant_number" json:"order_number"`
	CustomerID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"customer_id"`
	CustomerName   string             `gorm:"size:255;not null" json:"customer_name"`
	Date           Date               `gorm:"not null;index" json:"date"`
	Status         enum.OrderStatus   `gorm:"size:30;not null;index" json:"status"`
	TotalAmount    money.Cents        `gorm:"not null" json:"total_amount"`
	PaidAmount     money.Cents        `gorm:"not null;default:0" json:"paid_amount"`
	PaymentStatus  enum.PaymentStatus `gorm:"size:20;not null;index" json:"payment_status"`
	PrescriptionID *uuid.UUID         `gorm:"type:uuid" json:"prescription_id,omitempty"`
	FrameModel     string             `gorm:"size:500" json:"frame_model"`
	FrameNotes     string             `gorm:"type:text" json:"frame_notes,omitempty"`
	LensType       string             `gorm:"size:255" json:"lens_type"`
	LensNotes      string             `gorm:"type:text" json:"lens_notes,omitempty"`
	DeliveryDate   Date               `gorm:"not null" json:"delivery_date"`
	Source         enum.OrderSource   `gorm:"size:20;not null;default:'counter'" json:"source"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`

	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = enum.OrderStatusPending
	}
	if o.Source == "" {
		o.Source = enum.OrderSourceCounter
	}
	return nil
}

// BeforeSave keeps the payment status derived from the amounts.
func (o *Order) BeforeSave(tx *gorm.DB) error {
	o.PaymentStatus = enum.DerivePaymentStatus(o.PaidAmount, o.TotalAmount)
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// ApplyAmounts sets total and paid and re-derives the payment status.
func (o *Order) ApplyAmounts(total, paid money.Cents) {
	o.TotalAmount = total
	o.PaidAmount = paid
	o.PaymentStatus = enum.DerivePaymentStatus(paid, total)
}

// Balance is what the customer still owes.
func (o *Order) Balance() money.Cents {
	if o.PaidAmount >= o.TotalAmount {
		return 0
	}
	return o.TotalAmount - o.PaidAmount
}

// Advance moves the order one step forward. It returns false and leaves the
// order untouched when it is already delivered.
func (o *Order) Advance() bool {
	next, ok := o.Status.Next()
	if !ok {
		return false
	}
	o.Status = next
	return true
}

// OrderItem is one sold product line of a point-of-sale order
type OrderItem struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductCode string      `gorm:"size:100" json:"product_code"`
	ProductName string      `gorm:"size:255;not null" json:"product_name"`
	UnitPrice   money.Cents `gorm:"not null" json:"unit_price"`
	Quantity    int         `gorm:"not null" json:"quantity"`
	LineTotal   money.Cents `gorm:"not null" json:"line_total"`
}

// BeforeCreate generates a UUID before creating a new order item
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
