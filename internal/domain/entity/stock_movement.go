package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"gorm.io/gorm"
)

// StockMovement records one change of a product's stock level, written in the
// same transaction as the change itself.
type StockMovement struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	TenantID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProductID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"product_id"`
	OrderID     *uuid.UUID        `gorm:"type:uuid;index" json:"order_id,omitempty"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null" json:"user_id"`
	Kind        enum.MovementKind `gorm:"size:20;not null" json:"kind"`
	Quantity    int               `gorm:"not null" json:"quantity"` // signed delta
	LevelBefore int               `gorm:"not null" json:"level_before"`
	LevelAfter  int               `gorm:"not null" json:"level_after"`
	Note        string            `gorm:"size:500" json:"note,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new movement
func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockMovement model
func (StockMovement) TableName() string {
	return "stock_movements"
}
