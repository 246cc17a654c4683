package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/pkg/money"
	"gorm.io/gorm"
)

// Product represents a frame, lens, accessory or service in the inventory.
// StockLevel and SoldCount are changed only by the atomic stock operations.
type Product struct {
	ID            uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_products_tenant_code" json:"tenant_id"`
	Code          string               `gorm:"size:100;not null;uniqueIndex:idx_products_tenant_code" json:"code"`
	Barcode       string               `gorm:"size:64;index" json:"barcode,omitempty"`
	Name          string               `gorm:"size:255;not null" json:"name"`
	Category      enum.ProductCategory `gorm:"size:20;not null" json:"category"`
	Brand         string               `gorm:"size:255" json:"brand,omitempty"`
	CostPrice     money.Cents          `gorm:"not null;default:0" json:"cost_price"`
	SalePrice     money.Cents          `gorm:"not null;default:0" json:"sale_price"`
	StockLevel    int                  `gorm:"not null;default:0" json:"stock_level"`
	MinStockLevel int                  `gorm:"not null;default:0" json:"min_stock_level"`
	SoldCount     int                  `gorm:"not null;default:0" json:"sold_count"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	DeletedAt     gorm.DeletedAt       `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

func (p *Product) IsLowStock() bool {
	return p.Category.Tracked() && p.StockLevel <= p.MinStockLevel
}
