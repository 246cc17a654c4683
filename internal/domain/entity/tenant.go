package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant represents one optical store in the multitenant system
type Tenant struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	Slug           string         `gorm:"size:255;unique;not null" json:"slug"`
	Document       string         `gorm:"size:32" json:"document,omitempty"` // CNPJ
	Phone          string         `gorm:"size:50" json:"phone,omitempty"`
	Address        string         `gorm:"type:text" json:"address,omitempty"`
	ManagerPINHash string         `gorm:"size:255" json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Users []User `gorm:"foreignKey:TenantID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tenant
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Tenant model
func (Tenant) TableName() string {
	return "tenants"
}

// HasManagerPIN reports whether a discount authorization PIN was configured.
func (t *Tenant) HasManagerPIN() bool {
	return t.ManagerPINHash != ""
}

// ReceiptHeader builds the store header printed on receipts and slips.
func (t *Tenant) ReceiptHeader() ReceiptHeader {
	return ReceiptHeader{
		StoreName: t.Name,
		Address:   t.Address,
		Phone:     t.Phone,
		Document:  t.Document,
	}
}
