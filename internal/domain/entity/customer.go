package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/pkg/money"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Customer represents a store customer
type Customer struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	TenantID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name         string            `gorm:"size:255;not null" json:"name"`
	Phone        string            `gorm:"size:50" json:"phone"`
	Email        *string           `gorm:"size:255" json:"email,omitempty"`
	CPF          string            `gorm:"size:14;column:cpf" json:"cpf,omitempty"`
	RG           string            `gorm:"size:20;column:rg" json:"rg,omitempty"`
	BirthDate    *Date             `json:"birth_date,omitempty"`
	Gender       enum.Gender       `gorm:"size:1" json:"gender,omitempty"`
	Profession   string            `gorm:"size:255" json:"profession,omitempty"`
	Address      *Address          `json:"address,omitempty"`
	Notes        string            `gorm:"type:text" json:"notes,omitempty"`
	CreditLimit  money.Cents       `gorm:"not null;default:0" json:"credit_limit"`
	CreditStatus enum.CreditStatus `gorm:"size:20;not null;default:'pending'" json:"credit_status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	DeletedAt    gorm.DeletedAt    `gorm:"index" json:"-"`

	Prescriptions []Prescription `gorm:"foreignKey:CustomerID" json:"prescriptions,omitempty"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreditStatus == "" {
		c.CreditStatus = enum.CreditStatusPending
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// HasBirthdayOn reports whether the customer was born on the day and month of d.
func (c *Customer) HasBirthdayOn(d Date) bool {
	if c.BirthDate == nil || c.BirthDate.IsZero() {
		return false
	}
	return c.BirthDate.Month() == d.Month() && c.BirthDate.Day() == d.Day()
}

// Address is a Brazilian postal address stored as a JSON column.
type Address struct {
	ZipCode      string `json:"zip_code"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

func (a Address) Value() (driver.Value, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *Address) Scan(value interface{}) error {
	return scanJSON(value, a)
}

func (Address) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return jsonColumnType(db)
}
