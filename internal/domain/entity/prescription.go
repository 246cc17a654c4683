package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Prescription is an eye exam result. Once written it is never edited; a new
// exam produces a new prescription.
type Prescription struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TenantID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	Date       Date            `gorm:"not null" json:"date"`
	DoctorName string          `gorm:"size:255" json:"doctor_name"`
	OD         EyePrescription `gorm:"column:od;not null" json:"od"`
	OE         EyePrescription `gorm:"column:oe;not null" json:"oe"`
	Notes      string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new prescription
func (p *Prescription) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Prescription model
func (Prescription) TableName() string {
	return "prescriptions"
}

// IsExpired reports whether the exam is more than one year older than today.
func (p *Prescription) IsExpired(today Date) bool {
	return Date{p.Date.AddDate(1, 0, 0)}.Before(today)
}

// EyePrescription holds the refraction values of one eye in optometric
// notation, e.g. "-2.25" or "+0.75".
type EyePrescription struct {
	Spherical         string `json:"spherical"`
	Cylinder          string `json:"cylinder"`
	Axis              string `json:"axis"`
	Addition          string `json:"addition,omitempty"`
	PupillaryDistance string `json:"pupillary_distance,omitempty"`
	FittingHeight     string `json:"fitting_height,omitempty"`
}

func (e EyePrescription) Value() (driver.Value, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (e *EyePrescription) Scan(value interface{}) error {
	return scanJSON(value, e)
}

func (EyePrescription) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return jsonColumnType(db)
}
