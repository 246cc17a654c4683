package request

import (
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/pkg/money"
)

// CustomerRequest is used for both create and update
type CustomerRequest struct {
	Name         string            `json:"name"`
	Phone        string            `json:"phone" binding:"omitempty,max=30"`
	Email        *string           `json:"email"`
	CPF          string            `json:"cpf" binding:"omitempty,max=14"`
	RG           string            `json:"rg" binding:"omitempty,max=20"`
	BirthDate    *entity.Date      `json:"birth_date"`
	Gender       enum.Gender       `json:"gender"`
	Profession   string            `json:"profession" binding:"omitempty,max=100"`
	Address      *entity.Address   `json:"address"`
	Notes        string            `json:"notes"`
	CreditLimit  money.Cents       `json:"credit_limit"`
	CreditStatus enum.CreditStatus `json:"credit_status"`
}

func (r *CustomerRequest) ToInput() *service.CustomerInput {
	return &service.CustomerInput{
		Name:         r.Name,
		Phone:        r.Phone,
		Email:        r.Email,
		CPF:          r.CPF,
		RG:           r.RG,
		BirthDate:    r.BirthDate,
		Gender:       r.Gender,
		Profession:   r.Profession,
		Address:      r.Address,
		Notes:        r.Notes,
		CreditLimit:  r.CreditLimit,
		CreditStatus: r.CreditStatus,
	}
}

// CustomerFilterRequest represents customer list query parameters
type CustomerFilterRequest struct {
	Search       string `form:"search"`
	CreditStatus string `form:"credit_status"`
	Page         int    `form:"page"`
	PerPage      int    `form:"per_page"`
}

// PrescriptionRequest records an eye exam
type PrescriptionRequest struct {
	Date       entity.Date            `json:"date"`
	DoctorName string                 `json:"doctor_name" binding:"omitempty,max=255"`
	OD         entity.EyePrescription `json:"od"`
	OE         entity.EyePrescription `json:"oe"`
	Notes      string                 `json:"notes"`
}

func (r *PrescriptionRequest) ToInput() *service.PrescriptionInput {
	return &service.PrescriptionInput{
		Date:       r.Date,
		DoctorName: r.DoctorName,
		OD:         r.OD,
		OE:         r.OE,
		Notes:      r.Notes,
	}
}

// AdviceRequest asks for a lens recommendation
type AdviceRequest struct {
	Lifestyle string `json:"lifestyle" binding:"omitempty,max=500"`
}
