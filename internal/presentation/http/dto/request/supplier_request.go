package request

import "github.com/sangkips/optica-api/internal/application/service"

// SupplierRequest is used for both create and update
type SupplierRequest struct {
	Name        string  `json:"name"`
	CNPJ        string  `json:"cnpj" binding:"omitempty,max=18"`
	ContactName string  `json:"contact_name" binding:"omitempty,max=255"`
	Phone       string  `json:"phone" binding:"omitempty,max=30"`
	Email       *string `json:"email"`
}

func (r *SupplierRequest) ToInput() *service.SupplierInput {
	return &service.SupplierInput{
		Name:        r.Name,
		CNPJ:        r.CNPJ,
		ContactName: r.ContactName,
		Phone:       r.Phone,
		Email:       r.Email,
	}
}
