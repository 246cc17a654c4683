package request

import (
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/domain/enum"
)

// UpdateStoreRequest changes the receipt header fields
type UpdateStoreRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Document *string `json:"document" binding:"omitempty,max=20"`
	Phone    *string `json:"phone" binding:"omitempty,max=30"`
	Address  *string `json:"address" binding:"omitempty,max=500"`
}

func (r *UpdateStoreRequest) ToInput() *service.UpdateStoreInput {
	return &service.UpdateStoreInput{Name: r.Name, Document: r.Document, Phone: r.Phone, Address: r.Address}
}

// ManagerPINRequest sets the PIN that authorizes discounts
type ManagerPINRequest struct {
	PIN string `json:"pin" binding:"required,numeric,min=4,max=8"`
}

// CreateUserRequest adds a staff member
type CreateUserRequest struct {
	Name     string        `json:"name" binding:"required,min=2,max=255"`
	Email    string        `json:"email" binding:"required,email"`
	Password string        `json:"password" binding:"required,min=8"`
	Role     enum.UserRole `json:"role"`
}

func (r *CreateUserRequest) ToInput() *service.CreateUserInput {
	return &service.CreateUserInput{Name: r.Name, Email: r.Email, Password: r.Password, Role: r.Role}
}

// UpdateUserRequest is a partial staff update
type UpdateUserRequest struct {
	Name   *string        `json:"name" binding:"omitempty,min=2,max=255"`
	Role   *enum.UserRole `json:"role"`
	Active *bool          `json:"active"`
}
