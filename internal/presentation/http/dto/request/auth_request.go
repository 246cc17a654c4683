package request

import "github.com/sangkips/optica-api/internal/application/service"

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (r *LoginRequest) ToInput() *service.LoginInput {
	return &service.LoginInput{Email: r.Email, Password: r.Password}
}

// RegisterRequest opens a store with its owner account
type RegisterRequest struct {
	StoreName       string `json:"store_name" binding:"required,max=255"`
	Document        string `json:"document" binding:"omitempty,max=20"`
	Phone           string `json:"phone" binding:"omitempty,max=30"`
	Name            string `json:"name" binding:"required,min=2,max=255"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password"`
}

func (r *RegisterRequest) ToInput() *service.RegisterInput {
	return &service.RegisterInput{
		StoreName: r.StoreName,
		Document:  r.Document,
		Phone:     r.Phone,
		Name:      r.Name,
		Email:     r.Email,
		Password:  r.Password,
	}
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
