package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/request"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func authPayload(out *service.LoginOutput) gin.H {
	payload := gin.H{
		"user": gin.H{
			"id":    out.User.ID,
			"name":  out.User.Name,
			"email": out.User.Email,
			"role":  out.User.Role,
		},
	}
	if out.Tenant != nil {
		payload["store"] = gin.H{
			"id":   out.Tenant.ID,
			"name": out.Tenant.Name,
			"slug": out.Tenant.Slug,
		}
	}
	if out.AccessToken != "" {
		payload["access_token"] = out.AccessToken
		payload["refresh_token"] = out.RefreshToken
		payload["token_type"] = "Bearer"
	}
	return payload
}

// Login handles user login
// @Summary Login
// @Description Authenticate user and return tokens bound to the user's store
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.authService.Login(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", authPayload(output))
}

// Register handles opening a new store
// @Summary Register
// @Description Create a store and its owner account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RegisterRequest true "Store and owner"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.authService.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Store registered successfully", authPayload(output))
}

// RefreshToken handles token refresh
// @Summary Refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Token refreshed successfully", authPayload(output))
}

// Me returns the signed-in user and store
func (h *AuthHandler) Me(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	output, err := h.authService.GetCurrentUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User retrieved successfully", authPayload(output))
}

// GoogleAuth redirects the browser to the Google consent page
// @Summary Sign in with Google
// @Tags auth
// @Success 307
// @Failure 404 {object} response.APIResponse
// @Router /auth/google [get]
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	url, err := h.authService.ExternalSignInURL()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback completes the Google sign-in and issues tokens
// @Summary Google sign-in callback
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "Signed state"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if reason := c.Query("error"); reason != "" {
		response.Unauthorized(c, "Google sign-in was cancelled: "+reason)
		return
	}

	output, err := h.authService.ExternalLogin(c.Request.Context(), c.Query("code"), c.Query("state"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", authPayload(output))
}
