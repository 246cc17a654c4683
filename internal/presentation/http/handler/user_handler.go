package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/request"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/response"
)

// UserHandler handles staff management
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns the store's staff
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Users retrieved successfully", users)
}

// Create adds a staff member
func (h *UserHandler) Create(c *gin.Context) {
	var req request.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "User created successfully", user)
}

// Update changes a staff member
func (h *UserHandler) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "user")
	if !ok {
		return
	}
	var req request.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), actor.UserID, &service.UpdateUserInput{
		ID:     id,
		Name:   req.Name,
		Role:   req.Role,
		Active: req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "User updated successfully", user)
}
