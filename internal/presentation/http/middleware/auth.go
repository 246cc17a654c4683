package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/optica-api/internal/domain/enum"
	infraRepo "github.com/sangkips/optica-api/internal/infrastructure/repository"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/response"
	"github.com/sangkips/optica-api/pkg/utils"
)

// Context keys set by AuthMiddleware
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserRole  = "user_role"
	ContextTenantID  = "tenant_id"
)

// AuthMiddleware validates the bearer token and binds the request to the
// token's store: the tenant goes into the request context for the
// repositories, the user into the gin context for the handlers.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		role := enum.UserRole(claims.Role)
		if !role.IsValid() {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, role)
		c.Set(ContextTenantID, claims.TenantID)
		c.Request = c.Request.WithContext(infraRepo.WithTenant(c.Request.Context(), claims.TenantID))

		c.Next()
	}
}

// RequireRole lets the request through only for the given roles
func RequireRole(roles ...enum.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(ContextUserRole)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "Insufficient role privileges")
		c.Abort()
	}
}
