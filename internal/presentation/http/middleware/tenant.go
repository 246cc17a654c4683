package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/repository"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/response"
)

// TenantMiddleware rejects tokens whose store no longer exists and makes
// the store available to handlers as "tenant".
func TenantMiddleware(tenantRepo repository.TenantRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := GetTenantID(c)
		if tenantID == uuid.Nil {
			response.BadRequest(c, "Tenant context required")
			c.Abort()
			return
		}

		tenant, err := tenantRepo.GetByID(c.Request.Context(), tenantID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if tenant == nil {
			response.Unauthorized(c, "Store not found")
			c.Abort()
			return
		}

		c.Set("tenant", tenant)
		c.Next()
	}
}

// GetTenantID retrieves the tenant ID from gin context
func GetTenantID(c *gin.Context) uuid.UUID {
	tenantID, exists := c.Get(ContextTenantID)
	if !exists {
		return uuid.Nil
	}
	id, ok := tenantID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
