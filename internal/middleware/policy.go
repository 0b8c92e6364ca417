package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory-api/internal/domain"
	"inventory-api/internal/response"
)

// writePolicy maps HTTP methods to the minimum role allowed to use
// them. Reads are not listed here because read routes never pass
// through this middleware. The table is data, not code, so the whole
// access model is visible in one place.
var writePolicy = map[string]domain.Role{
	http.MethodPost:   domain.RoleStaff,
	http.MethodPut:    domain.RoleStaff,
	http.MethodPatch:  domain.RoleStaff,
	http.MethodDelete: domain.RoleAdmin,
}

// Policy returns a middleware that enforces the method/role table. It
// must run after Auth, which stores the caller's role on the context.
func Policy() gin.HandlerFunc {
	return func(c *gin.Context) {
		required, ok := writePolicy[c.Request.Method]
		if !ok {
			c.Next()
			return
		}

		value, exists := c.Get(ContextRoleKey)
		role, valid := value.(domain.Role)
		if !exists || !valid {
			response.SendError(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		if !role.AtLeast(required) {
			response.SendError(c, http.StatusForbidden, "Insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
