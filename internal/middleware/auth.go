package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"inventory-api/internal/domain"
	"inventory-api/internal/response"
)

// Context keys set by the auth middleware.
const (
	ContextUserIDKey = "user_id"
	ContextRoleKey   = "role"
)

// Auth returns a middleware that validates JWT bearer tokens. The
// token carries the user ID and a role claim; both are stored on the
// request context for the policy check downstream.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.SendError(c, http.StatusUnauthorized, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.SendError(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			response.SendError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.SendError(c, http.StatusUnauthorized, "Invalid token claims")
			c.Abort()
			return
		}

		userIDStr, _ := claims["user_id"].(string)
		if userIDStr == "" {
			userIDStr, _ = claims["sub"].(string)
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			response.SendError(c, http.StatusUnauthorized, "User ID not found in token")
			c.Abort()
			return
		}

		role := domain.RoleViewer
		if roleStr, ok := claims["role"].(string); ok {
			parsed := domain.Role(roleStr)
			if parsed.IsValid() {
				role = parsed
			}
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextRoleKey, role)

		c.Next()
	}
}
