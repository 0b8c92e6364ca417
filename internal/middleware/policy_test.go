package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"inventory-api/internal/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": uuid.New().String(),
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func setupPolicyRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	authed := router.Group("/", Auth(testSecret), Policy())
	authed.POST("/products", func(c *gin.Context) { c.Status(http.StatusCreated) })
	authed.PATCH("/products", func(c *gin.Context) { c.Status(http.StatusOK) })
	authed.DELETE("/products", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return router
}

func doRequest(router *gin.Engine, method, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/products", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPolicy_MethodRoleTable(t *testing.T) {
	router := setupPolicyRouter()

	tests := []struct {
		name   string
		method string
		role   string
		want   int
	}{
		{"admin can delete", http.MethodDelete, "admin", http.StatusNoContent},
		{"staff cannot delete", http.MethodDelete, "staff", http.StatusForbidden},
		{"viewer cannot delete", http.MethodDelete, "viewer", http.StatusForbidden},
		{"admin can create", http.MethodPost, "admin", http.StatusCreated},
		{"staff can create", http.MethodPost, "staff", http.StatusCreated},
		{"viewer cannot create", http.MethodPost, "viewer", http.StatusForbidden},
		{"staff can patch", http.MethodPatch, "staff", http.StatusOK},
		{"viewer cannot patch", http.MethodPatch, "viewer", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.method, signToken(t, tt.role))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAuth_RejectsMissingAndBadTokens(t *testing.T) {
	router := setupPolicyRouter()

	t.Run("missing token", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error": "Authorization header is required"}`, w.Body.String())
	})

	t.Run("malformed token", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		claims := jwt.MapClaims{
			"user_id": uuid.New().String(),
			"role":    "admin",
			"exp":     time.Now().Add(time.Hour).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}
		w := doRequest(router, http.MethodPost, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := jwt.MapClaims{
			"user_id": uuid.New().String(),
			"role":    "admin",
			"exp":     time.Now().Add(-time.Hour).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}
		w := doRequest(router, http.MethodPost, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuth_UnknownRoleFallsBackToViewer(t *testing.T) {
	router := setupPolicyRouter()

	w := doRequest(router, http.MethodPost, signToken(t, "superuser"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRole_AtLeast(t *testing.T) {
	assert.True(t, domain.RoleAdmin.AtLeast(domain.RoleStaff))
	assert.True(t, domain.RoleStaff.AtLeast(domain.RoleStaff))
	assert.False(t, domain.RoleViewer.AtLeast(domain.RoleStaff))
	assert.False(t, domain.RoleStaff.AtLeast(domain.RoleAdmin))
}
