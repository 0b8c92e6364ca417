package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"inventory-api/internal/metrics"
)

// setupTestRouter creates a router config backed by in-memory SQLite
func setupTestRouter(t *testing.T, basePath string, m *metrics.Metrics) Config {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err, "failed to open test database")

	db.Exec(`CREATE TABLE categories (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		is_deleted BOOLEAN NOT NULL DEFAULT 0,
		deleted_at DATETIME,
		name TEXT NOT NULL,
		description TEXT,
		slug TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT 1
	)`)
	db.Exec(`CREATE TABLE products (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		is_deleted BOOLEAN NOT NULL DEFAULT 0,
		deleted_at DATETIME,
		name TEXT NOT NULL,
		sku TEXT NOT NULL UNIQUE,
		category_id TEXT NOT NULL,
		size TEXT NOT NULL,
		color TEXT NOT NULL,
		price NUMERIC NOT NULL,
		cost NUMERIC,
		stock INTEGER NOT NULL DEFAULT 0,
		min_stock INTEGER NOT NULL DEFAULT 5,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		description TEXT,
		image_key TEXT,
		barcode TEXT
	)`)
	db.Exec(`CREATE TABLE product_images (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		is_deleted BOOLEAN NOT NULL DEFAULT 0,
		deleted_at DATETIME,
		product_id TEXT NOT NULL,
		image_key TEXT NOT NULL,
		alt_text TEXT,
		display_order INTEGER NOT NULL DEFAULT 0
	)`)

	return Config{
		DB:        db,
		Logger:    zap.NewNop(),
		JWTSecret: "test-secret",
		BasePath:  basePath,
		Metrics:   m,
	}
}

func newTestMetrics() *metrics.Metrics {
	return metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
}

func TestMetricsEndpoint_RootPath(t *testing.T) {
	router := Setup(setupTestRouter(t, "", newTestMetrics()))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	body := w.Body.String()
	assert.NotEmpty(t, body)
	assert.Contains(t, body, "# HELP")
	assert.Contains(t, body, "# TYPE")
	// Go runtime metrics come from the default registry
	assert.Contains(t, body, "go_goroutines")
}

func TestMetricsEndpoint_NoAuthentication(t *testing.T) {
	router := Setup(setupTestRouter(t, "", newTestMetrics()))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "metrics endpoint must not require authentication")
}

func TestMetricsEndpoint_WithBasePath(t *testing.T) {
	basePath := "/inventory"
	router := Setup(setupTestRouter(t, basePath, newTestMetrics()))

	t.Run("root path /metrics works", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("base path metrics works", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, basePath+"/metrics", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("api routes live under the base path", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, basePath+"/api/products/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestMetricsEndpoint_ContainsRegisteredMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	_ = metrics.NewWithRegistry(registry, zap.NewNop())

	metricFamilies, err := registry.Gather()
	require.NoError(t, err)

	metricNames := make(map[string]bool)
	for _, mf := range metricFamilies {
		metricNames[mf.GetName()] = true
	}

	// Gauges and counters register at initialization; vectors only show
	// up after the first observation
	expected := []string{
		"inventory_api_db_connections_open",
		"inventory_api_db_connections_in_use",
		"inventory_api_db_connections_idle",
		"inventory_api_db_connections_max",
		"inventory_api_db_connection_wait_total",
		"inventory_api_products_total",
		"inventory_api_categories_total",
		"inventory_api_low_stock_products",
		"inventory_api_out_of_stock_products",
		"inventory_api_inventory_value",
		"inventory_api_product_created_total",
	}
	for _, name := range expected {
		assert.True(t, metricNames[name], "registry should contain metric %s", name)
	}
}

func TestMetricsEndpoint_PrometheusFormat(t *testing.T) {
	router := Setup(setupTestRouter(t, "", newTestMetrics()))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	hasHelpLine := false
	hasTypeLine := false
	hasMetricLine := false
	for _, line := range strings.Split(w.Body.String(), "\n") {
		if strings.HasPrefix(line, "# HELP") {
			hasHelpLine = true
		}
		if strings.HasPrefix(line, "# TYPE") {
			hasTypeLine = true
		}
		if line != "" && !strings.HasPrefix(line, "#") && strings.Contains(line, " ") {
			hasMetricLine = true
		}
	}

	assert.True(t, hasHelpLine)
	assert.True(t, hasTypeLine)
	assert.True(t, hasMetricLine)
}

func TestHealthEndpoint(t *testing.T) {
	router := Setup(setupTestRouter(t, "", newTestMetrics()))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"database":"ok"`)
}

func TestRouteSurface(t *testing.T) {
	router := Setup(setupTestRouter(t, "", newTestMetrics()))

	t.Run("public reads need no token", func(t *testing.T) {
		for _, path := range []string{
			"/api/products/",
			"/api/search/products/?q=camiseta",
			"/api/inventory/stats/",
			"/api/products/alerts/low-stock/",
			"/api/products/alerts/out-of-stock/",
			"/api/categories/",
		} {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code, "GET %s", path)
		}
	})

	t.Run("writes require a token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/products/", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error": "Authorization header is required"}`, w.Body.String())
	})

	t.Run("unknown product is a 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products/NO-SUCH-SKU/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
