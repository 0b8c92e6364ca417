package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"inventory-api/internal/client"
	"inventory-api/internal/handler"
	"inventory-api/internal/metrics"
	"inventory-api/internal/middleware"
	"inventory-api/internal/repository"
	"inventory-api/internal/service"
)

// Config holds everything the router needs to wire the application
type Config struct {
	DB             *gorm.DB
	Logger         *zap.Logger
	JWTSecret      string
	BasePath       string
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	ImageStore     client.ImageStore
}

// Setup builds the gin engine with all middleware, handlers and routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	// Repositories
	categoryRepo := repository.NewCategoryRepository(cfg.DB)
	productRepo := repository.NewProductRepository(cfg.DB)

	// Services
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo, cfg.ImageStore, cfg.Metrics)
	inventoryService := service.NewInventoryService(productRepo)

	// Handlers
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)

	registerOperational(r, "", cfg.DB)
	if cfg.BasePath != "" {
		registerOperational(r, cfg.BasePath, cfg.DB)
	}

	base := r.Group(cfg.BasePath)
	api := base.Group("/api")

	// Reads are public
	products := api.Group("/products")
	{
		products.GET("/", productHandler.ListProducts)
		products.GET("/alerts/low-stock/", productHandler.LowStockProducts)
		products.GET("/alerts/out-of-stock/", productHandler.OutOfStockProducts)
		products.GET("/:sku/", productHandler.GetProduct)
		products.GET("/:sku/images/", productHandler.ListProductImages)
	}

	categories := api.Group("/categories")
	{
		categories.GET("/", categoryHandler.ListCategories)
		categories.GET("/:slug/", categoryHandler.GetCategory)
	}

	api.GET("/search/products/", productHandler.SearchProducts)
	api.GET("/inventory/stats/", inventoryHandler.GetStats)

	// Writes require a token; the policy middleware maps the HTTP method
	// to the minimum role
	authed := api.Group("", middleware.Auth(cfg.JWTSecret), middleware.Policy())
	{
		authed.POST("/products/", productHandler.CreateProduct)
		authed.PATCH("/products/bulk-update/", productHandler.BulkUpdate)
		authed.PATCH("/products/:sku/", productHandler.UpdateProduct)
		authed.DELETE("/products/:sku/", productHandler.DeleteProduct)
		authed.POST("/products/:sku/restore/", productHandler.RestoreProduct)
		authed.PATCH("/products/:sku/update-stock/", productHandler.UpdateStock)
		authed.POST("/products/:sku/images/", productHandler.AddProductImage)
		authed.DELETE("/products/:sku/images/:imageId/", productHandler.DeleteProductImage)

		authed.POST("/categories/", categoryHandler.CreateCategory)
		authed.PATCH("/categories/:slug/", categoryHandler.UpdateCategory)
		authed.DELETE("/categories/:slug/", categoryHandler.DeleteCategory)
		authed.POST("/categories/:slug/restore/", categoryHandler.RestoreCategory)
	}

	return r
}

// registerOperational mounts the health and metrics endpoints at the
// given prefix. Both are unauthenticated.
func registerOperational(r *gin.Engine, prefix string, db *gorm.DB) {
	r.GET(prefix+"/health", func(c *gin.Context) {
		status := gin.H{"status": "ok"}
		if db != nil {
			if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
				status["database"] = "unavailable"
				c.JSON(http.StatusServiceUnavailable, status)
				return
			}
			status["database"] = "ok"
		}
		c.JSON(http.StatusOK, status)
	})
	r.GET(prefix+"/metrics", gin.WrapH(promhttp.Handler()))
}
