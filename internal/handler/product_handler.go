package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"inventory-api/internal/dto"
	"inventory-api/internal/response"
	"inventory-api/internal/service"
)

// ProductHandler serves the product endpoints
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts handles GET /api/products/
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter := dto.ParseProductFilter(c.Request.URL.Query())

	products, err := h.productService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, products)
}

// GetProduct handles GET /api/products/:sku/
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("sku"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, product)
}

// CreateProduct handles POST /api/products/
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendFieldErrors(c, http.StatusBadRequest, dto.BindingFieldErrors(err))
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, product)
}

// UpdateProduct handles PATCH /api/products/:sku/
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendFieldErrors(c, http.StatusBadRequest, dto.BindingFieldErrors(err))
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("sku"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/:sku/
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("sku")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RestoreProduct handles POST /api/products/:sku/restore/
func (h *ProductHandler) RestoreProduct(c *gin.Context) {
	product, err := h.productService.RestoreProduct(c.Request.Context(), c.Param("sku"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, product)
}

// UpdateStock handles PATCH /api/products/:sku/update-stock/
func (h *ProductHandler) UpdateStock(c *gin.Context) {
	var req dto.StockUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendFieldErrors(c, http.StatusBadRequest, dto.BindingFieldErrors(err))
		return
	}

	result, err := h.productService.UpdateStock(c.Request.Context(), c.Param("sku"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// BulkUpdate handles PATCH /api/products/bulk-update/
func (h *ProductHandler) BulkUpdate(c *gin.Context) {
	var req dto.BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendFieldErrors(c, http.StatusBadRequest, dto.BindingFieldErrors(err))
		return
	}

	result, err := h.productService.BulkUpdate(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// SearchProducts handles GET /api/search/products/?q=...
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	result, err := h.productService.SearchProducts(c.Request.Context(), c.Query("q"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// LowStockProducts handles GET /api/products/alerts/low-stock/
func (h *ProductHandler) LowStockProducts(c *gin.Context) {
	result, err := h.productService.LowStockProducts(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// OutOfStockProducts handles GET /api/products/alerts/out-of-stock/
func (h *ProductHandler) OutOfStockProducts(c *gin.Context) {
	result, err := h.productService.OutOfStockProducts(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// ListProductImages handles GET /api/products/:sku/images/
func (h *ProductHandler) ListProductImages(c *gin.Context) {
	images, err := h.productService.ListProductImages(c.Request.Context(), c.Param("sku"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, images)
}

// AddProductImage handles POST /api/products/:sku/images/
func (h *ProductHandler) AddProductImage(c *gin.Context) {
	var req dto.CreateProductImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendFieldErrors(c, http.StatusBadRequest, dto.BindingFieldErrors(err))
		return
	}

	result, err := h.productService.AddProductImage(c.Request.Context(), c.Param("sku"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, result)
}

// DeleteProductImage handles DELETE /api/products/:sku/images/:imageId/
func (h *ProductHandler) DeleteProductImage(c *gin.Context) {
	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, "Invalid image ID")
		return
	}

	if err := h.productService.DeleteProductImage(c.Request.Context(), c.Param("sku"), imageID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
