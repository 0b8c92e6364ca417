package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory-api/internal/dto"
	"inventory-api/internal/response"
	"inventory-api/internal/service"
)

// CategoryHandler serves the category endpoints
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories handles GET /api/categories/
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	filter := dto.ParseCategoryFilter(c.Request.URL.Query())

	categories, err := h.categoryService.ListCategories(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, categories)
}

// GetCategory handles GET /api/categories/:slug/
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.categoryService.GetCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, category)
}

// CreateCategory handles POST /api/categories/
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendFieldErrors(c, http.StatusBadRequest, dto.BindingFieldErrors(err))
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, category)
}

// UpdateCategory handles PATCH /api/categories/:slug/
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendFieldErrors(c, http.StatusBadRequest, dto.BindingFieldErrors(err))
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), c.Param("slug"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/categories/:slug/
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.categoryService.DeleteCategory(c.Request.Context(), c.Param("slug")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RestoreCategory handles POST /api/categories/:slug/restore/
func (h *CategoryHandler) RestoreCategory(c *gin.Context) {
	category, err := h.categoryService.RestoreCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, category)
}
