package dto

import (
	"time"

	"github.com/google/uuid"

	"inventory-api/internal/domain"
)

// CreateCategoryRequest is the body for creating a category. The slug
// is optional; when absent it is derived from the name once.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=2000"`
	Slug        string `json:"slug" binding:"omitempty,max=120"`
}

// UpdateCategoryRequest is the body for a partial category update.
// The slug is deliberately not updatable.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	IsActive    *bool   `json:"is_active"`
}

// CategoryResponse is the full category representation.
type CategoryResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	Slug                string    `json:"slug"`
	IsActive            bool      `json:"is_active"`
	ActiveProductsCount int64     `json:"active_products_count"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// CategoryListItem is the compact category representation used in
// listings and embedded in product responses.
type CategoryListItem struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// ToCategoryResponse converts a domain category to its full response.
func ToCategoryResponse(c *domain.Category, activeProducts int64) *CategoryResponse {
	return &CategoryResponse{
		ID:                  c.ID,
		Name:                c.Name,
		Description:         c.Description,
		Slug:                c.Slug,
		IsActive:            c.IsActive,
		ActiveProductsCount: activeProducts,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

// ToCategoryListItem converts a domain category to its compact form.
func ToCategoryListItem(c *domain.Category) CategoryListItem {
	return CategoryListItem{ID: c.ID, Name: c.Name, Slug: c.Slug}
}
