package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"inventory-api/internal/domain"
	"inventory-api/internal/dto"
	"inventory-api/internal/repository"
	"inventory-api/internal/response"
)

// CategoryService defines the interface for category business logic
type CategoryService interface {
	ListCategories(ctx context.Context, filter domain.CategoryFilter) ([]*dto.CategoryResponse, error)
	GetCategory(ctx context.Context, slug string) (*dto.CategoryResponse, error)
	CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, slug string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, slug string) error
	RestoreCategory(ctx context.Context, slug string) (*dto.CategoryResponse, error)
}

// categoryServiceImpl is the implementation of CategoryService
type categoryServiceImpl struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryServiceImpl{categoryRepo: categoryRepo}
}

// ListCategories retrieves categories matching the filter
func (s *categoryServiceImpl) ListCategories(ctx context.Context, filter domain.CategoryFilter) ([]*dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.List(ctx, filter)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch categories", err.Error())
	}

	responses := make([]*dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		count, err := s.categoryRepo.CountActiveProducts(ctx, category.ID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count products", err.Error())
		}
		responses = append(responses, dto.ToCategoryResponse(category, count))
	}
	return responses, nil
}

// GetCategory retrieves one category by its slug
func (s *categoryServiceImpl) GetCategory(ctx context.Context, slug string) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Category not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch category", err.Error())
	}

	count, err := s.categoryRepo.CountActiveProducts(ctx, category.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count products", err.Error())
	}
	return dto.ToCategoryResponse(category, count), nil
}

// CreateCategory creates a new category with a unique name and slug
func (s *categoryServiceImpl) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if _, err := s.categoryRepo.FindByName(ctx, req.Name); err == nil {
		return nil, response.NewConflictError(fmt.Sprintf("Category '%s' already exists", req.Name), "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check category name", err.Error())
	}

	category := domain.NewCategory(req.Name, req.Description, req.Slug)

	if _, err := s.categoryRepo.FindBySlug(ctx, category.Slug, false); err == nil {
		return nil, response.NewConflictError(fmt.Sprintf("Category slug '%s' already exists", category.Slug), "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check category slug", err.Error())
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create category", err.Error())
	}
	return dto.ToCategoryResponse(category, 0), nil
}

// UpdateCategory applies a partial update. The slug never changes, even
// on rename.
func (s *categoryServiceImpl) UpdateCategory(ctx context.Context, slug string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Category not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch category", err.Error())
	}

	if req.Name != nil && *req.Name != category.Name {
		if existing, err := s.categoryRepo.FindByName(ctx, *req.Name); err == nil && existing.ID != category.ID {
			return nil, response.NewConflictError(fmt.Sprintf("Category '%s' already exists", *req.Name), "")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check category name", err.Error())
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update category", err.Error())
	}

	count, err := s.categoryRepo.CountActiveProducts(ctx, category.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count products", err.Error())
	}
	return dto.ToCategoryResponse(category, count), nil
}

// DeleteCategory soft deletes a category. A category that still has
// live products cannot be deleted; deleting an already deleted category
// is a no-op.
func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, slug string) error {
	category, err := s.categoryRepo.FindBySlug(ctx, slug, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Category not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch category", err.Error())
	}
	if category.IsDeleted {
		return nil
	}

	count, err := s.categoryRepo.CountProducts(ctx, category.ID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to count products", err.Error())
	}
	if count > 0 {
		return response.NewConflictError(
			fmt.Sprintf("Category '%s' still has %d product(s)", category.Name, count), "")
	}

	if err := s.categoryRepo.SoftDelete(ctx, category.ID, time.Now()); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete category", err.Error())
	}
	return nil
}

// RestoreCategory brings a soft-deleted category back
func (s *categoryServiceImpl) RestoreCategory(ctx context.Context, slug string) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Category not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch category", err.Error())
	}

	if category.IsDeleted {
		if err := s.categoryRepo.Restore(ctx, category.ID); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to restore category", err.Error())
		}
		category.Restore()
	}

	count, err := s.categoryRepo.CountActiveProducts(ctx, category.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count products", err.Error())
	}
	return dto.ToCategoryResponse(category, count), nil
}
