package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"inventory-api/internal/domain"
	"inventory-api/internal/dto"
	"inventory-api/internal/response"
)

func notFoundCategory(ctx context.Context, _ string, _ bool) (*domain.Category, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestCategoryService_CreateCategory(t *testing.T) {
	var created *domain.Category
	mockRepo := &MockCategoryRepository{
		FindByNameFunc: func(ctx context.Context, name string) (*domain.Category, error) {
			return nil, gorm.ErrRecordNotFound
		},
		FindBySlugFunc: notFoundCategory,
		CreateFunc: func(ctx context.Context, category *domain.Category) error {
			created = category
			return nil
		},
	}
	svc := NewCategoryService(mockRepo)

	resp, err := svc.CreateCategory(context.Background(), &dto.CreateCategoryRequest{
		Name:        "Ropa de Bebé",
		Description: "Para los más pequeños",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "Ropa de Bebé", resp.Name)
	assert.Equal(t, "ropa-de-bebe", resp.Slug)
	assert.True(t, resp.IsActive)
	assert.Zero(t, resp.ActiveProductsCount)
}

func TestCategoryService_CreateCategory_DuplicateName(t *testing.T) {
	existing := domain.NewCategory("Camisetas", "", "")
	mockRepo := &MockCategoryRepository{
		FindByNameFunc: func(ctx context.Context, name string) (*domain.Category, error) {
			return existing, nil
		},
	}
	svc := NewCategoryService(mockRepo)

	_, err := svc.CreateCategory(context.Background(), &dto.CreateCategoryRequest{Name: "Camisetas"})
	require.Error(t, err)

	appErr, ok := err.(*response.AppError)
	require.True(t, ok)
	assert.Equal(t, response.ErrCodeConflict, appErr.Code)
}

func TestCategoryService_DeleteCategory_RefusedWhileProductsExist(t *testing.T) {
	category := domain.NewCategory("Camisetas", "", "")
	deleted := false
	mockRepo := &MockCategoryRepository{
		FindBySlugFunc: func(ctx context.Context, slug string, includeDeleted bool) (*domain.Category, error) {
			return category, nil
		},
		CountProductsFunc: func(ctx context.Context, categoryID uuid.UUID) (int64, error) {
			return 3, nil
		},
		SoftDeleteFunc: func(ctx context.Context, id uuid.UUID, now time.Time) error {
			deleted = true
			return nil
		},
	}
	svc := NewCategoryService(mockRepo)

	err := svc.DeleteCategory(context.Background(), "camisetas")
	require.Error(t, err)

	appErr, ok := err.(*response.AppError)
	require.True(t, ok)
	assert.Equal(t, response.ErrCodeConflict, appErr.Code)
	assert.False(t, deleted, "a referenced category must never be deleted")
}

func TestCategoryService_DeleteCategory_IsIdempotent(t *testing.T) {
	category := domain.NewCategory("Camisetas", "", "")
	category.MarkDeleted(time.Now())

	deleteCalls := 0
	mockRepo := &MockCategoryRepository{
		FindBySlugFunc: func(ctx context.Context, slug string, includeDeleted bool) (*domain.Category, error) {
			return category, nil
		},
		SoftDeleteFunc: func(ctx context.Context, id uuid.UUID, now time.Time) error {
			deleteCalls++
			return nil
		},
	}
	svc := NewCategoryService(mockRepo)

	require.NoError(t, svc.DeleteCategory(context.Background(), "camisetas"))
	assert.Zero(t, deleteCalls, "deleting an already deleted category is a no-op")
}

func TestCategoryService_DeleteCategory_NotFound(t *testing.T) {
	mockRepo := &MockCategoryRepository{FindBySlugFunc: notFoundCategory}
	svc := NewCategoryService(mockRepo)

	err := svc.DeleteCategory(context.Background(), "nope")
	require.Error(t, err)

	appErr, ok := err.(*response.AppError)
	require.True(t, ok)
	assert.Equal(t, response.ErrCodeNotFound, appErr.Code)
}

func TestCategoryService_RestoreCategory(t *testing.T) {
	category := domain.NewCategory("Camisetas", "", "")
	category.MarkDeleted(time.Now())

	restored := false
	mockRepo := &MockCategoryRepository{
		FindBySlugFunc: func(ctx context.Context, slug string, includeDeleted bool) (*domain.Category, error) {
			return category, nil
		},
		RestoreFunc: func(ctx context.Context, id uuid.UUID) error {
			restored = true
			return nil
		},
	}
	svc := NewCategoryService(mockRepo)

	resp, err := svc.RestoreCategory(context.Background(), "camisetas")
	require.NoError(t, err)
	assert.True(t, restored)
	assert.False(t, resp.ID == uuid.Nil)
}

func TestCategoryService_UpdateCategory_SlugNeverChanges(t *testing.T) {
	category := domain.NewCategory("Camisetas", "", "")
	mockRepo := &MockCategoryRepository{
		FindBySlugFunc: func(ctx context.Context, slug string, includeDeleted bool) (*domain.Category, error) {
			return category, nil
		},
		FindByNameFunc: func(ctx context.Context, name string) (*domain.Category, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewCategoryService(mockRepo)

	newName := "Playeras"
	resp, err := svc.UpdateCategory(context.Background(), "camisetas", &dto.UpdateCategoryRequest{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Playeras", resp.Name)
	assert.Equal(t, "camisetas", resp.Slug)
}
