package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"inventory-api/internal/domain"
	"inventory-api/internal/repository"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	CreateFunc           func(ctx context.Context, product *domain.Product) error
	FindByIDFunc         func(ctx context.Context, id uuid.UUID, includeDeleted bool) (*domain.Product, error)
	FindBySKUFunc        func(ctx context.Context, sku string, includeDeleted bool) (*domain.Product, error)
	ListFunc             func(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	UpdateFunc           func(ctx context.Context, product *domain.Product) error
	SoftDeleteFunc       func(ctx context.Context, id uuid.UUID, now time.Time) error
	RestoreFunc          func(ctx context.Context, id uuid.UUID) error
	AdjustStockFunc      func(ctx context.Context, id uuid.UUID, quantity int, op domain.StockOperation) (bool, error)
	BulkUpdateFunc       func(ctx context.Context, ids []uuid.UUID, updates map[string]interface{}) ([]uuid.UUID, error)
	TotalsFunc           func(ctx context.Context, categoryID *uuid.UUID) (*repository.InventoryTotals, error)
	TotalsByCategoryFunc func(ctx context.Context, categoryID *uuid.UUID) ([]repository.CategoryTotals, error)
	AddImageFunc         func(ctx context.Context, image *domain.ProductImage) error
	FindImageByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.ProductImage, error)
	DeleteImageFunc      func(ctx context.Context, id uuid.UUID) error

	FindOrphanedImagesFunc func(ctx context.Context, deletedBefore time.Time) ([]*domain.ProductImage, error)
	DeleteImagesFunc       func(ctx context.Context, ids []uuid.UUID) error
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, product)
	}
	return nil
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*domain.Product, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id, includeDeleted)
	}
	return nil, nil
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string, includeDeleted bool) (*domain.Product, error) {
	if m.FindBySKUFunc != nil {
		return m.FindBySKUFunc(ctx, sku, includeDeleted)
	}
	return nil, nil
}

func (m *MockProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, product)
	}
	return nil
}

func (m *MockProductRepository) SoftDelete(ctx context.Context, id uuid.UUID, now time.Time) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id, now)
	}
	return nil
}

func (m *MockProductRepository) Restore(ctx context.Context, id uuid.UUID) error {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, id)
	}
	return nil
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, id uuid.UUID, quantity int, op domain.StockOperation) (bool, error) {
	if m.AdjustStockFunc != nil {
		return m.AdjustStockFunc(ctx, id, quantity, op)
	}
	return true, nil
}

func (m *MockProductRepository) BulkUpdate(ctx context.Context, ids []uuid.UUID, updates map[string]interface{}) ([]uuid.UUID, error) {
	if m.BulkUpdateFunc != nil {
		return m.BulkUpdateFunc(ctx, ids, updates)
	}
	return ids, nil
}

func (m *MockProductRepository) Totals(ctx context.Context, categoryID *uuid.UUID) (*repository.InventoryTotals, error) {
	if m.TotalsFunc != nil {
		return m.TotalsFunc(ctx, categoryID)
	}
	return &repository.InventoryTotals{}, nil
}

func (m *MockProductRepository) TotalsByCategory(ctx context.Context, categoryID *uuid.UUID) ([]repository.CategoryTotals, error) {
	if m.TotalsByCategoryFunc != nil {
		return m.TotalsByCategoryFunc(ctx, categoryID)
	}
	return nil, nil
}

func (m *MockProductRepository) AddImage(ctx context.Context, image *domain.ProductImage) error {
	if m.AddImageFunc != nil {
		return m.AddImageFunc(ctx, image)
	}
	return nil
}

func (m *MockProductRepository) FindImageByID(ctx context.Context, id uuid.UUID) (*domain.ProductImage, error) {
	if m.FindImageByIDFunc != nil {
		return m.FindImageByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepository) DeleteImage(ctx context.Context, id uuid.UUID) error {
	if m.DeleteImageFunc != nil {
		return m.DeleteImageFunc(ctx, id)
	}
	return nil
}

func (m *MockProductRepository) FindOrphanedImages(ctx context.Context, deletedBefore time.Time) ([]*domain.ProductImage, error) {
	if m.FindOrphanedImagesFunc != nil {
		return m.FindOrphanedImagesFunc(ctx, deletedBefore)
	}
	return nil, nil
}

func (m *MockProductRepository) DeleteImages(ctx context.Context, ids []uuid.UUID) error {
	if m.DeleteImagesFunc != nil {
		return m.DeleteImagesFunc(ctx, ids)
	}
	return nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	CreateFunc              func(ctx context.Context, category *domain.Category) error
	FindByIDFunc            func(ctx context.Context, id uuid.UUID, includeDeleted bool) (*domain.Category, error)
	FindBySlugFunc          func(ctx context.Context, slug string, includeDeleted bool) (*domain.Category, error)
	FindByNameFunc          func(ctx context.Context, name string) (*domain.Category, error)
	ListFunc                func(ctx context.Context, filter domain.CategoryFilter) ([]*domain.Category, error)
	UpdateFunc              func(ctx context.Context, category *domain.Category) error
	SoftDeleteFunc          func(ctx context.Context, id uuid.UUID, now time.Time) error
	RestoreFunc             func(ctx context.Context, id uuid.UUID) error
	CountProductsFunc       func(ctx context.Context, categoryID uuid.UUID) (int64, error)
	CountActiveProductsFunc func(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	return nil
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*domain.Category, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id, includeDeleted)
	}
	return nil, nil
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string, includeDeleted bool) (*domain.Category, error) {
	if m.FindBySlugFunc != nil {
		return m.FindBySlugFunc(ctx, slug, includeDeleted)
	}
	return nil, nil
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockCategoryRepository) List(ctx context.Context, filter domain.CategoryFilter) ([]*domain.Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, category)
	}
	return nil
}

func (m *MockCategoryRepository) SoftDelete(ctx context.Context, id uuid.UUID, now time.Time) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id, now)
	}
	return nil
}

func (m *MockCategoryRepository) Restore(ctx context.Context, id uuid.UUID) error {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, id)
	}
	return nil
}

func (m *MockCategoryRepository) CountProducts(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	if m.CountProductsFunc != nil {
		return m.CountProductsFunc(ctx, categoryID)
	}
	return 0, nil
}

func (m *MockCategoryRepository) CountActiveProducts(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	if m.CountActiveProductsFunc != nil {
		return m.CountActiveProductsFunc(ctx, categoryID)
	}
	return 0, nil
}
