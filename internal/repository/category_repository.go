package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"inventory-api/internal/domain"
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*domain.Category, error)
	FindBySlug(ctx context.Context, slug string, includeDeleted bool) (*domain.Category, error)
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context, filter domain.CategoryFilter) ([]*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	SoftDelete(ctx context.Context, id uuid.UUID, now time.Time) error
	Restore(ctx context.Context, id uuid.UUID) error
	CountProducts(ctx context.Context, categoryID uuid.UUID) (int64, error)
	CountActiveProducts(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

// categoryRepositoryImpl is the GORM implementation of CategoryRepository
type categoryRepositoryImpl struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepositoryImpl{db: db}
}

// Create creates a new category
func (r *categoryRepositoryImpl) Create(ctx context.Context, category *domain.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// FindByID finds a category by its ID. Soft-deleted rows are excluded
// unless includeDeleted is set.
func (r *categoryRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*domain.Category, error) {
	var category domain.Category
	q := r.db.WithContext(ctx)
	if !includeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	if err := q.First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindBySlug finds a category by its slug
func (r *categoryRepositoryImpl) FindBySlug(ctx context.Context, slug string, includeDeleted bool) (*domain.Category, error) {
	var category domain.Category
	q := r.db.WithContext(ctx)
	if !includeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	if err := q.First(&category, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByName finds a live category by its exact name
func (r *categoryRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		First(&category, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// List returns live categories matching the filter, ordered by name
func (r *categoryRepositoryImpl) List(ctx context.Context, filter domain.CategoryFilter) ([]*domain.Category, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("categories.is_deleted = ?", false)

	if filter.Name != "" {
		q = q.Where("LOWER(categories.name) LIKE ? ESCAPE '\\'", "%"+likePattern(filter.Name)+"%")
	}
	if filter.IsActive != nil {
		q = q.Where("categories.is_active = ?", *filter.IsActive)
	}
	if filter.CreatedAfter != nil {
		q = q.Where("categories.created_at >= ?", *filter.CreatedAfter)
	}
	if filter.HasProducts != nil {
		// Only active, live products count as "having products"
		sub := r.db.Model(&domain.Product{}).
			Select("1").
			Where("products.category_id = categories.id AND products.is_deleted = ? AND products.is_active = ?", false, true)
		if *filter.HasProducts {
			q = q.Where("EXISTS (?)", sub)
		} else {
			q = q.Where("NOT EXISTS (?)", sub)
		}
	}

	var categories []*domain.Category
	if err := q.Order("categories.name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Update saves all fields of the category
func (r *categoryRepositoryImpl) Update(ctx context.Context, category *domain.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// SoftDelete marks a category as deleted. Deleting an already deleted
// category is a no-op, preserving the original deletion time.
func (r *categoryRepositoryImpl) SoftDelete(ctx context.Context, id uuid.UUID, now time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": now,
		}).Error
}

// Restore brings a soft-deleted category back
func (r *categoryRepositoryImpl) Restore(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": false,
			"deleted_at": nil,
		}).Error
}

// CountProducts counts live products in the category regardless of
// their active flag. Used to refuse deleting a referenced category.
func (r *categoryRepositoryImpl) CountProducts(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("category_id = ? AND is_deleted = ?", categoryID, false).
		Count(&count).Error
	return count, err
}

// CountActiveProducts counts live, active products in the category
func (r *categoryRepositoryImpl) CountActiveProducts(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("category_id = ? AND is_deleted = ? AND is_active = ?", categoryID, false, true).
		Count(&count).Error
	return count, err
}
