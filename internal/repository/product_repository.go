package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"inventory-api/internal/domain"
)

// InventoryTotals holds the catalog-wide stock aggregates.
type InventoryTotals struct {
	TotalProducts       int64
	TotalStock          int64
	LowStockCount       int64
	OutOfStockCount     int64
	TotalInventoryValue decimal.Decimal
}

// CategoryTotals holds the per-category stock aggregates.
type CategoryTotals struct {
	CategoryID   uuid.UUID
	CategoryName string
	ProductCount int64
	TotalStock   int64
	TotalValue   decimal.Decimal
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*domain.Product, error)
	FindBySKU(ctx context.Context, sku string, includeDeleted bool) (*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	SoftDelete(ctx context.Context, id uuid.UUID, now time.Time) error
	Restore(ctx context.Context, id uuid.UUID) error
	AdjustStock(ctx context.Context, id uuid.UUID, quantity int, op domain.StockOperation) (bool, error)
	BulkUpdate(ctx context.Context, ids []uuid.UUID, updates map[string]interface{}) ([]uuid.UUID, error)
	Totals(ctx context.Context, categoryID *uuid.UUID) (*InventoryTotals, error)
	TotalsByCategory(ctx context.Context, categoryID *uuid.UUID) ([]CategoryTotals, error)
	AddImage(ctx context.Context, image *domain.ProductImage) error
	FindImageByID(ctx context.Context, id uuid.UUID) (*domain.ProductImage, error)
	DeleteImage(ctx context.Context, id uuid.UUID) error
	FindOrphanedImages(ctx context.Context, deletedBefore time.Time) ([]*domain.ProductImage, error)
	DeleteImages(ctx context.Context, ids []uuid.UUID) error
}

// productRepositoryImpl is the GORM implementation of ProductRepository
type productRepositoryImpl struct {
	db *gorm.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepositoryImpl{db: db}
}

// Create creates a new product
func (r *productRepositoryImpl) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByID finds a product by its ID with category and images preloaded
func (r *productRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*domain.Product, error) {
	var product domain.Product
	q := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, created_at ASC")
		})
	if !includeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	if err := q.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySKU finds a product by its SKU with category and images preloaded
func (r *productRepositoryImpl) FindBySKU(ctx context.Context, sku string, includeDeleted bool) (*domain.Product, error) {
	var product domain.Product
	q := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, created_at ASC")
		})
	if !includeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	if err := q.First(&product, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns live products matching the filter. All set predicates
// are ANDed; the free-text search ORs across product and category
// columns.
func (r *productRepositoryImpl) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Preload("Category").
		Where("products.is_deleted = ?", false)

	q = applyProductFilter(q, filter)

	var products []*domain.Product
	if err := q.Order("products." + orderColumn(filter.Ordering)).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func applyProductFilter(q *gorm.DB, filter domain.ProductFilter) *gorm.DB {
	if filter.CategoryID != nil {
		q = q.Where("products.category_id = ?", *filter.CategoryID)
	}
	if filter.Size != nil {
		q = q.Where("products.size = ?", *filter.Size)
	}
	if filter.Color != nil {
		q = q.Where("products.color = ?", *filter.Color)
	}
	if filter.IsActive != nil {
		q = q.Where("products.is_active = ?", *filter.IsActive)
	}

	if filter.MinPrice != nil {
		q = q.Where("products.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("products.price <= ?", *filter.MaxPrice)
	}
	if filter.MinStock != nil {
		q = q.Where("products.stock >= ?", *filter.MinStock)
	}
	if filter.MaxStock != nil {
		q = q.Where("products.stock <= ?", *filter.MaxStock)
	}

	if len(filter.Sizes) > 0 {
		q = q.Where("products.size IN ?", filter.Sizes)
	}
	if len(filter.Colors) > 0 {
		q = q.Where("products.color IN ?", filter.Colors)
	}
	if len(filter.CategoryIDs) > 0 {
		q = q.Where("products.category_id IN ?", filter.CategoryIDs)
	}

	if filter.InStock != nil {
		if *filter.InStock {
			q = q.Where("products.stock > 0")
		} else {
			q = q.Where("products.stock = 0")
		}
	}
	if filter.OutOfStock != nil {
		if *filter.OutOfStock {
			q = q.Where("products.stock = 0")
		} else {
			q = q.Where("products.stock > 0")
		}
	}
	if filter.LowStock != nil {
		if *filter.LowStock {
			q = q.Where("products.stock <= products.min_stock")
		} else {
			q = q.Where("products.stock > products.min_stock")
		}
	}

	if filter.Search != "" {
		pattern := "%" + likePattern(filter.Search) + "%"
		q = q.Joins("LEFT JOIN categories ON categories.id = products.category_id").
			Where(
				"LOWER(products.name) LIKE ? ESCAPE '\\' OR LOWER(products.sku) LIKE ? ESCAPE '\\' OR LOWER(products.description) LIKE ? ESCAPE '\\' OR LOWER(products.barcode) LIKE ? ESCAPE '\\' OR LOWER(categories.name) LIKE ? ESCAPE '\\'",
				pattern, pattern, pattern, pattern, pattern,
			).
			Distinct("products.*")
	}

	if filter.CreatedAfter != nil {
		q = q.Where("products.created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		q = q.Where("products.created_at <= ?", *filter.CreatedBefore)
	}
	if filter.UpdatedAfter != nil {
		q = q.Where("products.updated_at >= ?", *filter.UpdatedAfter)
	}

	return q
}

// orderColumn translates an ordering value into an ORDER BY fragment.
// Unknown keys fall back to newest-first.
func orderColumn(ordering string) string {
	column := strings.TrimPrefix(ordering, "-")
	switch column {
	case "name", "price", "stock", "created_at", "updated_at":
	default:
		return "created_at DESC"
	}
	if strings.HasPrefix(ordering, "-") {
		return column + " DESC"
	}
	return column + " ASC"
}

// likePattern lowercases the term and escapes LIKE metacharacters so a
// literal '%' or '_' in the input matches itself instead of acting as
// a wildcard. The queries using it carry a matching ESCAPE clause.
func likePattern(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// Update saves all fields of the product
func (r *productRepositoryImpl) Update(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// SoftDelete marks a product as deleted. Repeating the delete keeps the
// original deletion time.
func (r *productRepositoryImpl) SoftDelete(ctx context.Context, id uuid.UUID, now time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": now,
		}).Error
}

// Restore brings a soft-deleted product back
func (r *productRepositoryImpl) Restore(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": false,
			"deleted_at": nil,
		}).Error
}

// AdjustStock applies an atomic stock adjustment. A subtract only
// succeeds when enough stock is available; the guard lives in the WHERE
// clause so concurrent subtracts can never drive the stock negative.
// Returns false when the subtract was refused.
func (r *productRepositoryImpl) AdjustStock(ctx context.Context, id uuid.UUID, quantity int, op domain.StockOperation) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND is_deleted = ?", id, false)

	var result *gorm.DB
	switch op {
	case domain.StockAdd:
		result = q.Update("stock", gorm.Expr("stock + ?", quantity))
	case domain.StockSubtract:
		result = q.Where("stock >= ?", quantity).
			Update("stock", gorm.Expr("stock - ?", quantity))
	default:
		return false, gorm.ErrInvalidData
	}

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// BulkUpdate applies the same column updates to every matched live
// product inside one transaction and returns the matched IDs. Matching
// nothing returns an empty slice and writes nothing.
func (r *productRepositoryImpl) BulkUpdate(ctx context.Context, ids []uuid.UUID, updates map[string]interface{}) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return []uuid.UUID{}, nil
	}

	var matched []uuid.UUID
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Product{}).
			Where("id IN ? AND is_deleted = ?", ids, false).
			Pluck("id", &matched).Error; err != nil {
			return err
		}
		if len(matched) == 0 {
			return nil
		}
		return tx.Model(&domain.Product{}).
			Where("id IN ?", matched).
			Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return matched, nil
}

// Totals aggregates the active catalog in one query, optionally scoped
// to a single category. Low stock counts every product at or below its
// threshold, so sold-out products appear in both the low and the
// out-of-stock counts.
func (r *productRepositoryImpl) Totals(ctx context.Context, categoryID *uuid.UUID) (*InventoryTotals, error) {
	var totals InventoryTotals
	q := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Select(
			"COUNT(*) AS total_products, " +
				"COALESCE(SUM(stock), 0) AS total_stock, " +
				"COALESCE(SUM(CASE WHEN stock <= min_stock THEN 1 ELSE 0 END), 0) AS low_stock_count, " +
				"COALESCE(SUM(CASE WHEN stock = 0 THEN 1 ELSE 0 END), 0) AS out_of_stock_count, " +
				"COALESCE(SUM(price * stock), 0) AS total_inventory_value").
		Where("is_deleted = ? AND is_active = ?", false, true)
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	if err := q.Scan(&totals).Error; err != nil {
		return nil, err
	}
	return &totals, nil
}

// TotalsByCategory aggregates active products per live category,
// including categories that currently have none.
func (r *productRepositoryImpl) TotalsByCategory(ctx context.Context, categoryID *uuid.UUID) ([]CategoryTotals, error) {
	query := `
		SELECT categories.id AS category_id,
		       categories.name AS category_name,
		       COUNT(products.id) AS product_count,
		       COALESCE(SUM(products.stock), 0) AS total_stock,
		       COALESCE(SUM(products.price * products.stock), 0) AS total_value
		FROM categories
		LEFT JOIN products
		       ON products.category_id = categories.id
		      AND products.is_deleted = ?
		      AND products.is_active = ?
		WHERE categories.is_deleted = ? AND categories.is_active = ?`
	args := []interface{}{false, true, false, true}
	if categoryID != nil {
		query += " AND categories.id = ?"
		args = append(args, *categoryID)
	}
	query += `
		GROUP BY categories.id, categories.name
		ORDER BY categories.name ASC`

	var rows []CategoryTotals
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// AddImage stores a gallery image record
func (r *productRepositoryImpl) AddImage(ctx context.Context, image *domain.ProductImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

// FindImageByID finds a gallery image by its ID
func (r *productRepositoryImpl) FindImageByID(ctx context.Context, id uuid.UUID) (*domain.ProductImage, error) {
	var image domain.ProductImage
	if err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// DeleteImage removes a gallery image record
func (r *productRepositoryImpl) DeleteImage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ProductImage{}, "id = ?", id).Error
}

// FindOrphanedImages returns gallery images whose product was soft
// deleted before the cutoff. These records only waste storage; nothing
// can reach them through the API anymore.
func (r *productRepositoryImpl) FindOrphanedImages(ctx context.Context, deletedBefore time.Time) ([]*domain.ProductImage, error) {
	var images []*domain.ProductImage
	err := r.db.WithContext(ctx).
		Joins("JOIN products ON products.id = product_images.product_id").
		Where("products.is_deleted = ? AND products.deleted_at < ?", true, deletedBefore).
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

// DeleteImages removes a batch of gallery image records
func (r *productRepositoryImpl) DeleteImages(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&domain.ProductImage{}, "id IN ?", ids).Error
}
