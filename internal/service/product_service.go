package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"inventory-api/internal/client"
	"inventory-api/internal/domain"
	"inventory-api/internal/dto"
	"inventory-api/internal/metrics"
	"inventory-api/internal/repository"
	"inventory-api/internal/response"
)

// bulkUpdatableFields is the allow-list for bulk updates. Anything else
// rejects the whole batch before a single row is written.
var bulkUpdatableFields = map[string]struct{}{
	"price":     {},
	"stock":     {},
	"min_stock": {},
	"is_active": {},
}

// ProductService defines the interface for product business logic
type ProductService interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]dto.ProductListItem, error)
	GetProduct(ctx context.Context, sku string) (*dto.ProductResponse, error)
	CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, sku string, req *dto.UpdateProductRequest) (*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, sku string) error
	RestoreProduct(ctx context.Context, sku string) (*dto.ProductResponse, error)
	UpdateStock(ctx context.Context, sku string, req *dto.StockUpdateRequest) (*dto.StockUpdateResponse, error)
	BulkUpdate(ctx context.Context, req *dto.BulkUpdateRequest) (*dto.BulkUpdateResponse, error)
	SearchProducts(ctx context.Context, query string) (*dto.SearchResponse, error)
	LowStockProducts(ctx context.Context) (*dto.ProductAlertsResponse, error)
	OutOfStockProducts(ctx context.Context) (*dto.ProductAlertsResponse, error)

	ListProductImages(ctx context.Context, sku string) ([]dto.ProductImageResponse, error)
	AddProductImage(ctx context.Context, sku string, req *dto.CreateProductImageRequest) (*dto.ProductImageUploadResponse, error)
	DeleteProductImage(ctx context.Context, sku string, imageID uuid.UUID) error
}

// productServiceImpl is the implementation of ProductService
type productServiceImpl struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	imageStore   client.ImageStore
	metrics      *metrics.Metrics
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, imageStore client.ImageStore, m *metrics.Metrics) ProductService {
	return &productServiceImpl{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		imageStore:   imageStore,
		metrics:      m,
	}
}

// ListProducts retrieves products matching the filter
func (s *productServiceImpl) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]dto.ProductListItem, error) {
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch products", err.Error())
	}
	return dto.ToProductListItems(products), nil
}

// GetProduct retrieves one product by its SKU
func (s *productServiceImpl) GetProduct(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	product, err := s.findBySKU(ctx, sku, false)
	if err != nil {
		return nil, err
	}
	return s.toResponse(product), nil
}

// CreateProduct creates a new product. The SKU is generated from the
// category, size and color when the request does not carry one.
func (s *productServiceImpl) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if fields := req.FieldErrors(); fields != nil {
		return nil, response.NewValidationError("Invalid product data", joinFieldErrors(fields))
	}

	category, err := s.categoryRepo.FindByID(ctx, req.CategoryID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewValidationError("Category does not exist", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch category", err.Error())
	}

	if req.SKU != "" {
		if _, err := s.productRepo.FindBySKU(ctx, req.SKU, true); err == nil {
			return nil, response.NewConflictError(fmt.Sprintf("Product with SKU '%s' already exists", req.SKU), "")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check SKU", err.Error())
		}
	}

	product := domain.NewProduct(req.Name, category, domain.Size(req.Size), domain.Color(req.Color), req.SKU)
	product.Price = req.Price
	product.Cost = req.Cost
	product.Stock = req.Stock
	product.Description = req.Description
	product.Barcode = req.Barcode
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create product", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementProductCreated()
	}
	return s.toResponse(product), nil
}

// UpdateProduct applies a partial update. The SKU is immutable.
func (s *productServiceImpl) UpdateProduct(ctx context.Context, sku string, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.findBySKU(ctx, sku, false)
	if err != nil {
		return nil, err
	}

	if fields := req.FieldErrors(product); fields != nil {
		return nil, response.NewValidationError("Invalid product data", joinFieldErrors(fields))
	}

	if req.CategoryID != nil && *req.CategoryID != product.CategoryID {
		category, err := s.categoryRepo.FindByID(ctx, *req.CategoryID, false)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewValidationError("Category does not exist", "")
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch category", err.Error())
		}
		product.CategoryID = category.ID
		product.Category = *category
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Size != nil {
		product.Size = domain.Size(*req.Size)
	}
	if req.Color != nil {
		product.Color = domain.Color(*req.Color)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Cost != nil {
		product.Cost = req.Cost
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Barcode != nil {
		product.Barcode = req.Barcode
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update product", err.Error())
	}
	return s.toResponse(product), nil
}

// DeleteProduct soft deletes a product. Deleting an already deleted
// product is a no-op.
func (s *productServiceImpl) DeleteProduct(ctx context.Context, sku string) error {
	product, err := s.findBySKU(ctx, sku, true)
	if err != nil {
		return err
	}
	if product.IsDeleted {
		return nil
	}
	if err := s.productRepo.SoftDelete(ctx, product.ID, time.Now()); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete product", err.Error())
	}
	return nil
}

// RestoreProduct brings a soft-deleted product back
func (s *productServiceImpl) RestoreProduct(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	product, err := s.findBySKU(ctx, sku, true)
	if err != nil {
		return nil, err
	}
	if product.IsDeleted {
		if err := s.productRepo.Restore(ctx, product.ID); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to restore product", err.Error())
		}
		product.Restore()
	}
	return s.toResponse(product), nil
}

// UpdateStock applies an add or subtract stock movement. A subtract
// larger than the available stock is refused and changes nothing.
func (s *productServiceImpl) UpdateStock(ctx context.Context, sku string, req *dto.StockUpdateRequest) (*dto.StockUpdateResponse, error) {
	product, err := s.findBySKU(ctx, sku, false)
	if err != nil {
		return nil, err
	}

	op := domain.StockOperation(req.Operation)
	ok, err := s.productRepo.AdjustStock(ctx, product.ID, req.Quantity, op)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update stock", err.Error())
	}
	if !ok {
		return nil, response.NewValidationError("insufficient stock", "")
	}

	if s.metrics != nil {
		s.metrics.RecordStockMovement(req.Operation)
	}

	updated, err := s.findBySKU(ctx, sku, false)
	if err != nil {
		return nil, err
	}

	verb := "added to"
	if op == domain.StockSubtract {
		verb = "subtracted from"
	}
	return &dto.StockUpdateResponse{
		Message: fmt.Sprintf("%d unit(s) %s stock", req.Quantity, verb),
		Product: s.toResponse(updated),
	}, nil
}

// BulkUpdate applies the same updates to a batch of products inside one
// transaction. Unknown fields or invalid values reject the whole batch;
// matching no live product is reported as not found.
func (s *productServiceImpl) BulkUpdate(ctx context.Context, req *dto.BulkUpdateRequest) (*dto.BulkUpdateResponse, error) {
	if len(req.Updates) == 0 {
		return nil, response.NewValidationError("No update fields given", "")
	}

	updates := make(map[string]interface{}, len(req.Updates))
	for field, raw := range req.Updates {
		if _, ok := bulkUpdatableFields[field]; !ok {
			return nil, response.NewValidationError(
				fmt.Sprintf("Field '%s' cannot be bulk updated", field), "")
		}
		value, err := sanitizeBulkValue(field, raw)
		if err != nil {
			return nil, response.NewValidationError(err.Error(), "")
		}
		updates[field] = value
	}

	matched, err := s.productRepo.BulkUpdate(ctx, req.ProductIDs, updates)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to bulk update products", err.Error())
	}
	if len(matched) == 0 {
		return nil, response.NewNotFoundError("No products matched the given IDs", "")
	}

	return &dto.BulkUpdateResponse{
		Message:         fmt.Sprintf("%d product(s) updated", len(matched)),
		UpdatedCount:    int64(len(matched)),
		UpdatedProducts: matched,
	}, nil
}

// sanitizeBulkValue checks one allow-listed bulk update value. JSON
// numbers arrive as float64.
func sanitizeBulkValue(field string, raw interface{}) (interface{}, error) {
	switch field {
	case "price":
		price, err := decimalFromJSON(raw)
		if err != nil || !price.IsPositive() {
			return nil, fmt.Errorf("invalid price value")
		}
		return price, nil
	case "stock", "min_stock":
		num, ok := raw.(float64)
		if !ok || num != float64(int(num)) || num < 0 {
			return nil, fmt.Errorf("invalid %s value", field)
		}
		return int(num), nil
	case "is_active":
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("invalid is_active value")
		}
		return b, nil
	default:
		return nil, fmt.Errorf("field '%s' cannot be bulk updated", field)
	}
}

func decimalFromJSON(raw interface{}) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		return decimal.NewFromString(v)
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported number type")
	}
}

// SearchProducts runs a free-text search across product and category
// columns. A blank query is an error.
func (s *productServiceImpl) SearchProducts(ctx context.Context, query string) (*dto.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, response.NewValidationError("Search query cannot be empty", "")
	}

	active := true
	products, err := s.productRepo.List(ctx, domain.ProductFilter{
		Search:   query,
		IsActive: &active,
		Ordering: "-created_at",
	})
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to search products", err.Error())
	}

	items := dto.ToProductListItems(products)
	return &dto.SearchResponse{Query: query, Count: len(items), Products: items}, nil
}

// LowStockProducts lists active products at or below their restock
// threshold, most urgent first.
func (s *productServiceImpl) LowStockProducts(ctx context.Context) (*dto.ProductAlertsResponse, error) {
	active, lowStock := true, true
	products, err := s.productRepo.List(ctx, domain.ProductFilter{
		IsActive: &active,
		LowStock: &lowStock,
		Ordering: "stock",
	})
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch low stock products", err.Error())
	}
	items := dto.ToProductListItems(products)
	return &dto.ProductAlertsResponse{Count: len(items), Products: items}, nil
}

// OutOfStockProducts lists active products that are sold out.
func (s *productServiceImpl) OutOfStockProducts(ctx context.Context) (*dto.ProductAlertsResponse, error) {
	active, outOfStock := true, true
	products, err := s.productRepo.List(ctx, domain.ProductFilter{
		IsActive:   &active,
		OutOfStock: &outOfStock,
		Ordering:   "name",
	})
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch out of stock products", err.Error())
	}
	items := dto.ToProductListItems(products)
	return &dto.ProductAlertsResponse{Count: len(items), Products: items}, nil
}

func (s *productServiceImpl) findBySKU(ctx context.Context, sku string, includeDeleted bool) (*domain.Product, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku, includeDeleted)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Product not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch product", err.Error())
	}
	return product, nil
}

// toResponse converts a product, resolving image keys to public URLs.
func (s *productServiceImpl) toResponse(product *domain.Product) *dto.ProductResponse {
	resp := dto.ToProductResponse(product)
	if s.imageStore != nil {
		resp.Image = s.imageStore.GetImageURL(product.ImageKey)
		for i := range resp.Images {
			resp.Images[i].URL = s.imageStore.GetImageURL(resp.Images[i].ImageKey)
		}
	}
	return resp
}

func joinFieldErrors(fields map[string]string) string {
	parts := make([]string, 0, len(fields))
	for field, msg := range fields {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}
