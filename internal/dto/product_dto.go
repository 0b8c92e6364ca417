package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"inventory-api/internal/domain"
)

// CreateProductRequest is the body for creating a product. The SKU is
// optional; when absent one is generated before the product is stored.
type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required,max=200"`
	SKU         string           `json:"sku" binding:"omitempty,max=50"`
	CategoryID  uuid.UUID        `json:"category_id" binding:"required"`
	Size        string           `json:"size" binding:"required,productsize"`
	Color       string           `json:"color" binding:"required,productcolor"`
	Price       decimal.Decimal  `json:"price" binding:"required"`
	Cost        *decimal.Decimal `json:"cost"`
	Stock       int              `json:"stock" binding:"gte=0"`
	MinStock    *int             `json:"min_stock" binding:"omitempty,gte=0"`
	IsActive    *bool            `json:"is_active"`
	Description string           `json:"description"`
	Barcode     *string          `json:"barcode" binding:"omitempty,max=50"`
}

// FieldErrors validates the money invariants that binding tags cannot
// express: price > 0, cost >= 0 and cost <= price.
func (r *CreateProductRequest) FieldErrors() map[string]string {
	fields := map[string]string{}
	if !r.Price.IsPositive() {
		fields["price"] = "price must be greater than 0"
	}
	if r.Cost != nil {
		if r.Cost.IsNegative() {
			fields["cost"] = "cost cannot be negative"
		} else if r.Cost.GreaterThan(r.Price) {
			fields["cost"] = "cost cannot exceed price"
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// UpdateProductRequest is the body for a partial product update. The
// SKU is immutable once assigned.
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	Size        *string          `json:"size" binding:"omitempty,productsize"`
	Color       *string          `json:"color" binding:"omitempty,productcolor"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	Stock       *int             `json:"stock" binding:"omitempty,gte=0"`
	MinStock    *int             `json:"min_stock" binding:"omitempty,gte=0"`
	IsActive    *bool            `json:"is_active"`
	Description *string          `json:"description"`
	Barcode     *string          `json:"barcode" binding:"omitempty,max=50"`
}

// FieldErrors validates money invariants against the resulting state of
// the product being updated.
func (r *UpdateProductRequest) FieldErrors(current *domain.Product) map[string]string {
	price := current.Price
	if r.Price != nil {
		price = *r.Price
	}
	cost := current.Cost
	if r.Cost != nil {
		cost = r.Cost
	}

	fields := map[string]string{}
	if !price.IsPositive() {
		fields["price"] = "price must be greater than 0"
	}
	if cost != nil {
		if cost.IsNegative() {
			fields["cost"] = "cost cannot be negative"
		} else if cost.GreaterThan(price) {
			fields["cost"] = "cost cannot exceed price"
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// StockUpdateRequest is the body of PATCH /products/{sku}/update-stock/.
type StockUpdateRequest struct {
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Operation string `json:"operation" binding:"required,oneof=add subtract"`
	Reason    string `json:"reason" binding:"omitempty,max=200"`
}

// StockUpdateResponse reports a successful stock adjustment.
type StockUpdateResponse struct {
	Message string           `json:"message"`
	Product *ProductResponse `json:"product"`
}

// BulkUpdateRequest is the body of PATCH /products/bulk-update/.
// Updates may only touch the allow-listed fields; anything else rejects
// the whole batch before any row is written.
type BulkUpdateRequest struct {
	ProductIDs []uuid.UUID            `json:"product_ids" binding:"required,min=1"`
	Updates    map[string]interface{} `json:"updates" binding:"required"`
}

// BulkUpdateResponse reports how many rows a bulk update matched.
type BulkUpdateResponse struct {
	Message         string      `json:"message"`
	UpdatedCount    int64       `json:"updated_count"`
	UpdatedProducts []uuid.UUID `json:"updated_products"`
}

// ProductResponse is the full product representation.
type ProductResponse struct {
	ID           uuid.UUID              `json:"id"`
	SKU          string                 `json:"sku"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	Category     *CategoryListItem      `json:"category,omitempty"`
	CategoryID   uuid.UUID              `json:"category_id"`
	Size         string                 `json:"size"`
	SizeDisplay  string                 `json:"size_display"`
	Color        string                 `json:"color"`
	ColorDisplay string                 `json:"color_display"`
	Price        decimal.Decimal        `json:"price"`
	Cost         *decimal.Decimal       `json:"cost,omitempty"`
	Stock        int                    `json:"stock"`
	MinStock     int                    `json:"min_stock"`
	IsActive     bool                   `json:"is_active"`
	Image        string                 `json:"image,omitempty"`
	Images       []ProductImageResponse `json:"additional_images"`
	Barcode      *string                `json:"barcode,omitempty"`
	IsLowStock   bool                   `json:"is_low_stock"`
	IsOutOfStock bool                   `json:"is_out_of_stock"`
	StockStatus  string                 `json:"stock_status"`
	ProfitMargin *decimal.Decimal       `json:"profit_margin,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// ProductListItem is the compact product representation for listings.
type ProductListItem struct {
	ID           uuid.UUID       `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Size         string          `json:"size"`
	SizeDisplay  string          `json:"size_display"`
	Color        string          `json:"color"`
	ColorDisplay string          `json:"color_display"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	StockStatus  string          `json:"stock_status"`
	IsActive     bool            `json:"is_active"`
	Image        string          `json:"image,omitempty"`
}

// ProductAlertsResponse wraps alert listings (low stock, out of stock).
type ProductAlertsResponse struct {
	Count    int               `json:"count"`
	Products []ProductListItem `json:"products"`
}

// SearchResponse wraps free-text search results.
type SearchResponse struct {
	Query    string            `json:"query"`
	Count    int               `json:"count"`
	Products []ProductListItem `json:"products"`
}

// ToProductResponse converts a domain product to its full response.
func ToProductResponse(p *domain.Product) *ProductResponse {
	resp := &ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		CategoryID:   p.CategoryID,
		Size:         string(p.Size),
		SizeDisplay:  p.Size.Display(),
		Color:        string(p.Color),
		ColorDisplay: p.Color.Display(),
		Price:        p.Price,
		Cost:         p.Cost,
		Stock:        p.Stock,
		MinStock:     p.MinStock,
		IsActive:     p.IsActive,
		Image:        p.ImageKey,
		Images:       make([]ProductImageResponse, 0, len(p.Images)),
		Barcode:      p.Barcode,
		IsLowStock:   p.IsLowStock(),
		IsOutOfStock: p.IsOutOfStock(),
		StockStatus:  p.StockStatus(),
		ProfitMargin: p.ProfitMargin(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Category.ID != uuid.Nil {
		item := ToCategoryListItem(&p.Category)
		resp.Category = &item
	}
	for i := range p.Images {
		resp.Images = append(resp.Images, ToProductImageResponse(&p.Images[i], ""))
	}
	return resp
}

// ToProductListItem converts a domain product to its compact form.
func ToProductListItem(p *domain.Product) ProductListItem {
	return ProductListItem{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Category:     p.Category.Name,
		Size:         string(p.Size),
		SizeDisplay:  p.Size.Display(),
		Color:        string(p.Color),
		ColorDisplay: p.Color.Display(),
		Price:        p.Price,
		Stock:        p.Stock,
		StockStatus:  p.StockStatus(),
		IsActive:     p.IsActive,
		Image:        p.ImageKey,
	}
}

// ToProductListItems converts a slice of domain products.
func ToProductListItems(products []*domain.Product) []ProductListItem {
	items := make([]ProductListItem, 0, len(products))
	for _, p := range products {
		items = append(items, ToProductListItem(p))
	}
	return items
}
