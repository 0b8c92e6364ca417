package dto

import (
	"time"

	"github.com/google/uuid"

	"inventory-api/internal/domain"
)

// CreateProductImageRequest asks for a presigned upload slot for one
// gallery image. The client uploads the bytes directly to storage using
// the returned URL.
type CreateProductImageRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
	AltText     string `json:"alt_text" binding:"omitempty,max=200"`
	Order       int    `json:"order" binding:"gte=0"`
}

// ProductImageResponse is one gallery image of a product.
type ProductImageResponse struct {
	ID        uuid.UUID `json:"id"`
	ImageKey  string    `json:"image_key"`
	URL       string    `json:"url,omitempty"`
	AltText   string    `json:"alt_text"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductImageUploadResponse carries the stored image record together
// with the presigned PUT URL for the actual upload.
type ProductImageUploadResponse struct {
	Image     ProductImageResponse `json:"image"`
	UploadURL string               `json:"upload_url"`
}

// ToProductImageResponse converts a domain image; url may be empty when
// no public endpoint is configured.
func ToProductImageResponse(img *domain.ProductImage, url string) ProductImageResponse {
	return ProductImageResponse{
		ID:        img.ID,
		ImageKey:  img.ImageKey,
		URL:       url,
		AltText:   img.AltText,
		Order:     img.Order,
		CreatedAt: img.CreatedAt,
	}
}
