package service

import (
	"context"

	"github.com/google/uuid"

	"inventory-api/internal/domain"
	"inventory-api/internal/dto"
	"inventory-api/internal/response"
)

// ListProductImages lists the gallery images of a product in display
// order.
func (s *productServiceImpl) ListProductImages(ctx context.Context, sku string) ([]dto.ProductImageResponse, error) {
	product, err := s.findBySKU(ctx, sku, false)
	if err != nil {
		return nil, err
	}

	images := make([]dto.ProductImageResponse, 0, len(product.Images))
	for i := range product.Images {
		url := ""
		if s.imageStore != nil {
			url = s.imageStore.GetImageURL(product.Images[i].ImageKey)
		}
		images = append(images, dto.ToProductImageResponse(&product.Images[i], url))
	}
	return images, nil
}

// AddProductImage registers a gallery image and returns a presigned
// upload URL. The client uploads the bytes directly to storage.
func (s *productServiceImpl) AddProductImage(ctx context.Context, sku string, req *dto.CreateProductImageRequest) (*dto.ProductImageUploadResponse, error) {
	product, err := s.findBySKU(ctx, sku, false)
	if err != nil {
		return nil, err
	}
	if s.imageStore == nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Image storage is not configured", "")
	}

	key := s.imageStore.GenerateImageKey(product.SKU, req.FileName)
	uploadURL, err := s.imageStore.GeneratePresignedUploadURL(ctx, key, req.ContentType)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to generate upload URL", err.Error())
	}

	image := &domain.ProductImage{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		ProductID: product.ID,
		ImageKey:  key,
		AltText:   req.AltText,
		Order:     req.Order,
	}
	if err := s.productRepo.AddImage(ctx, image); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to store image record", err.Error())
	}

	return &dto.ProductImageUploadResponse{
		Image:     dto.ToProductImageResponse(image, s.imageStore.GetImageURL(key)),
		UploadURL: uploadURL,
	}, nil
}

// DeleteProductImage removes a gallery image record and its stored
// object. The image must belong to the addressed product.
func (s *productServiceImpl) DeleteProductImage(ctx context.Context, sku string, imageID uuid.UUID) error {
	product, err := s.findBySKU(ctx, sku, false)
	if err != nil {
		return err
	}

	image, err := s.productRepo.FindImageByID(ctx, imageID)
	if err != nil || image.ProductID != product.ID {
		return response.NewNotFoundError("Image not found", "")
	}

	if err := s.productRepo.DeleteImage(ctx, imageID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete image record", err.Error())
	}

	// Removing the stored object is best effort; a dangling object is
	// harmless and can be cleaned up later.
	if s.imageStore != nil {
		_ = s.imageStore.DeleteImage(ctx, image.ImageKey)
	}
	return nil
}
