package client

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MockImageStore implements ImageStore for testing without AWS credentials
type MockImageStore struct {
	Bucket string

	// Optional function overrides for custom test behavior
	GenerateImageKeyFunc           func(sku, fileName string) string
	GeneratePresignedUploadURLFunc func(ctx context.Context, key, contentType string) (string, error)
	DeleteImageFunc                func(ctx context.Context, key string) error
	GetImageURLFunc                func(key string) string

	// Deleted records the keys passed to DeleteImage
	Deleted []string
}

// NewMockImageStore creates a new mock image store for testing
func NewMockImageStore() *MockImageStore {
	return &MockImageStore{Bucket: "test-bucket"}
}

// GenerateImageKey generates a deterministic-looking key for tests
func (m *MockImageStore) GenerateImageKey(sku, fileName string) string {
	if m.GenerateImageKeyFunc != nil {
		return m.GenerateImageKeyFunc(sku, fileName)
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("products/%s/%s%s", sku, uuid.New().String(), ext)
}

// GeneratePresignedUploadURL returns a fake presigned URL
func (m *MockImageStore) GeneratePresignedUploadURL(ctx context.Context, key, contentType string) (string, error) {
	if m.GeneratePresignedUploadURLFunc != nil {
		return m.GeneratePresignedUploadURLFunc(ctx, key, contentType)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s?X-Amz-Signature=test", m.Bucket, key), nil
}

// DeleteImage records the deleted key
func (m *MockImageStore) DeleteImage(ctx context.Context, key string) error {
	if m.DeleteImageFunc != nil {
		return m.DeleteImageFunc(ctx, key)
	}
	m.Deleted = append(m.Deleted, key)
	return nil
}

// GetImageURL returns a plain bucket URL
func (m *MockImageStore) GetImageURL(key string) string {
	if m.GetImageURLFunc != nil {
		return m.GetImageURLFunc(key)
	}
	if key == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", m.Bucket, key)
}
