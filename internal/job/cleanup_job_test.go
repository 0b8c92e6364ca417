package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"inventory-api/internal/client"
	"inventory-api/internal/domain"
	"inventory-api/internal/repository"
)

// mockProductRepo stubs the two repository methods the cleanup job
// uses. The embedded interface panics on anything else, which is what
// we want in these tests.
type mockProductRepo struct {
	repository.ProductRepository

	findOrphanedImagesFunc func(ctx context.Context, deletedBefore time.Time) ([]*domain.ProductImage, error)
	deleteImagesFunc       func(ctx context.Context, ids []uuid.UUID) error

	deleteCalls [][]uuid.UUID
}

func (m *mockProductRepo) FindOrphanedImages(ctx context.Context, deletedBefore time.Time) ([]*domain.ProductImage, error) {
	return m.findOrphanedImagesFunc(ctx, deletedBefore)
}

func (m *mockProductRepo) DeleteImages(ctx context.Context, ids []uuid.UUID) error {
	m.deleteCalls = append(m.deleteCalls, ids)
	if m.deleteImagesFunc != nil {
		return m.deleteImagesFunc(ctx, ids)
	}
	return nil
}

func orphanedImage(key string) *domain.ProductImage {
	return &domain.ProductImage{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		ProductID: uuid.New(),
		ImageKey:  key,
	}
}

func TestImageCleanupJob_Run_DeletesOrphanedImages(t *testing.T) {
	image1 := orphanedImage("products/CAM-AZUL-2T/a.jpg")
	image2 := orphanedImage("products/CAM-AZUL-2T/b.jpg")

	repo := &mockProductRepo{
		findOrphanedImagesFunc: func(ctx context.Context, deletedBefore time.Time) ([]*domain.ProductImage, error) {
			return []*domain.ProductImage{image1, image2}, nil
		},
	}
	store := client.NewMockImageStore()

	job := NewImageCleanupJob(repo, store, zap.NewNop(), 30*24*time.Hour)
	job.Run()

	assert.Equal(t, []string{image1.ImageKey, image2.ImageKey}, store.Deleted)
	assert.Len(t, repo.deleteCalls, 1)
	assert.Equal(t, []uuid.UUID{image1.ID, image2.ID}, repo.deleteCalls[0])
}

func TestImageCleanupJob_Run_CutoffReflectsRetention(t *testing.T) {
	var gotCutoff time.Time
	repo := &mockProductRepo{
		findOrphanedImagesFunc: func(ctx context.Context, deletedBefore time.Time) ([]*domain.ProductImage, error) {
			gotCutoff = deletedBefore
			return nil, nil
		},
	}

	retention := 7 * 24 * time.Hour
	job := NewImageCleanupJob(repo, client.NewMockImageStore(), zap.NewNop(), retention)
	job.Run()

	expected := time.Now().UTC().Add(-retention)
	assert.WithinDuration(t, expected, gotCutoff, 5*time.Second)
}

func TestImageCleanupJob_Run_NoOrphanedImages(t *testing.T) {
	repo := &mockProductRepo{
		findOrphanedImagesFunc: func(ctx context.Context, deletedBefore time.Time) ([]*domain.ProductImage, error) {
			return nil, nil
		},
	}
	store := client.NewMockImageStore()

	job := NewImageCleanupJob(repo, store, zap.NewNop(), 30*24*time.Hour)
	job.Run()

	assert.Empty(t, store.Deleted)
	assert.Empty(t, repo.deleteCalls)
}

func TestImageCleanupJob_Run_FindError(t *testing.T) {
	repo := &mockProductRepo{
		findOrphanedImagesFunc: func(ctx context.Context, deletedBefore time.Time) ([]*domain.ProductImage, error) {
			return nil, errors.New("database error")
		},
	}
	store := client.NewMockImageStore()

	job := NewImageCleanupJob(repo, store, zap.NewNop(), 30*24*time.Hour)
	job.Run()

	assert.Empty(t, store.Deleted)
	assert.Empty(t, repo.deleteCalls)
}

func TestImageCleanupJob_Run_StoreFailureKeepsRecord(t *testing.T) {
	image1 := orphanedImage("products/PAN-ROJO-4T/a.jpg")
	image2 := orphanedImage("products/PAN-ROJO-4T/b.jpg")

	repo := &mockProductRepo{
		findOrphanedImagesFunc: func(ctx context.Context, deletedBefore time.Time) ([]*domain.ProductImage, error) {
			return []*domain.ProductImage{image1, image2}, nil
		},
	}
	store := client.NewMockImageStore()
	store.DeleteImageFunc = func(ctx context.Context, key string) error {
		if key == image1.ImageKey {
			return errors.New("access denied")
		}
		store.Deleted = append(store.Deleted, key)
		return nil
	}

	job := NewImageCleanupJob(repo, store, zap.NewNop(), 30*24*time.Hour)
	job.Run()

	// Only the image whose object was deleted loses its record; the
	// failed one is retried on the next pass.
	assert.Len(t, repo.deleteCalls, 1)
	assert.Equal(t, []uuid.UUID{image2.ID}, repo.deleteCalls[0])
}

func TestImageCleanupJob_Run_DatabaseDeleteError(t *testing.T) {
	image := orphanedImage("products/VES-ROSA-6M/a.jpg")

	repo := &mockProductRepo{
		findOrphanedImagesFunc: func(ctx context.Context, deletedBefore time.Time) ([]*domain.ProductImage, error) {
			return []*domain.ProductImage{image}, nil
		},
		deleteImagesFunc: func(ctx context.Context, ids []uuid.UUID) error {
			return errors.New("database error")
		},
	}
	store := client.NewMockImageStore()

	job := NewImageCleanupJob(repo, store, zap.NewNop(), 30*24*time.Hour)

	// Run must not panic when the batch delete fails
	job.Run()

	assert.Equal(t, []string{image.ImageKey}, store.Deleted)
}

func TestImageCleanupJob_StartStop(t *testing.T) {
	repo := &mockProductRepo{
		findOrphanedImagesFunc: func(ctx context.Context, deletedBefore time.Time) ([]*domain.ProductImage, error) {
			return nil, nil
		},
	}

	job := NewImageCleanupJob(repo, client.NewMockImageStore(), zap.NewNop(), 30*24*time.Hour)
	done := job.Start(time.Hour)
	close(done)
}
