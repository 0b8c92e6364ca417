package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"inventory-api/internal/client"
	"inventory-api/internal/repository"
)

// ImageCleanupJob purges gallery images whose parent product has been
// soft-deleted for longer than the retention window. The object is
// removed from the image store first; only images whose objects were
// deleted successfully are removed from the database, so a failed store
// call leaves the record for the next run.
type ImageCleanupJob struct {
	productRepo repository.ProductRepository
	imageStore  client.ImageStore
	logger      *zap.Logger
	retention   time.Duration
}

// NewImageCleanupJob creates a new ImageCleanupJob instance
func NewImageCleanupJob(
	productRepo repository.ProductRepository,
	imageStore client.ImageStore,
	logger *zap.Logger,
	retention time.Duration,
) *ImageCleanupJob {
	return &ImageCleanupJob{
		productRepo: productRepo,
		imageStore:  imageStore,
		logger:      logger,
		retention:   retention,
	}
}

// Run executes a single cleanup pass
func (j *ImageCleanupJob) Run() {
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-j.retention)

	j.logger.Info("Starting image cleanup job",
		zap.Time("cutoff", cutoff),
	)

	orphaned, err := j.productRepo.FindOrphanedImages(ctx, cutoff)
	if err != nil {
		j.logger.Error("Failed to find orphaned product images",
			zap.Error(err),
		)
		return
	}

	if len(orphaned) == 0 {
		j.logger.Info("No orphaned product images found")
		return
	}

	j.logger.Info("Found orphaned product images",
		zap.Int("count", len(orphaned)),
	)

	var deletedIDs []uuid.UUID
	failCount := 0

	for _, image := range orphaned {
		if err := j.imageStore.DeleteImage(ctx, image.ImageKey); err != nil {
			j.logger.Error("Failed to delete image from store",
				zap.String("image_id", image.ID.String()),
				zap.String("image_key", image.ImageKey),
				zap.Error(err),
			)
			failCount++
			continue
		}

		deletedIDs = append(deletedIDs, image.ID)

		j.logger.Debug("Deleted image from store",
			zap.String("image_id", image.ID.String()),
			zap.String("image_key", image.ImageKey),
		)
	}

	if len(deletedIDs) > 0 {
		if err := j.productRepo.DeleteImages(ctx, deletedIDs); err != nil {
			j.logger.Error("Failed to delete image records from database",
				zap.Int("count", len(deletedIDs)),
				zap.Error(err),
			)
		} else {
			j.logger.Info("Deleted image records from database",
				zap.Int("count", len(deletedIDs)),
			)
		}
	}

	j.logger.Info("Image cleanup job completed",
		zap.Int("total_orphaned", len(orphaned)),
		zap.Int("success", len(deletedIDs)),
		zap.Int("failed", failCount),
	)
}

// Start runs the job on a fixed interval until Stop is called. The
// first pass runs after one full interval so startup is not penalized.
func (j *ImageCleanupJob) Start(interval time.Duration) chan struct{} {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				j.Run()
			case <-done:
				return
			}
		}
	}()
	return done
}
