package service

import (
	"context"
	"time"

	"wordlens/internal/repository"

	"go.uber.org/zap"
)

const DefaultImageCacheRetention = 10 * time.Minute

// CleanupService prunes stale image cache entries
type CleanupService struct {
	cache     repository.ImageCacheRepository
	retention time.Duration
	logger    *zap.Logger
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(cache repository.ImageCacheRepository, retention time.Duration, logger *zap.Logger) *CleanupService {
	if retention <= 0 {
		retention = DefaultImageCacheRetention
	}
	return &CleanupService{
		cache:     cache,
		retention: retention,
		logger:    logger,
	}
}

// CleanupStale removes cached image searches older than the retention period
func (s *CleanupService) CleanupStale(ctx context.Context) error {
	s.logger.Debug("Starting image cache cleanup", zap.Duration("retention", s.retention))

	n, err := s.cache.CleanStale(ctx, s.retention)
	if err != nil {
		s.logger.Error("Failed to cleanup image cache", zap.Error(err))
		return err
	}

	s.logger.Info("Image cache cleanup completed", zap.Int64("removed", n))
	return nil
}
