package repository

import (
	"context"
	"time"

	"wordlens/internal/domain"
)

// ImageCacheRepository stores shaped image proxy payloads per word
type ImageCacheRepository interface {
	// GetFresh returns the payload for word if fetched within maxAge, nil otherwise
	GetFresh(ctx context.Context, word string, maxAge time.Duration) (*domain.ImageSearch, error)
	Save(ctx context.Context, search *domain.ImageSearch) error
	// CleanStale deletes entries older than maxAge and returns how many went
	CleanStale(ctx context.Context, maxAge time.Duration) (int64, error)
}
