package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wordlens/internal/domain"
	"wordlens/internal/provider/pixabay"
	"wordlens/internal/repository"

	"go.uber.org/zap"
)

const DefaultImageCacheFresh = 5 * time.Minute

// ImageSearcher queries the upstream image search
type ImageSearcher interface {
	Search(ctx context.Context, word string) (*pixabay.Response, error)
}

// ImageSearchService serves shaped image search payloads, reusing cached
// responses while they are fresh
type ImageSearchService struct {
	searcher ImageSearcher
	cache    repository.ImageCacheRepository
	fresh    time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewImageSearchService creates the proxy service. A nil cache disables caching.
func NewImageSearchService(
	searcher ImageSearcher,
	cache repository.ImageCacheRepository,
	fresh time.Duration,
	logger *zap.Logger,
) *ImageSearchService {
	if fresh <= 0 {
		fresh = DefaultImageCacheFresh
	}
	return &ImageSearchService{
		searcher: searcher,
		cache:    cache,
		fresh:    fresh,
		now:      time.Now,
		logger:   logger,
	}
}

// Search returns the JSON payload for word
func (s *ImageSearchService) Search(ctx context.Context, word string) ([]byte, error) {
	word = domain.NormalizeWord(word)
	if word == "" {
		return nil, domain.ErrEmptyWord
	}

	if s.cache != nil {
		cached, err := s.cache.GetFresh(ctx, word, s.fresh)
		if err != nil {
			s.logger.Warn("Failed to read image cache", zap.String("word", word), zap.Error(err))
		} else if cached != nil {
			s.logger.Debug("Image cache hit", zap.String("word", word))
			return cached.Payload, nil
		}
	}

	resp, err := s.searcher.Search(ctx, word)
	if err != nil {
		return nil, domain.NewFetchError("pixabay", err)
	}
	resp.Shape()

	payload, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image payload: %w", err)
	}

	if s.cache != nil {
		search := &domain.ImageSearch{Word: word, Payload: payload, FetchedAt: s.now()}
		if err := s.cache.Save(ctx, search); err != nil {
			s.logger.Warn("Failed to save image cache", zap.String("word", word), zap.Error(err))
		}
	}

	return payload, nil
}
