package memory

import (
	"context"
	"time"

	"wordlens/internal/domain"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCapacity = 512

// ImageCacheRepo is an in-process LRU implementation of
// repository.ImageCacheRepository for deployments without a database
type ImageCacheRepo struct {
	cache *lru.Cache[string, domain.ImageSearch]
	now   func() time.Time
}

// NewImageCacheRepo creates a cache holding at most capacity words
func NewImageCacheRepo(capacity int) (*ImageCacheRepo, error) {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	c, err := lru.New[string, domain.ImageSearch](capacity)
	if err != nil {
		return nil, err
	}
	return &ImageCacheRepo{cache: c, now: time.Now}, nil
}

// GetFresh returns the payload if it is younger than maxAge
func (r *ImageCacheRepo) GetFresh(_ context.Context, word string, maxAge time.Duration) (*domain.ImageSearch, error) {
	s, ok := r.cache.Get(word)
	if !ok || r.now().Sub(s.FetchedAt) >= maxAge {
		return nil, nil
	}
	s.Payload = append([]byte(nil), s.Payload...)
	return &s, nil
}

// Save stores a copy of search
func (r *ImageCacheRepo) Save(_ context.Context, search *domain.ImageSearch) error {
	s := *search
	s.Payload = append([]byte(nil), search.Payload...)
	r.cache.Add(s.Word, s)
	return nil
}

// CleanStale removes entries older than maxAge
func (r *ImageCacheRepo) CleanStale(_ context.Context, maxAge time.Duration) (int64, error) {
	now := r.now()
	var removed int64
	for _, k := range r.cache.Keys() {
		s, ok := r.cache.Peek(k)
		if ok && now.Sub(s.FetchedAt) > maxAge {
			r.cache.Remove(k)
			removed++
		}
	}
	return removed, nil
}
