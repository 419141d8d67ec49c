package service

import (
	"context"
	"sync"
	"time"

	"wordlens/internal/domain"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	preloadBatchSize    = 3
	defaultPreloadPause = 100 * time.Millisecond
)

// ImageLoader fetches one image at the given priority
type ImageLoader interface {
	Load(ctx context.Context, url string, priority domain.ImagePriority) error
}

// Preloader warms images in priority order and remembers what has loaded
type Preloader struct {
	loader ImageLoader
	clock  clockwork.Clock
	pause  time.Duration
	logger *zap.Logger

	mu     sync.RWMutex
	loaded map[string]struct{}
}

// NewPreloader creates a preloader that waits pause between low-priority batches
func NewPreloader(loader ImageLoader, clock clockwork.Clock, pause time.Duration, logger *zap.Logger) *Preloader {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if pause < 0 {
		pause = defaultPreloadPause
	}
	return &Preloader{
		loader: loader,
		clock:  clock,
		pause:  pause,
		logger: logger,
		loaded: make(map[string]struct{}),
	}
}

// Preload loads urls[0] alone at high priority, then the rest in batches of
// three at low priority. Failures are logged and dropped; the result holds the
// loaded URLs in their original order.
func (p *Preloader) Preload(ctx context.Context, urls []string) []string {
	if len(urls) == 0 {
		return []string{}
	}

	ok := make([]bool, len(urls))
	ok[0] = p.load(ctx, urls[0], domain.PriorityHigh)

	for start := 1; start < len(urls); start += preloadBatchSize {
		if start > 1 && !p.sleep(ctx) {
			break
		}

		end := min(start+preloadBatchSize, len(urls))
		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				ok[i] = p.load(ctx, urls[i], domain.PriorityLow)
			}(i)
		}
		wg.Wait()
	}

	loaded := make([]string, 0, len(urls))
	for i, u := range urls {
		if ok[i] {
			loaded = append(loaded, u)
		}
	}

	if failed := len(urls) - len(loaded); failed > 0 {
		p.logger.Info("Image preload finished with failures",
			zap.Int("loaded", len(loaded)),
			zap.Int("failed", failed),
		)
	}
	return loaded
}

// IsLoaded reports whether url is in the preloaded set
func (p *Preloader) IsLoaded(url string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.loaded[url]
	return ok
}

func (p *Preloader) load(ctx context.Context, url string, priority domain.ImagePriority) bool {
	if p.IsLoaded(url) {
		return true
	}

	if err := p.loader.Load(ctx, url, priority); err != nil {
		p.logger.Warn("Failed to preload image",
			zap.String("url", url),
			zap.String("priority", string(priority)),
			zap.Error(err),
		)
		return false
	}

	p.mu.Lock()
	p.loaded[url] = struct{}{}
	p.mu.Unlock()
	return true
}

func (p *Preloader) sleep(ctx context.Context) bool {
	if p.pause == 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-p.clock.After(p.pause):
		return true
	}
}
