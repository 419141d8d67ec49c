package imageload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wordlens/internal/domain"
)

// maxImageBytes caps how much of one image is read
const maxImageBytes = 10 << 20

// Loader fetches images over HTTP so they are warm in upstream and proxy caches
type Loader struct {
	httpClient *http.Client
}

// NewLoader creates an HTTP image loader
func NewLoader(timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Loader{httpClient: &http.Client{Timeout: timeout}}
}

// Load downloads url, sending an RFC 9218 priority hint
func (l *Loader) Load(ctx context.Context, url string, priority domain.ImagePriority) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("imageload: create request: %w", err)
	}
	req.Header.Set("Accept", "image/*")
	req.Header.Set("Priority", priorityHeader(priority))

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("imageload: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("imageload: unexpected status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("imageload: not an image: %s", ct)
	}

	if _, err := io.Copy(io.Discard, io.LimitReader(resp.Body, maxImageBytes)); err != nil {
		return fmt.Errorf("imageload: read body: %w", err)
	}
	return nil
}

func priorityHeader(p domain.ImagePriority) string {
	if p == domain.PriorityHigh {
		return "u=1"
	}
	return "u=6"
}
