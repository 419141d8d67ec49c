package pixabay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://pixabay.com/api/"
	userAgent      = "DictionaryLensPlus/1.0"
)

// Hit is one image record. Fields are passed through untouched except for
// the URL fallback applied by Shape.
type Hit map[string]any

// Response is the upstream search payload
type Response struct {
	Total     int   `json:"total"`
	TotalHits int   `json:"totalHits"`
	Hits      []Hit `json:"hits"`
}

// Shape fills webformatURL from previewURL when the former is missing.
func (r *Response) Shape() {
	if r.Hits == nil {
		r.Hits = []Hit{}
	}
	for _, h := range r.Hits {
		if s, _ := h["webformatURL"].(string); s != "" {
			continue
		}
		if p, ok := h["previewURL"]; ok {
			h["webformatURL"] = p
		}
	}
}

// Client searches Pixabay with the server-side API key
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient creates a rate-limited Pixabay client allowing perMinute requests
func NewClient(baseURL, apiKey string, perMinute int, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if perMinute <= 0 {
		perMinute = 100
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		logger:     logger.With(zap.String("provider", "pixabay")),
	}
}

// Search returns popular safe-search photos for word
func (c *Client) Search(ctx context.Context, word string) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("pixabay: rate limit: %w", err)
	}

	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("q", word)
	q.Set("image_type", "photo")
	q.Set("per_page", "12")
	q.Set("min_width", "640")
	q.Set("min_height", "480")
	q.Set("safesearch", "true")
	q.Set("order", "popular")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("pixabay: create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pixabay: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("pixabay: API responded with status: %d", resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("pixabay: decode json: %w", err)
	}

	c.logger.Debug("Pixabay search done", zap.String("word", word), zap.Int("hits", len(out.Hits)))
	return &out, nil
}
