package imageproxy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

type proxyHit struct {
	WebformatURL string `json:"webformatURL"`
	PreviewURL   string `json:"previewURL"`
}

type proxyResponse struct {
	Hits []proxyHit `json:"hits"`
}

// Client calls the image proxy route (GET /api/pixabay?word=)
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the proxy at endpoint, e.g. http://localhost:8080/api/pixabay
func NewClient(endpoint string, logger *zap.Logger) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger.With(zap.String("provider", "imageproxy")),
	}
}

// Images returns image URLs for word. An empty or missing hit list is not an error.
func (c *Client) Images(ctx context.Context, word string) ([]string, error) {
	reqURL := c.endpoint + "?word=" + url.QueryEscape(word)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("imageproxy: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imageproxy: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("imageproxy: unexpected status %d", resp.StatusCode)
	}

	var body proxyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("imageproxy: decode json: %w", err)
	}

	return imageURLs(body.Hits), nil
}

// imageURLs prefers webformatURL and falls back to previewURL
func imageURLs(hits []proxyHit) []string {
	urls := make([]string, 0, len(hits))
	for _, h := range hits {
		switch {
		case h.WebformatURL != "":
			urls = append(urls, h.WebformatURL)
		case h.PreviewURL != "":
			urls = append(urls, h.PreviewURL)
		}
	}
	return urls
}
