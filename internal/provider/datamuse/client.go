package datamuse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const DefaultBaseURL = "https://api.datamuse.com"

// Relation selects the thesaurus relation to query
type Relation string

const (
	Synonyms Relation = "rel_syn"
	Antonyms Relation = "rel_ant"
)

type apiWord struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// Client queries the Datamuse words endpoint
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Datamuse client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger.With(zap.String("provider", "datamuse")),
	}
}

// Related returns words related to word by rel, in the order the API ranks them.
func (c *Client) Related(ctx context.Context, word string, rel Relation) ([]string, error) {
	q := url.Values{}
	q.Set(string(rel), word)
	reqURL := c.baseURL + "/words?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("datamuse: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("datamuse: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("datamuse: unexpected status %d", resp.StatusCode)
	}

	var items []apiWord
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("datamuse: decode json: %w", err)
	}

	words := make([]string, 0, len(items))
	for _, it := range items {
		if it.Word != "" {
			words = append(words, it.Word)
		}
	}

	c.logger.Debug("Related words fetched",
		zap.String("word", word),
		zap.String("relation", string(rel)),
		zap.Int("count", len(words)),
	)
	return words, nil
}
