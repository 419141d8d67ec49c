package dictapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"wordlens/internal/domain"

	"go.uber.org/zap"
)

const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2"

// Client fetches definitions from the free dictionary API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a dictionary client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger.With(zap.String("provider", "dictapi")),
	}
}

// Lookup returns the first matching entry for word.
// A missing word is not an error: the returned MissReason says why there is no record.
func (c *Client) Lookup(ctx context.Context, word string) (*domain.DefinitionRecord, domain.MissReason, error) {
	reqURL := c.baseURL + "/entries/en/" + url.PathEscape(word)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, domain.MissNone, fmt.Errorf("dictapi: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.MissNone, fmt.Errorf("dictapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.logger.Debug("Word not in dictionary", zap.String("word", word))
		return nil, domain.MissNotFound, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.MissNone, fmt.Errorf("dictapi: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.MissNone, fmt.Errorf("dictapi: read body: %w", err)
	}

	return decode(body)
}

// decode interprets a 2xx body. Arrays are entries; an object is the API's
// "no definitions" reply.
func decode(body []byte) (*domain.DefinitionRecord, domain.MissReason, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var apiErr apiError
		if err := json.Unmarshal(trimmed, &apiErr); err != nil {
			return nil, domain.MissNone, fmt.Errorf("dictapi: decode json: %w", err)
		}
		return nil, domain.MissNotFound, nil
	}

	var entries []apiEntry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, domain.MissNone, fmt.Errorf("dictapi: decode json: %w", err)
	}
	if len(entries) == 0 || len(entries[0].Meanings) == 0 {
		return nil, domain.MissInvalidShape, nil
	}

	return mapEntry(entries[0]), domain.MissNone, nil
}

func mapEntry(e apiEntry) *domain.DefinitionRecord {
	rec := &domain.DefinitionRecord{Phonetic: e.Phonetic}
	if rec.Phonetic == "" {
		for _, ph := range e.Phonetics {
			if ph.Text != "" {
				rec.Phonetic = ph.Text
				break
			}
		}
	}

	for _, m := range e.Meanings {
		meaning := domain.Meaning{
			PartOfSpeech: m.PartOfSpeech,
			Definitions:  make([]domain.Definition, 0, len(m.Definitions)),
		}
		for _, d := range m.Definitions {
			meaning.Definitions = append(meaning.Definitions, domain.Definition{
				Text:    d.Definition,
				Example: d.Example,
			})
		}
		rec.Meanings = append(rec.Meanings, meaning)
	}
	return rec
}
