package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"wordlens/internal/domain"
	"wordlens/internal/service"
	"wordlens/internal/view"

	"go.uber.org/zap"
)

const (
	proxyCacheControl = "s-maxage=300, stale-while-revalidate=600"
	msgMissingWord    = "missing word"
	msgImageFailure   = "Failed to fetch image data"
)

// ImageSearcher serves shaped image search payloads
type ImageSearcher interface {
	Search(ctx context.Context, word string) ([]byte, error)
}

// Router serves the image proxy, stateless lookups and health checks
type Router struct {
	images  ImageSearcher
	fetcher service.ResultFetcher
	logger  *zap.Logger
}

// NewRouter creates the HTTP handler with all routes and middleware
func NewRouter(images ImageSearcher, fetcher service.ResultFetcher, logger *zap.Logger) http.Handler {
	rt := &Router{images: images, fetcher: fetcher, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", rt.handleHealth)
	mux.HandleFunc("GET /api/pixabay", rt.handleImages)
	mux.HandleFunc("GET /api/lookup", rt.handleLookupJSON)
	mux.HandleFunc("GET /lookup", rt.handleLookupHTML)

	return Chain(RequestID, Logger(logger), Recovery(logger))(mux)
}

func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleImages is the key-hiding proxy in front of Pixabay
func (rt *Router) handleImages(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", proxyCacheControl)

	word := strings.TrimSpace(r.URL.Query().Get("word"))
	if word == "" {
		writeError(w, http.StatusBadRequest, msgMissingWord)
		return
	}

	payload, err := rt.images.Search(r.Context(), word)
	if err != nil {
		rt.logger.Error("Image search failed",
			zap.String("word", word),
			zap.String("request_id", RequestIDFromCtx(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, msgImageFailure)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (rt *Router) handleLookupJSON(w http.ResponseWriter, r *http.Request) {
	plan, ok := rt.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (rt *Router) handleLookupHTML(w http.ResponseWriter, r *http.Request) {
	plan, ok := rt.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.Render(w, plan); err != nil {
		rt.logger.Error("Failed to render lookup", zap.Error(err))
	}
}

// lookup runs one fetch and projects it. An empty word yields the empty plan.
func (rt *Router) lookup(w http.ResponseWriter, r *http.Request) (domain.RenderPlan, bool) {
	q := r.URL.Query()
	word := domain.NormalizeWord(q.Get("word"))

	clickable := false
	if raw := q.Get("clickable"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid clickable")
			return domain.RenderPlan{}, false
		}
		clickable = v
	}

	if word == "" {
		plan := service.EmptyPlan()
		plan.Clickable = clickable
		return plan, true
	}

	result, err := rt.fetcher.Fetch(r.Context(), word)
	if err != nil && !errors.Is(err, domain.ErrFetchFailure) {
		rt.logger.Warn("Lookup failed", zap.String("word", word), zap.Error(err))
	}
	return service.Project(word, result, err, clickable), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
