package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"wordlens/internal/domain"
	"wordlens/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockImages struct {
	mock.Mock
}

func (m *mockImages) Search(ctx context.Context, word string) ([]byte, error) {
	args := m.Called(ctx, word)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type stubFetcher struct {
	result *domain.LookupResult
	err    error
	words  []string
}

func (f *stubFetcher) Fetch(_ context.Context, word string) (*domain.LookupResult, error) {
	f.words = append(f.words, word)
	return f.result, f.err
}

func serve(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRouter_Health(t *testing.T) {
	h := NewRouter(new(mockImages), &stubFetcher{}, testutil.NewTestLogger())

	rec := serve(h, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRouter_ImageProxy(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		setup          func(m *mockImages)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "success",
			target: "/api/pixabay?word=cat",
			setup: func(m *mockImages) {
				m.On("Search", mock.Anything, "cat").Return([]byte(`{"total":1,"totalHits":1,"hits":[]}`), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"total":1,"totalHits":1,"hits":[]}`,
		},
		{
			name:           "missing word",
			target:         "/api/pixabay",
			setup:          func(m *mockImages) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"missing word"}`,
		},
		{
			name:           "blank word",
			target:         "/api/pixabay?word=%20%20",
			setup:          func(m *mockImages) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"missing word"}`,
		},
		{
			name:   "upstream failure",
			target: "/api/pixabay?word=cat",
			setup: func(m *mockImages) {
				m.On("Search", mock.Anything, "cat").Return(nil, domain.NewFetchError("pixabay", errors.New("status 400")))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Failed to fetch image data"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			images := new(mockImages)
			tt.setup(images)
			h := NewRouter(images, &stubFetcher{}, testutil.NewTestLogger())

			rec := serve(h, tt.target)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			assert.Equal(t, proxyCacheControl, rec.Header().Get("Cache-Control"))
			images.AssertExpectations(t)
		})
	}
}

func TestRouter_LookupJSON(t *testing.T) {
	fetcher := &stubFetcher{result: testutil.NewTestResult("cat", "u1")}
	h := NewRouter(new(mockImages), fetcher, testutil.NewTestLogger())

	rec := serve(h, "/api/lookup?word=%20Cat&clickable=true")

	require.Equal(t, http.StatusOK, rec.Code)
	var plan domain.RenderPlan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))
	assert.Equal(t, "Cat", plan.Title)
	assert.True(t, plan.Clickable)
	assert.Equal(t, []string{"u1"}, plan.Carousel.URLs())
	assert.Equal(t, []string{"cat"}, fetcher.words)
}

func TestRouter_LookupJSON_Failure(t *testing.T) {
	fetcher := &stubFetcher{err: domain.NewFetchError("dictionary", errors.New("timeout"))}
	h := NewRouter(new(mockImages), fetcher, testutil.NewTestLogger())

	rec := serve(h, "/api/lookup?word=cat")

	require.Equal(t, http.StatusOK, rec.Code)
	var plan domain.RenderPlan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))
	assert.True(t, plan.IsError)
	assert.Equal(t, "Word not found or connection error occurred", plan.Message)
}

func TestRouter_LookupEmptyWord(t *testing.T) {
	fetcher := &stubFetcher{}
	h := NewRouter(new(mockImages), fetcher, testutil.NewTestLogger())

	rec := serve(h, "/api/lookup")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Enter a word to see its definition")
	assert.Empty(t, fetcher.words)
}

func TestRouter_LookupInvalidClickable(t *testing.T) {
	h := NewRouter(new(mockImages), &stubFetcher{}, testutil.NewTestLogger())

	rec := serve(h, "/api/lookup?word=cat&clickable=maybe")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_LookupHTML(t *testing.T) {
	fetcher := &stubFetcher{result: testutil.NewTestMiss("xyzzy")}
	h := NewRouter(new(mockImages), fetcher, testutil.NewTestLogger())

	rec := serve(h, "/lookup?word=xyzzy")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `No definition found for &#34;xyzzy&#34;`)
}

func TestRequestID_Propagates(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", rec.Header().Get(requestIDHeader))
}

func TestRecovery(t *testing.T) {
	h := Recovery(testutil.NewTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
