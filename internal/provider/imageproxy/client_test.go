package imageproxy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClient_Images(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []string
	}{
		{
			name:     "webformat preferred",
			body:     `{"hits":[{"webformatURL":"https://img/1.jpg","previewURL":"https://img/1p.jpg"}]}`,
			expected: []string{"https://img/1.jpg"},
		},
		{
			name:     "preview fallback",
			body:     `{"hits":[{"previewURL":"https://img/2p.jpg"},{"webformatURL":"https://img/3.jpg"}]}`,
			expected: []string{"https://img/2p.jpg", "https://img/3.jpg"},
		},
		{
			name:     "hit without urls skipped",
			body:     `{"hits":[{"id":1},{"webformatURL":"https://img/4.jpg"}]}`,
			expected: []string{"https://img/4.jpg"},
		},
		{
			name:     "missing hits",
			body:     `{"total":0}`,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "red fox", r.URL.Query().Get("word"))
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL+"/api/pixabay", zap.NewNop())
			urls, err := c.Images(context.Background(), "red fox")

			require.NoError(t, err)
			assert.Equal(t, tt.expected, urls)
		})
	}
}

func TestClient_Images_ProxyError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to fetch image data"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())
	urls, err := c.Images(context.Background(), "cat")

	assert.Error(t, err)
	assert.Nil(t, urls)
}
