package datamuse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClient_Related(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/words", r.URL.Path)
		w.Write([]byte(`[{"word":"happy","score":900},{"word":""},{"word":"glad","score":800}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())
	words, err := c.Related(context.Background(), "joyful", Synonyms)

	require.NoError(t, err)
	assert.Equal(t, "rel_syn=joyful", gotQuery)
	assert.Equal(t, []string{"happy", "glad"}, words)
}

func TestClient_Related_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "non-success status", status: http.StatusBadGateway, body: `[]`},
		{name: "not an array", status: http.StatusOK, body: `{"word":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, zap.NewNop())
			words, err := c.Related(context.Background(), "cold", Antonyms)

			assert.Error(t, err)
			assert.Nil(t, words)
		})
	}
}

func TestClient_Related_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())
	words, err := c.Related(context.Background(), "xyzzy", Antonyms)

	require.NoError(t, err)
	assert.Empty(t, words)
}
