package brave_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awardpilot/awardpilot/internal/search/brave"
)

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/res/v1/web/search", r.URL.Path)
		assert.Equal(t, "flying blue OPO ORD miles", r.URL.Query().Get("q"))
		assert.Equal(t, "8", r.URL.Query().Get("count"))
		assert.Equal(t, "py", r.URL.Query().Get("freshness"))
		assert.Equal(t, "test-key", r.Header.Get("X-Subscription-Token"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"web": map[string]any{
				"results": []map[string]string{
					{"title": "Award chart", "description": "22,500 miles one-way"},
					{"title": "Trip report", "description": "booked in economy"},
				},
			},
		})
	}))
	defer server.Close()

	client := brave.NewClient(brave.ClientConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})

	results, err := client.Search(context.Background(), "flying blue OPO ORD miles")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Award chart", results[0].Title)
	assert.Equal(t, "22,500 miles one-way", results[0].Description)
}

func TestClient_Search_NoAPIKey(t *testing.T) {
	client := brave.NewClient(brave.ClientConfig{})

	_, err := client.Search(context.Background(), "anything")
	assert.True(t, errors.Is(err, brave.ErrNoAPIKey))
}

func TestClient_Search_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := brave.NewClient(brave.ClientConfig{APIKey: "k", BaseURL: server.URL})

	_, err := client.Search(context.Background(), "anything")
	assert.Error(t, err)
}

func TestClient_Search_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer server.Close()

	client := brave.NewClient(brave.ClientConfig{APIKey: "k", BaseURL: server.URL})

	results, err := client.Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, results)
}
