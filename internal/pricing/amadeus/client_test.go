package amadeus_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awardpilot/awardpilot/internal/pricing"
	"github.com/awardpilot/awardpilot/internal/pricing/amadeus"
)

func newStubServer(t *testing.T, offersHandler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var tokenCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-123",
			"expires_in":   1799,
		})
	})
	mux.HandleFunc("/v2/shopping/flight-offers", offersHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &tokenCalls
}

func TestClient_LowestFare(t *testing.T) {
	server, tokenCalls := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "OPO", r.URL.Query().Get("originLocationCode"))
		assert.Equal(t, "ORD", r.URL.Query().Get("destinationLocationCode"))
		assert.Equal(t, "2026-05-27", r.URL.Query().Get("departureDate"))
		assert.Equal(t, "1", r.URL.Query().Get("adults"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"price": map[string]string{"total": "684.20"}},
				{"price": map[string]string{"total": "612.00"}},
				{"price": map[string]string{"total": "not-a-number"}},
				{"price": map[string]string{"total": "799.99"}},
			},
		})
	})

	client := amadeus.NewClient(amadeus.ClientConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		BaseURL:      server.URL,
	})

	fare, err := client.LowestFare(context.Background(), "opo", "ord", "2026-05-27")
	require.NoError(t, err)
	assert.Equal(t, 612.0, fare)
	assert.Equal(t, int32(1), tokenCalls.Load())
}

func TestClient_TokenReused(t *testing.T) {
	server, tokenCalls := newStubServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"price": map[string]string{"total": "500.00"}}},
		})
	})

	client := amadeus.NewClient(amadeus.ClientConfig{
		ClientID: "id", ClientSecret: "secret", BaseURL: server.URL,
	})

	_, err := client.LowestFare(context.Background(), "OPO", "ORD", "2026-05-27")
	require.NoError(t, err)
	_, err = client.LowestFare(context.Background(), "AMS", "MSP", "2026-07-27")
	require.NoError(t, err)

	assert.Equal(t, int32(1), tokenCalls.Load(), "token should be fetched once and reused")
}

func TestClient_NoOffers(t *testing.T) {
	server, _ := newStubServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{}})
	})

	client := amadeus.NewClient(amadeus.ClientConfig{
		ClientID: "id", ClientSecret: "secret", BaseURL: server.URL,
	})

	_, err := client.LowestFare(context.Background(), "OPO", "ORD", "2026-05-27")

	var ue *pricing.UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, pricing.KindNoResults, ue.Kind)
}

func TestClient_StatusClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected pricing.Kind
	}{
		{"rate limited", http.StatusTooManyRequests, pricing.KindRateLimited},
		{"unauthorized", http.StatusUnauthorized, pricing.KindAuthFailed},
		{"forbidden", http.StatusForbidden, pricing.KindAuthFailed},
		{"bad request", http.StatusBadRequest, pricing.KindNoResults},
		{"teapot", http.StatusTeapot, pricing.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newStubServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})

			client := amadeus.NewClient(amadeus.ClientConfig{
				ClientID: "id", ClientSecret: "secret", BaseURL: server.URL,
			})

			_, err := client.LowestFare(context.Background(), "OPO", "ORD", "2026-05-27")

			var ue *pricing.UpstreamError
			require.True(t, errors.As(err, &ue))
			assert.Equal(t, tt.expected, ue.Kind)
		})
	}
}

func TestClient_TokenAuthFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := amadeus.NewClient(amadeus.ClientConfig{
		ClientID: "bad", ClientSecret: "creds", BaseURL: server.URL,
	})

	_, err := client.LowestFare(context.Background(), "OPO", "ORD", "2026-05-27")

	var ue *pricing.UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, pricing.KindAuthFailed, ue.Kind)
}
