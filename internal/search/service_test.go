package search_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awardpilot/awardpilot/internal/search"
)

type mockProvider struct {
	mu      sync.Mutex
	calls   int
	queries []string
	results []search.Result
	err     error
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Search(_ context.Context, query string) ([]search.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.queries = append(m.queries, query)
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func (m *mockProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func newService(p *mockProvider) *search.Service {
	return search.NewService(search.ServiceConfig{
		Provider: p,
		Logger:   zerolog.Nop(),
		CacheTTL: 6 * time.Hour,
	})
}

func estimateRequest() search.EstimateRequest {
	return search.EstimateRequest{
		Origin:      "OPO",
		Destination: "ORD",
		OriginCity:  "Porto",
		DestCity:    "Chicago",
		ProgramID:   "flyingblue",
		ProgramName: "Flying Blue (Air France/KLM)",
		Date:        "2026-05-27",
	}
}

func TestService_MilesEstimate(t *testing.T) {
	provider := &mockProvider{results: []search.Result{
		{Title: "Flying Blue award chart", Description: "OPO to ORD runs 22,500 miles one-way in economy"},
		{Title: "Trip report", Description: "we paid 22,500 miles plus taxes"},
	}}
	service := newService(provider)

	est := service.MilesEstimate(context.Background(), estimateRequest())

	require.True(t, est.Found)
	assert.Equal(t, 22500, est.Miles)
	assert.Equal(t, search.SourceCommunityEstimate, est.Source)
	assert.Equal(t, search.ConfidenceLow, est.Confidence)
	assert.Equal(t, 3, provider.callCount(), "all three query phrasings should run")
}

func TestService_MilesEstimate_QueriesIncludeProgramAndYear(t *testing.T) {
	provider := &mockProvider{}
	service := newService(provider)

	service.MilesEstimate(context.Background(), estimateRequest())

	provider.mu.Lock()
	defer provider.mu.Unlock()
	require.Len(t, provider.queries, 3)
	assert.Contains(t, provider.queries[0], "Flying Blue")
	assert.Contains(t, provider.queries[0], "2026")
	assert.Contains(t, provider.queries[1], "Porto")
	assert.Contains(t, provider.queries[1], "Chicago")
}

func TestService_MilesEstimate_NoMatches(t *testing.T) {
	provider := &mockProvider{results: []search.Result{
		{Title: "Cheap flights Porto Chicago", Description: "fares from $450"},
	}}
	service := newService(provider)

	est := service.MilesEstimate(context.Background(), estimateRequest())

	assert.False(t, est.Found)
	assert.Equal(t, search.SourceNotFound, est.Source)
	assert.Equal(t, search.ConfidenceNone, est.Confidence)
}

func TestService_MilesEstimate_ProviderErrorDegradesToNoEstimate(t *testing.T) {
	provider := &mockProvider{err: errors.New("upstream down")}
	service := newService(provider)

	est := service.MilesEstimate(context.Background(), estimateRequest())

	assert.False(t, est.Found)
	assert.Equal(t, search.SourceNotFound, est.Source)
}

func TestService_MilesEstimate_CacheHit(t *testing.T) {
	provider := &mockProvider{results: []search.Result{
		{Title: "chart", Description: "22,500 miles"},
	}}
	service := newService(provider)

	first := service.MilesEstimate(context.Background(), estimateRequest())
	second := service.MilesEstimate(context.Background(), estimateRequest())

	assert.Equal(t, 3, provider.callCount(), "cache hit must not re-query")
	assert.Equal(t, first.FetchedAt, second.FetchedAt)
	assert.Equal(t, first.Miles, second.Miles)
}

func TestService_MilesEstimate_NotFoundAlsoCached(t *testing.T) {
	provider := &mockProvider{}
	service := newService(provider)

	service.MilesEstimate(context.Background(), estimateRequest())
	service.MilesEstimate(context.Background(), estimateRequest())

	assert.Equal(t, 3, provider.callCount(), "a no-estimate result is cached too")
}

func TestService_MilesEstimate_UnknownProgramFallsBackToName(t *testing.T) {
	provider := &mockProvider{}
	service := newService(provider)

	req := estimateRequest()
	req.ProgramID = "prg_custom"
	req.ProgramName = "TAP Miles&Go"
	service.MilesEstimate(context.Background(), req)

	provider.mu.Lock()
	defer provider.mu.Unlock()
	assert.Contains(t, provider.queries[0], "TAP Miles&Go")
}
