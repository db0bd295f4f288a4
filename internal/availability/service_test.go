package availability_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awardpilot/awardpilot/internal/availability"
)

type mockProvider struct {
	mu      sync.Mutex
	calls   int
	entries []availability.Entry
	err     error
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Search(_ context.Context, _, _, _ string) ([]availability.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.entries, nil
}

func (m *mockProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func newService(p *mockProvider) *availability.Service {
	return availability.NewService(availability.ServiceConfig{
		Provider: p,
		Logger:   zerolog.Nop(),
		CacheTTL: 30 * time.Minute,
	})
}

func TestService_Search_SortsAscendingByMiles(t *testing.T) {
	provider := &mockProvider{entries: []availability.Entry{
		{Program: "delta", Miles: 35000, SeatsRemaining: 4},
		{Program: "flyingblue", Miles: 22500, SeatsRemaining: 2},
		{Program: "virginatlantic", Miles: 30000, SeatsRemaining: 9},
	}}
	service := newService(provider)

	result := service.Search(context.Background(), "OPO", "ORD", "2026-05-27")

	require.Equal(t, availability.StatusOK, result.Status)
	require.Len(t, result.Entries, 3)
	assert.Equal(t, "flyingblue", result.Entries[0].Program)
	assert.Equal(t, "virginatlantic", result.Entries[1].Program)
	assert.Equal(t, "delta", result.Entries[2].Program)
}

func TestService_Search_EmptyListIsOK(t *testing.T) {
	provider := &mockProvider{}
	service := newService(provider)

	result := service.Search(context.Background(), "OPO", "ORD", "2026-05-27")

	assert.Equal(t, availability.StatusOK, result.Status)
	assert.Empty(t, result.Entries)
	assert.Empty(t, result.Message)
}

func TestService_Search_KeyRequired(t *testing.T) {
	provider := &mockProvider{err: availability.ErrKeyRequired}
	service := newService(provider)

	result := service.Search(context.Background(), "OPO", "ORD", "2026-05-27")

	assert.Equal(t, availability.StatusKeyRequired, result.Status)
	assert.NotEmpty(t, result.Message)
	assert.Empty(t, result.Entries)
}

func TestService_Search_UpstreamError(t *testing.T) {
	provider := &mockProvider{err: errors.New("boom")}
	service := newService(provider)

	result := service.Search(context.Background(), "OPO", "ORD", "2026-05-27")

	assert.Equal(t, availability.StatusError, result.Status)
	assert.NotEmpty(t, result.Message)
}

func TestService_Search_CachesOnlySuccess(t *testing.T) {
	provider := &mockProvider{err: errors.New("boom")}
	service := newService(provider)

	service.Search(context.Background(), "OPO", "ORD", "2026-05-27")
	service.Search(context.Background(), "OPO", "ORD", "2026-05-27")
	assert.Equal(t, 2, provider.callCount(), "errors are not cached")

	provider.mu.Lock()
	provider.err = nil
	provider.mu.Unlock()

	first := service.Search(context.Background(), "OPO", "ORD", "2026-05-27")
	second := service.Search(context.Background(), "OPO", "ORD", "2026-05-27")
	assert.Equal(t, 3, provider.callCount(), "success is cached")
	assert.Equal(t, first.FetchedAt, second.FetchedAt)
}

func TestResult_CheapestFor(t *testing.T) {
	result := availability.Result{
		Status: availability.StatusOK,
		Entries: []availability.Entry{
			{Program: "flyingblue", Miles: 22500},
			{Program: "flyingblue", Miles: 40000},
			{Program: "delta", Miles: 35000},
		},
	}

	entry, ok := result.CheapestFor("flyingblue")
	require.True(t, ok)
	assert.Equal(t, 22500, entry.Miles)

	entry, ok = result.CheapestFor("FlyingBlue")
	require.True(t, ok, "program code match is case-insensitive")
	assert.Equal(t, 22500, entry.Miles)

	_, ok = result.CheapestFor("aeroplan")
	assert.False(t, ok)

	_, ok = availability.Result{Status: availability.StatusError}.CheapestFor("delta")
	assert.False(t, ok, "degraded results never yield entries")
}
