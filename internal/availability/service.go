package availability

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the availability service.
type ServiceConfig struct {
	// Provider is the upstream availability source.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long availability stays cached (default: 30 minutes).
	// Award space moves fast; this is the shortest-lived gateway cache.
	CacheTTL time.Duration
}

// Service caches award availability per (origin, destination, date).
type Service struct {
	provider Provider
	logger   zerolog.Logger
	cacheTTL time.Duration

	mu          sync.RWMutex
	cache       map[string]*cachedResult
	lastSweep   time.Time
	sweepPeriod time.Duration
}

type cachedResult struct {
	result    Result
	expiresAt time.Time
}

// NewService creates an availability service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 30 * time.Minute
	}

	return &Service{
		provider:    cfg.Provider,
		logger:      cfg.Logger,
		cacheTTL:    cacheTTL,
		cache:       make(map[string]*cachedResult),
		sweepPeriod: 10 * time.Minute,
	}
}

// Search returns economy-available award entries sorted ascending by miles.
// Missing credentials and upstream failures come back as typed statuses,
// never as errors. Only successful results are cached, so a transient
// failure can be retried immediately.
func (s *Service) Search(ctx context.Context, origin, destination, date string) Result {
	key := cacheKey(origin, destination, date)

	s.mu.RLock()
	if c, ok := s.cache[key]; ok && time.Now().Before(c.expiresAt) {
		s.mu.RUnlock()
		return c.result
	}
	s.mu.RUnlock()

	return s.fetch(ctx, origin, destination, date, key)
}

func (s *Service) fetch(ctx context.Context, origin, destination, date, key string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.cache[key]; ok && time.Now().Before(c.expiresAt) {
		return c.result
	}

	now := time.Now()
	entries, err := s.provider.Search(ctx, origin, destination, date)
	if err != nil {
		if errors.Is(err, ErrKeyRequired) {
			return Result{
				Status:    StatusKeyRequired,
				Source:    s.provider.Name(),
				Message:   "availability search needs an API key — see server configuration",
				FetchedAt: now,
			}
		}

		s.logger.Warn().Err(err).
			Str("origin", origin).
			Str("destination", destination).
			Msg("availability fetch failed")

		return Result{
			Status:    StatusError,
			Source:    s.provider.Name(),
			Message:   "availability temporarily unavailable — check the program site directly",
			FetchedAt: now,
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Miles < entries[j].Miles })

	result := Result{
		Status:    StatusOK,
		Entries:   entries,
		Source:    s.provider.Name(),
		FetchedAt: now,
	}
	s.cache[key] = &cachedResult{result: result, expiresAt: now.Add(s.cacheTTL)}
	s.sweepIfDue(now)

	return result
}

// CheapestFor returns the lowest-mileage entry for one program within a
// result, matching on the provider's program code.
func (r Result) CheapestFor(programCode string) (Entry, bool) {
	if r.Status != StatusOK || programCode == "" {
		return Entry{}, false
	}
	for _, e := range r.Entries {
		if strings.EqualFold(e.Program, programCode) {
			return e, true
		}
	}
	return Entry{}, false
}

func (s *Service) sweepIfDue(now time.Time) {
	if now.Sub(s.lastSweep) < s.sweepPeriod {
		return
	}
	s.lastSweep = now

	for key, c := range s.cache {
		if now.After(c.expiresAt) {
			delete(s.cache, key)
		}
	}
}

func cacheKey(origin, destination, date string) string {
	return strings.ToUpper(origin) + "|" + strings.ToUpper(destination) + "|" + date
}
