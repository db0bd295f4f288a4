package pricing

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the pricing service.
type ServiceConfig struct {
	// Provider is the upstream fare source.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long a fetched fare stays fresh (default: 2 hours).
	CacheTTL time.Duration

	// StaleIfErrorTTL is how long a stale fare may still be served when the
	// provider fails (default: 24 hours). Entries older than this are swept.
	StaleIfErrorTTL time.Duration
}

// Service caches lowest fares per (origin, destination, date) and degrades
// to stale data with a warning when the provider is unavailable.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	cacheTTL        time.Duration
	staleIfErrorTTL time.Duration

	mu          sync.RWMutex
	cache       map[string]*cachedFare
	lastSweep   time.Time
	sweepPeriod time.Duration
}

type cachedFare struct {
	price     float64
	currency  string
	fetchedAt time.Time
	expiresAt time.Time
}

// NewService creates a pricing service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 2 * time.Hour
	}
	staleTTL := cfg.StaleIfErrorTTL
	if staleTTL == 0 {
		staleTTL = 24 * time.Hour
	}

	return &Service{
		provider:        cfg.Provider,
		logger:          cfg.Logger,
		cacheTTL:        cacheTTL,
		staleIfErrorTTL: staleTTL,
		cache:           make(map[string]*cachedFare),
		sweepPeriod:     10 * time.Minute,
	}
}

// Quote returns the lowest one-way fare for a route and date. A cache hit
// within TTL is equivalent to a fresh fetch, including the original fetch
// timestamp. Never returns an error: failures come back as a Quote with a
// nil price and a message, or a stale price and a warning.
func (s *Service) Quote(ctx context.Context, origin, destination, date string) Quote {
	key := cacheKey(origin, destination, date)

	s.mu.RLock()
	if c, ok := s.cache[key]; ok && time.Now().Before(c.expiresAt) {
		s.mu.RUnlock()
		return s.cachedQuote(c)
	}
	s.mu.RUnlock()

	return s.fetch(ctx, origin, destination, date, key)
}

func (s *Service) fetch(ctx context.Context, origin, destination, date, key string) Quote {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after taking the write lock.
	if c, ok := s.cache[key]; ok && time.Now().Before(c.expiresAt) {
		return s.cachedQuote(c)
	}

	s.logger.Debug().
		Str("origin", origin).
		Str("destination", destination).
		Str("date", date).
		Str("provider", s.provider.Name()).
		Msg("fetching fare from provider")

	price, err := s.provider.LowestFare(ctx, origin, destination, date)
	if err != nil {
		msg := failureMessage(err)
		s.logger.Warn().Err(err).
			Str("origin", origin).
			Str("destination", destination).
			Msg("fare fetch failed")

		// Prefer a stale cached fare with a warning over nothing.
		if c, ok := s.cache[key]; ok && time.Now().Before(c.fetchedAt.Add(s.staleIfErrorTTL)) {
			q := s.cachedQuote(c)
			q.Source = s.provider.Name() + " (cached — may be stale)"
			q.Warning = msg
			return q
		}

		return Quote{
			Currency:  "USD",
			Source:    s.provider.Name(),
			FetchedAt: time.Now(),
			Error:     msg,
		}
	}

	now := time.Now()
	s.cache[key] = &cachedFare{
		price:     price,
		currency:  "USD",
		fetchedAt: now,
		expiresAt: now.Add(s.cacheTTL),
	}
	s.sweepIfDue(now)

	p := price
	return Quote{
		Price:     &p,
		Currency:  "USD",
		Source:    s.provider.Name(),
		FetchedAt: now,
	}
}

func (s *Service) cachedQuote(c *cachedFare) Quote {
	p := c.price
	return Quote{
		Price:     &p,
		Currency:  c.currency,
		Source:    s.provider.Name() + " (cached)",
		FetchedAt: c.fetchedAt,
	}
}

// failureMessage maps a provider error to the low-alarm message shown to the
// user. The user always keeps a manual fallback path in the UI, so these
// read as hints, not faults.
func failureMessage(err error) string {
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		return "Price temporarily unavailable"
	}
	switch ue.Kind {
	case KindRateLimited:
		return "Rate limit — try refreshing in a few minutes"
	case KindAuthFailed:
		return "API auth error — check server credentials"
	case KindNoResults:
		return "No flights found for this route/date"
	case KindServerError:
		return "Fare search is having trouble — try again shortly"
	default:
		return "Price temporarily unavailable"
	}
}

func (s *Service) sweepIfDue(now time.Time) {
	if now.Sub(s.lastSweep) < s.sweepPeriod {
		return
	}
	s.lastSweep = now

	swept := 0
	for key, c := range s.cache {
		if now.After(c.fetchedAt.Add(s.staleIfErrorTTL)) {
			delete(s.cache, key)
			swept++
		}
	}
	if swept > 0 {
		s.logger.Debug().Int("swept", swept).Msg("swept expired fare cache entries")
	}
}

func cacheKey(origin, destination, date string) string {
	return strings.ToUpper(origin) + "|" + strings.ToUpper(destination) + "|" + date
}
