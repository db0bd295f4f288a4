package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/awardpilot/awardpilot/internal/award"
)

// searchTerms maps preset program IDs to the phrase that surfaces award
// pricing discussion for that program. Unknown programs fall back to their
// display name.
var searchTerms = map[string]string{
	"flyingblue":     "Flying Blue",
	"aadvantage":     "AAdvantage Iberia",
	"virginatlantic": "Virgin Atlantic Flying Club",
	"skymileseco":    "Delta SkyMiles",
	"united":         "United MileagePlus",
}

// ServiceConfig holds configuration for the estimate service.
type ServiceConfig struct {
	// Provider runs the web searches.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long an estimate stays cached (default: 6 hours).
	CacheTTL time.Duration
}

// Service turns web search snippets into cached mileage estimates. A failed
// or unconfigured search degrades to "no estimate", never to an error.
type Service struct {
	provider Provider
	logger   zerolog.Logger
	cacheTTL time.Duration

	mu          sync.RWMutex
	cache       map[string]*cachedEstimate
	lastSweep   time.Time
	sweepPeriod time.Duration
}

type cachedEstimate struct {
	estimate  Estimate
	expiresAt time.Time
}

// NewService creates an estimate service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 6 * time.Hour
	}

	return &Service{
		provider:    cfg.Provider,
		logger:      cfg.Logger,
		cacheTTL:    cacheTTL,
		cache:       make(map[string]*cachedEstimate),
		sweepPeriod: 30 * time.Minute,
	}
}

// MilesEstimate returns the best-effort mileage estimate for a (route,
// program) pair. Results are cached per full parameter tuple; a cache hit
// carries the original fetch timestamp.
func (s *Service) MilesEstimate(ctx context.Context, req EstimateRequest) Estimate {
	key := s.cacheKey(req)

	s.mu.RLock()
	if c, ok := s.cache[key]; ok && time.Now().Before(c.expiresAt) {
		s.mu.RUnlock()
		return c.estimate
	}
	s.mu.RUnlock()

	return s.fetch(ctx, req, key)
}

func (s *Service) fetch(ctx context.Context, req EstimateRequest, key string) Estimate {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.cache[key]; ok && time.Now().Before(c.expiresAt) {
		return c.estimate
	}

	var snippets []string
	for _, q := range s.queries(req) {
		results, err := s.provider.Search(ctx, q)
		if err != nil {
			// Degraded search is "no data", not a failure.
			s.logger.Warn().Err(err).Str("query", q).Msg("award search query failed")
			continue
		}
		for _, r := range results {
			snippets = append(snippets, r.Title+" "+r.Description)
		}
	}

	now := time.Now()
	est := Estimate{
		Source:     SourceNotFound,
		Confidence: ConfidenceNone,
		FetchedAt:  now,
	}
	if miles, ok := award.ExtractMiles(strings.Join(snippets, " ")); ok {
		est.Miles = miles
		est.Found = true
		est.Source = SourceCommunityEstimate
		est.Confidence = ConfidenceLow
	}

	s.cache[key] = &cachedEstimate{estimate: est, expiresAt: now.Add(s.cacheTTL)}
	s.sweepIfDue(now)

	return est
}

// queries builds several phrasings of the same question for coverage.
func (s *Service) queries(req EstimateRequest) []string {
	term := searchTerms[req.ProgramID]
	if term == "" {
		term = req.ProgramName
	}
	if term == "" {
		term = req.ProgramID
	}

	year := time.Now().Year()
	if d, err := time.Parse("2006-01-02", req.Date); err == nil {
		year = d.Year()
	}

	origin := strings.ToUpper(req.Origin)
	dest := strings.ToUpper(req.Destination)

	return []string{
		fmt.Sprintf("%q %s %s miles award economy %d", term, origin, dest, year),
		fmt.Sprintf("%q %q %q award miles economy one-way", term, req.OriginCity, req.DestCity),
		fmt.Sprintf("%s %s %s economy award how many miles", term, origin, dest),
	}
}

func (s *Service) cacheKey(req EstimateRequest) string {
	return strings.ToUpper(req.Origin) + "|" + strings.ToUpper(req.Destination) +
		"|" + req.ProgramID + "|" + req.Date
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
