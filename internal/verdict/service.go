package verdict

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/awardpilot/awardpilot/internal/availability"
	"github.com/awardpilot/awardpilot/internal/award"
	"github.com/awardpilot/awardpilot/internal/pricing"
	"github.com/awardpilot/awardpilot/internal/search"
	"github.com/awardpilot/awardpilot/internal/settings"
	"github.com/awardpilot/awardpilot/internal/value"
)

// FareQuoter is the cash fare gateway.
type FareQuoter interface {
	Quote(ctx context.Context, origin, destination, date string) pricing.Quote
}

// MilesEstimator is the search-derived estimate gateway.
type MilesEstimator interface {
	MilesEstimate(ctx context.Context, req search.EstimateRequest) search.Estimate
}

// AvailabilitySearcher is the live award availability gateway.
type AvailabilitySearcher interface {
	Search(ctx context.Context, origin, destination, date string) availability.Result
}

// ServiceConfig holds the dependencies of the verdict service.
type ServiceConfig struct {
	Settings     *settings.Service
	Pricing      FareQuoter
	Estimates    MilesEstimator
	Availability AvailabilitySearcher
	Logger       zerolog.Logger
}

// Service computes route verdicts by fanning out to the gateways and banding
// the results. It holds no state of its own; all caching lives in the
// gateways.
type Service struct {
	settings     *settings.Service
	pricing      FareQuoter
	estimates    MilesEstimator
	availability AvailabilitySearcher
	logger       zerolog.Logger
}

// NewService creates a verdict service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		settings:     cfg.Settings,
		pricing:      cfg.Pricing,
		estimates:    cfg.Estimates,
		availability: cfg.Availability,
		logger:       cfg.Logger,
	}
}

// ForRoute builds the full comparison for one saved route. The cash fare and
// availability are fetched once per route; programs are then valued
// concurrently in stored order. Gateway failures degrade inside their
// results, so the only error here is an unknown route.
func (s *Service) ForRoute(ctx context.Context, routeID string) (*RouteVerdict, error) {
	route, err := s.settings.RouteByID(ctx, routeID)
	if err != nil {
		return nil, err
	}
	programs := s.settings.Programs(ctx)

	price := s.pricing.Quote(ctx, route.Origin, route.Destination, route.Date)
	avail := s.availability.Search(ctx, route.Origin, route.Destination, route.Date)

	results := make([]ProgramVerdict, len(programs))
	var wg sync.WaitGroup
	for i, p := range programs {
		wg.Add(1)
		go func(i int, p settings.RewardProgram) {
			defer wg.Done()
			results[i] = s.valueProgram(ctx, *route, p, price, avail)
		}(i, p)
	}
	wg.Wait()

	return &RouteVerdict{
		Route:               *route,
		Price:               price,
		AvailabilityStatus:  avail.Status,
		AvailabilityMessage: avail.Message,
		Programs:            results,
		GeneratedAt:         time.Now(),
	}, nil
}

func (s *Service) valueProgram(ctx context.Context, route settings.Route, p settings.RewardProgram, price pricing.Quote, avail availability.Result) ProgramVerdict {
	out := ProgramVerdict{
		ProgramID:   p.ID,
		ProgramName: p.Name,
		BookURL:     p.BookURL,
		Color:       p.Color,
	}

	var manual *award.Quote
	if o, err := s.settings.Override(ctx, route.ID, p.ID); err == nil {
		manual = &award.Quote{Miles: o.Miles, Fees: o.Fees}
	} else if !errors.Is(err, settings.ErrOverrideNotFound) {
		s.logger.Warn().Err(err).
			Str("route", route.ID).
			Str("program", p.ID).
			Msg("override lookup failed, continuing without it")
	}

	var live *award.Quote
	if entry, ok := avail.CheapestFor(p.AvailabilitySource); ok {
		live = &award.Quote{Miles: entry.Miles}
		out.LiveAvailability = &entry
	}

	// The estimate search is only worth its upstream calls when nothing
	// higher-precedence is present.
	var estimate int
	var haveEstimate bool
	if manual == nil && live == nil {
		est := s.estimates.MilesEstimate(ctx, search.EstimateRequest{
			Origin:      route.Origin,
			Destination: route.Destination,
			OriginCity:  route.OriginCity,
			DestCity:    route.DestCity,
			ProgramID:   p.ID,
			ProgramName: p.Name,
			Date:        route.Date,
		})
		if est.Found {
			estimate = est.Miles
			haveEstimate = true
			out.EstimateConfidence = est.Confidence
		}
	}

	resolved := award.Resolve(manual, live, estimate, haveEstimate, p.Miles)
	out.Miles = resolved.Miles
	out.Fees = resolved.Fees
	out.MilesSource = resolved.Source
	if resolved.Source != award.SourceEstimated {
		out.EstimateConfidence = ""
	}

	var cash float64
	if price.Price != nil {
		cash = *price.Price
	}
	out.CentsPerMile = value.CentsPerMile(cash, resolved.Miles)
	out.NetCentsPerMile = value.NetCentsPerMile(cash, resolved.Fees, resolved.Miles)

	// Fees come off the cash saved, so the net figure is the one banded.
	out.Verdict = value.TierFor(out.NetCentsPerMile, p.Threshold)
	out.BeatsThreshold = out.Verdict.Tier == value.TierGood || out.Verdict.Tier == value.TierExcellent

	if p.Balance != nil && resolved.Miles > 0 {
		n := *p.Balance / resolved.Miles
		out.BookableOneWays = &n
	}

	return out
}
