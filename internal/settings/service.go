package settings

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ValidationError carries per-field validation failures.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("settings validation failed: %d field(s)", len(e.Fields))
}

var iataRegex = regexp.MustCompile(`^[A-Za-z]{3}$`)

// Service provides settings operations with defaults fallback and
// validation.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

// NewService creates a settings service.
func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Load returns the settings document, substituting defaults when the store
// is empty or the document is unusable. An empty routes or programs array is
// deliberately treated as unset and replaced wholesale by the default set
// for that collection.
func (s *Service) Load(ctx context.Context) *AppSettings {
	doc, err := s.repo.LoadSettings(ctx)
	if err != nil {
		if !errors.Is(err, ErrSettingsNotFound) {
			s.logger.Warn().Err(err).Msg("settings unreadable, falling back to defaults")
		}
		return DefaultSettings()
	}

	if doc.Version != SchemaVersion {
		s.logger.Warn().Int("version", doc.Version).Msg("settings version mismatch, falling back to defaults")
		return DefaultSettings()
	}

	if len(doc.Routes) == 0 {
		doc.Routes = DefaultRoutes()
	}
	if len(doc.Programs) == 0 {
		doc.Programs = DefaultPrograms()
	}
	return doc
}

// Save validates and persists the whole document. Entries without an ID are
// assigned one.
func (s *Service) Save(ctx context.Context, doc *AppSettings) error {
	if fields := validate(doc); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	doc.Version = SchemaVersion
	for i := range doc.Routes {
		if doc.Routes[i].ID == "" {
			doc.Routes[i].ID = "rte_" + uuid.New().String()[:8]
		}
		doc.Routes[i].Origin = strings.ToUpper(doc.Routes[i].Origin)
		doc.Routes[i].Destination = strings.ToUpper(doc.Routes[i].Destination)
	}
	for i := range doc.Programs {
		if doc.Programs[i].ID == "" {
			doc.Programs[i].ID = "prg_" + uuid.New().String()[:8]
		}
	}

	return s.repo.SaveSettings(ctx, doc)
}

// AddPresetProgram appends a preset program unless one with the same name
// already exists; preset re-adds are a no-op, not a duplicate.
func (s *Service) AddPresetProgram(ctx context.Context, p RewardProgram) error {
	doc := s.Load(ctx)
	for _, existing := range doc.Programs {
		if strings.EqualFold(existing.Name, p.Name) {
			return nil
		}
	}
	doc.Programs = append(doc.Programs, p)
	return s.Save(ctx, doc)
}

// RouteByID looks a route up in the current document.
func (s *Service) RouteByID(ctx context.Context, routeID string) (*Route, error) {
	doc := s.Load(ctx)
	for i := range doc.Routes {
		if doc.Routes[i].ID == routeID {
			return &doc.Routes[i], nil
		}
	}
	return nil, ErrRouteNotFound
}

// Programs returns the current program list.
func (s *Service) Programs(ctx context.Context) []RewardProgram {
	return s.Load(ctx).Programs
}

// Override returns the manual quote for a (route, program) pair, or
// ErrOverrideNotFound when absent. Absence is a defined state, never zero.
func (s *Service) Override(ctx context.Context, routeID, programID string) (*Override, error) {
	return s.repo.GetOverride(ctx, routeID, programID)
}

// SetOverride validates and stores a manual quote.
func (s *Service) SetOverride(ctx context.Context, o *Override) error {
	fields := map[string]string{}
	if o.RouteID == "" {
		fields["routeId"] = "required"
	}
	if o.ProgramID == "" {
		fields["programId"] = "required"
	}
	if o.Miles <= 0 {
		fields["miles"] = "must be positive"
	}
	if o.Fees < 0 {
		fields["fees"] = "must not be negative"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	o.UpdatedAt = time.Now().UTC()
	return s.repo.SetOverride(ctx, o)
}

// ClearOverride removes a manual quote.
func (s *Service) ClearOverride(ctx context.Context, routeID, programID string) error {
	return s.repo.ClearOverride(ctx, routeID, programID)
}

// ListOverrides returns all stored manual quotes.
func (s *Service) ListOverrides(ctx context.Context) ([]Override, error) {
	return s.repo.ListOverrides(ctx)
}

func validate(doc *AppSettings) map[string]string {
	fields := map[string]string{}

	for i, r := range doc.Routes {
		prefix := fmt.Sprintf("routes[%d].", i)
		if !iataRegex.MatchString(r.Origin) {
			fields[prefix+"origin"] = "must be a three-letter IATA code"
		}
		if !iataRegex.MatchString(r.Destination) {
			fields[prefix+"destination"] = "must be a three-letter IATA code"
		}
		if r.Date != "" {
			if _, err := time.Parse("2006-01-02", r.Date); err != nil {
				fields[prefix+"date"] = "must be YYYY-MM-DD"
			}
		}
	}

	for i, p := range doc.Programs {
		prefix := fmt.Sprintf("programs[%d].", i)
		if p.Name == "" {
			fields[prefix+"name"] = "required"
		}
		if p.Threshold <= 0 {
			fields[prefix+"threshold"] = "must be positive"
		}
		if p.Miles < 0 {
			fields[prefix+"miles"] = "must not be negative"
		}
		if p.Balance != nil && *p.Balance < 0 {
			fields[prefix+"balance"] = "must not be negative"
		}
	}

	return fields
}
