package settings

import "context"

// Repository persists the settings document and manual overrides.
type Repository interface {
	// LoadSettings returns the stored document, or ErrSettingsNotFound.
	LoadSettings(ctx context.Context) (*AppSettings, error)

	// SaveSettings replaces the whole stored document.
	SaveSettings(ctx context.Context, s *AppSettings) error

	// GetOverride returns the override for a (route, program) pair, or
	// ErrOverrideNotFound when absent.
	GetOverride(ctx context.Context, routeID, programID string) (*Override, error)

	// SetOverride creates or replaces an override.
	SetOverride(ctx context.Context, o *Override) error

	// ClearOverride removes an override; clearing an absent override is not
	// an error. Subsequent reads return ErrOverrideNotFound.
	ClearOverride(ctx context.Context, routeID, programID string) error

	// ListOverrides returns all stored overrides.
	ListOverrides(ctx context.Context) ([]Override, error)
}
