package settings

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production uses SQLiteRepository.
type InMemoryRepository struct {
	mu        sync.RWMutex
	doc       *AppSettings
	overrides map[string]*Override
}

// NewInMemoryRepository creates a new in-memory settings repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		overrides: make(map[string]*Override),
	}
}

// LoadSettings returns the stored document.
func (r *InMemoryRepository) LoadSettings(_ context.Context) (*AppSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.doc == nil {
		return nil, ErrSettingsNotFound
	}
	cpy := *r.doc
	cpy.Routes = append([]Route(nil), r.doc.Routes...)
	cpy.Programs = append([]RewardProgram(nil), r.doc.Programs...)
	return &cpy, nil
}

// SaveSettings replaces the stored document.
func (r *InMemoryRepository) SaveSettings(_ context.Context, s *AppSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *s
	cpy.Routes = append([]Route(nil), s.Routes...)
	cpy.Programs = append([]RewardProgram(nil), s.Programs...)
	r.doc = &cpy
	return nil
}

// GetOverride retrieves an override by its composite key.
func (r *InMemoryRepository) GetOverride(_ context.Context, routeID, programID string) (*Override, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.overrides[routeID+"|"+programID]
	if !ok {
		return nil, ErrOverrideNotFound
	}
	cpy := *o
	return &cpy, nil
}

// SetOverride creates or replaces an override.
func (r *InMemoryRepository) SetOverride(_ context.Context, o *Override) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *o
	r.overrides[o.RouteID+"|"+o.ProgramID] = &cpy
	return nil
}

// ClearOverride removes an override.
func (r *InMemoryRepository) ClearOverride(_ context.Context, routeID, programID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.overrides, routeID+"|"+programID)
	return nil
}

// ListOverrides returns all stored overrides.
func (r *InMemoryRepository) ListOverrides(_ context.Context) ([]Override, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Override, 0, len(r.overrides))
	for _, o := range r.overrides {
		out = append(out, *o)
	}
	return out, nil
}

// Ensure InMemoryRepository implements Repository.
var _ Repository = (*InMemoryRepository)(nil)
