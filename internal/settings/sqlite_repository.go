package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SQLiteRepository is a SQLite-backed implementation of Repository. The
// settings document is stored whole as one JSON row; overrides get their own
// table keyed by the (route, program) composite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a SQLite settings repository over an opened
// and migrated database handle.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// LoadSettings returns the stored document.
func (r *SQLiteRepository) LoadSettings(ctx context.Context) (*AppSettings, error) {
	var doc string
	err := r.db.QueryRowContext(ctx, `SELECT doc FROM settings WHERE id = 1`).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	var s AppSettings
	if err := json.Unmarshal([]byte(doc), &s); err != nil {
		return nil, fmt.Errorf("parsing settings document: %w", err)
	}
	return &s, nil
}

// SaveSettings replaces the whole stored document.
func (r *SQLiteRepository) SaveSettings(ctx context.Context, s *AppSettings) error {
	doc, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings document: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO settings (id, doc, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		string(doc), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// GetOverride retrieves an override by its composite key.
func (r *SQLiteRepository) GetOverride(ctx context.Context, routeID, programID string) (*Override, error) {
	o := Override{RouteID: routeID, ProgramID: programID}
	err := r.db.QueryRowContext(ctx, `
		SELECT miles, fees, updated_at FROM overrides
		WHERE route_id = ? AND program_id = ?`,
		routeID, programID).Scan(&o.Miles, &o.Fees, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading override: %w", err)
	}
	return &o, nil
}

// SetOverride creates or replaces an override.
func (r *SQLiteRepository) SetOverride(ctx context.Context, o *Override) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO overrides (route_id, program_id, miles, fees, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (route_id, program_id) DO UPDATE SET
			miles = excluded.miles, fees = excluded.fees, updated_at = excluded.updated_at`,
		o.RouteID, o.ProgramID, o.Miles, o.Fees, o.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving override: %w", err)
	}
	return nil
}

// ClearOverride removes an override.
func (r *SQLiteRepository) ClearOverride(ctx context.Context, routeID, programID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM overrides WHERE route_id = ? AND program_id = ?`,
		routeID, programID)
	if err != nil {
		return fmt.Errorf("clearing override: %w", err)
	}
	return nil
}

// ListOverrides returns all stored overrides.
func (r *SQLiteRepository) ListOverrides(ctx context.Context) ([]Override, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT route_id, program_id, miles, fees, updated_at
		FROM overrides ORDER BY route_id, program_id`)
	if err != nil {
		return nil, fmt.Errorf("listing overrides: %w", err)
	}
	defer rows.Close()

	var out []Override
	for rows.Next() {
		var o Override
		if err := rows.Scan(&o.RouteID, &o.ProgramID, &o.Miles, &o.Fees, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning override: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Ensure SQLiteRepository implements Repository.
var _ Repository = (*SQLiteRepository)(nil)
