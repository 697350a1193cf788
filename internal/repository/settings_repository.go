package repository

import (
	"context"
	"encoding/json"
	"errors"

	"washpos-backend/internal/db"
	"washpos-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

// SettingsRepository is a key -> JSON value store. Adding a new setting needs
// no schema change.
type SettingsRepository struct {
	DB *db.Postgres
}

func (r SettingsRepository) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var raw json.RawMessage
	err := r.DB.Pool.QueryRow(ctx, `SELECT value FROM settings WHERE key=$1`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return raw, nil
}

// Load decodes the stored value for key into dest. A missing key leaves dest
// untouched and returns ErrNotFound so callers can fall back to a default.
func (r SettingsRepository) Load(ctx context.Context, key string, dest any) error {
	raw, err := r.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// Put upserts a setting, stamping the update time.
func (r SettingsRepository) Put(ctx context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = r.DB.Pool.Exec(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=now()
	`, key, encoded)
	return err
}

func (r SettingsRepository) List(ctx context.Context) (map[string]json.RawMessage, error) {
	rows, err := r.DB.Pool.Query(ctx, `SELECT key, value FROM settings ORDER BY key ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]json.RawMessage)
	for rows.Next() {
		var key string
		var raw json.RawMessage
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, err
		}
		out[key] = raw
	}
	return out, rows.Err()
}

// SeedDefaults inserts missing settings keys without overwriting existing
// values. Idempotent.
func (r SettingsRepository) SeedDefaults(ctx context.Context, defaults map[string]any) error {
	for key, value := range defaults {
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		_, err = r.DB.Pool.Exec(ctx, `
			INSERT INTO settings (key, value, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (key) DO NOTHING
		`, key, encoded)
		if err != nil {
			return err
		}
	}
	return nil
}

// SeedShiftDefaults populates the shift percentage table used by payroll.
func (r SettingsRepository) SeedShiftDefaults(ctx context.Context) error {
	defaults := map[string]float64{
		"Pagi":  1.0,
		"Siang": 1.0,
		"Malam": 1.15,
	}
	for shift, pct := range defaults {
		_, err := r.DB.Pool.Exec(ctx, `
			INSERT INTO shift_settings (shift, percentage, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (shift) DO NOTHING
		`, shift, pct)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r SettingsRepository) GetShiftPercentage(ctx context.Context, shift string) (float64, error) {
	var pct float64
	err := r.DB.Pool.QueryRow(ctx, `SELECT percentage FROM shift_settings WHERE shift=$1`, shift).Scan(&pct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return pct, nil
}

func (r SettingsRepository) ListShifts(ctx context.Context) ([]domain.ShiftSetting, error) {
	rows, err := r.DB.Pool.Query(ctx, `SELECT shift, percentage, updated_at FROM shift_settings ORDER BY shift ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.ShiftSetting
	for rows.Next() {
		var s domain.ShiftSetting
		if err := rows.Scan(&s.Shift, &s.Percentage, &s.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r SettingsRepository) PutShift(ctx context.Context, shift string, percentage float64) error {
	_, err := r.DB.Pool.Exec(ctx, `
		INSERT INTO shift_settings (shift, percentage, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (shift) DO UPDATE SET percentage=EXCLUDED.percentage, updated_at=now()
	`, shift, percentage)
	return err
}
