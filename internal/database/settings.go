package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrSettingNotFound is returned when a setting has never been stored.
var ErrSettingNotFound = errors.New("setting not found")

// KeyAlertsEnabled stores the alert gate state as "true" or "false".
const KeyAlertsEnabled = "alerts_enabled"

// Setting is a stored key/value pair.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GetSetting returns the stored setting for key, or ErrSettingNotFound.
func (d *Database) GetSetting(ctx context.Context, key string) (Setting, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var (
		s         Setting
		updatedAt int64
	)
	err := d.db.QueryRowContext(ctx,
		`SELECT key, value, updated_at FROM settings WHERE key = ?`, key,
	).Scan(&s.Key, &s.Value, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		recordQuery("get_setting", start, nil)
		return Setting{}, fmt.Errorf("%w: %s", ErrSettingNotFound, key)
	}
	recordQuery("get_setting", start, err)
	if err != nil {
		return Setting{}, fmt.Errorf("failed to read setting %s: %w", key, err)
	}

	s.UpdatedAt = time.Unix(updatedAt, 0)
	return s, nil
}

// SetSetting inserts or replaces the value stored for key.
func (d *Database) SetSetting(ctx context.Context, key, value string) error {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, strftime('%s', 'now'))
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value)
	recordQuery("set_setting", start, err)

	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

// AlertsEnabled returns the persisted alert gate state. found is false when
// nothing has been stored yet.
func (d *Database) AlertsEnabled(ctx context.Context) (enabled, found bool, err error) {
	s, err := d.GetSetting(ctx, KeyAlertsEnabled)
	if errors.Is(err, ErrSettingNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}

	enabled, err = strconv.ParseBool(s.Value)
	if err != nil {
		return false, false, fmt.Errorf("invalid %s value %q: %w", KeyAlertsEnabled, s.Value, err)
	}
	return enabled, true, nil
}

// SetAlertsEnabled persists the alert gate state.
func (d *Database) SetAlertsEnabled(ctx context.Context, enabled bool) error {
	return d.SetSetting(ctx, KeyAlertsEnabled, strconv.FormatBool(enabled))
}
