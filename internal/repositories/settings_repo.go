package repositories

import (
	"database/sql"
	"time"

	"notary-admin/internal/config"
	"notary-admin/internal/utils"
)

// SettingsRepository wraps the notary_admin_settings key/value table.
// Values written by the legacy console may be stored as quoted JSON
// strings; every read path normalizes through utils.Unquote.
type SettingsRepository struct {
	DB *sql.DB
}

func (r SettingsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

// Get returns the unquoted value for a key. sql.ErrNoRows passes
// through so callers can treat absence as a default.
func (r SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db().QueryRow("SELECT `value` FROM notary_admin_settings WHERE `key` = ? LIMIT 1", key).Scan(&value)
	if err != nil {
		return "", err
	}
	return utils.Unquote(value), nil
}

// GetAll returns the full settings map with values unquoted.
func (r SettingsRepository) GetAll() (map[string]string, error) {
	rows, err := r.db().Query("SELECT `key`, `value` FROM notary_admin_settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		out[key] = utils.Unquote(value)
	}
	return out, rows.Err()
}

// Upsert creates or replaces a setting keyed by its name. New values
// are stored as raw scalars, not quoted strings.
func (r SettingsRepository) Upsert(key string, value any, now time.Time) error {
	_, err := r.db().Exec(
		"INSERT INTO notary_admin_settings (`key`, `value`, updated_at) VALUES (?, ?, ?)"+
			" ON DUPLICATE KEY UPDATE `value` = VALUES(`value`), updated_at = VALUES(updated_at)",
		key, value, now)
	return err
}
