package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// SettingLastDataFile path of the last file loaded successfully
const SettingLastDataFile = "last_data_file"

// ErrSettingNotFound no value stored for the key
var ErrSettingNotFound = errors.New("setting not found")

// GetSetting reads one setting
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: %s", ErrSettingNotFound, key)
		}
		return "", err
	}
	return value, nil
}

// SetSetting upserts one setting
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// GetAllSettings returns every stored setting
func (s *Store) GetAllSettings() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

// LastDataFile returns the remembered input path, "" when none
func (s *Store) LastDataFile() string {
	v, err := s.GetSetting(SettingLastDataFile)
	if err != nil {
		return ""
	}
	return v
}

// SetLastDataFile remembers the input path
func (s *Store) SetLastDataFile(path string) error {
	return s.SetSetting(SettingLastDataFile, path)
}
