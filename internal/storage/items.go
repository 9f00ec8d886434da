package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// GetItem returns the value stored under key.
// Returns ErrNotFound if nothing is stored there.
func (s *SQLiteStorage) GetItem(ctx context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", ErrEmptyKey
	}

	var (
		raw       []byte
		encrypted bool
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT value, encrypted FROM local_storage WHERE key = ?",
		key,
	).Scan(&raw, &encrypted)

	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get item %q: %w", key, err)
	}

	return s.decode(raw, encrypted)
}

// SetItem stores value under key, replacing any previous value.
func (s *SQLiteStorage) SetItem(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}

	raw, encrypted, err := s.encode(value)
	if err != nil {
		return fmt.Errorf("failed to encrypt item %q: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO local_storage (key, value, encrypted, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			encrypted = excluded.encrypted,
			updated_at = CURRENT_TIMESTAMP`,
		key, raw, encrypted,
	)
	if err != nil {
		return fmt.Errorf("failed to set item %q: %w", key, err)
	}

	return nil
}

// RemoveItem deletes the value stored under key.
// Removing a missing key is not an error, matching local storage semantics.
func (s *SQLiteStorage) RemoveItem(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM local_storage WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to remove item %q: %w", key, err)
	}

	return nil
}

// ListItems returns all stored items ordered by key.
// Returns empty slice if nothing is stored.
func (s *SQLiteStorage) ListItems(ctx context.Context) ([]*Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT key, value, encrypted, updated_at FROM local_storage ORDER BY key",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	items := make([]*Item, 0)
	for rows.Next() {
		var (
			item      Item
			raw       []byte
			encrypted bool
		)
		if err := rows.Scan(&item.Key, &raw, &encrypted, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		if item.Value, err = s.decode(raw, encrypted); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

func (s *SQLiteStorage) encode(value string) ([]byte, bool, error) {
	if s.encryptionKey == nil {
		return []byte(value), false, nil
	}
	raw, err := EncryptValue(value, s.encryptionKey)
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (s *SQLiteStorage) decode(raw []byte, encrypted bool) (string, error) {
	if !encrypted {
		return string(raw), nil
	}
	if s.encryptionKey == nil {
		return "", ErrDecryption
	}
	return DecryptValue(raw, s.encryptionKey)
}
