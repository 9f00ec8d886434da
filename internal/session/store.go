package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/sipico/animal-inventory/internal/storage"
)

// Store persists the access token on the client.
type Store interface {
	// Token returns the stored token or ErrNoToken.
	Token(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// ItemStore is the key/value surface LocalStore needs.
// *storage.SQLiteStorage satisfies it.
type ItemStore interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// LocalStore keeps the token in a key/value store under TokenKey.
type LocalStore struct {
	items ItemStore
}

// NewLocalStore creates a Store backed by items.
func NewLocalStore(items ItemStore) *LocalStore {
	return &LocalStore{items: items}
}

// Token implements Store.
func (s *LocalStore) Token(ctx context.Context) (string, error) {
	token, err := s.items.GetItem(ctx, TokenKey)
	if errors.Is(err, storage.ErrNotFound) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("read stored token: %w", err)
	}
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// SaveToken implements Store.
func (s *LocalStore) SaveToken(ctx context.Context, token string) error {
	if err := s.items.SetItem(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// ClearToken implements Store.
func (s *LocalStore) ClearToken(ctx context.Context) error {
	if err := s.items.RemoveItem(ctx, TokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
