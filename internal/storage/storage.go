// Package storage provides the client-side persistent key/value store used by
// the command-line client. It plays the role a browser's local storage plays
// for the web console: a handful of string items under fixed keys.
package storage

import (
	"context"
)

// Storage defines the interface for local key/value persistence.
type Storage interface {
	// Item operations
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	ListItems(ctx context.Context) ([]*Item, error)

	// Health check
	Ping(ctx context.Context) error

	// Lifecycle
	Close() error
}
