// Package mockstore provides a configurable mock implementation of storage.Storage for testing.
//
// The MockStorage type uses function fields for each method, allowing tests to customize behavior
// as needed. When a function field is nil the method falls back to an in-memory map, so an
// unconfigured MockStorage behaves like an empty local store.
package mockstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sipico/animal-inventory/internal/storage"
)

// MockStorage is a configurable mock implementation of storage.Storage.
type MockStorage struct {
	// Item operations
	GetItemFunc    func(ctx context.Context, key string) (string, error)
	SetItemFunc    func(ctx context.Context, key, value string) error
	RemoveItemFunc func(ctx context.Context, key string) error
	ListItemsFunc  func(ctx context.Context) ([]*storage.Item, error)

	// Lifecycle
	PingFunc  func(ctx context.Context) error
	CloseFunc func() error

	mu    sync.Mutex
	items map[string]string
}

// New creates a MockStorage preloaded with the given items.
func New(items map[string]string) *MockStorage {
	m := &MockStorage{items: make(map[string]string, len(items))}
	for k, v := range items {
		m.items[k] = v
	}
	return m
}

// GetItem returns the value stored under key.
func (m *MockStorage) GetItem(ctx context.Context, key string) (string, error) {
	if m.GetItemFunc != nil {
		return m.GetItemFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

// SetItem stores value under key.
func (m *MockStorage) SetItem(ctx context.Context, key, value string) error {
	if m.SetItemFunc != nil {
		return m.SetItemFunc(ctx, key, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items == nil {
		m.items = make(map[string]string)
	}
	m.items[key] = value
	return nil
}

// RemoveItem deletes the value stored under key.
func (m *MockStorage) RemoveItem(ctx context.Context, key string) error {
	if m.RemoveItemFunc != nil {
		return m.RemoveItemFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// ListItems returns all items ordered by key.
func (m *MockStorage) ListItems(ctx context.Context) ([]*storage.Item, error) {
	if m.ListItemsFunc != nil {
		return m.ListItemsFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]*storage.Item, 0, len(m.items))
	for k, v := range m.items {
		items = append(items, &storage.Item{Key: k, Value: v, UpdatedAt: time.Now()})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })
	return items, nil
}

// Ping checks the connection.
func (m *MockStorage) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// Close closes the storage.
func (m *MockStorage) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Has reports whether key currently holds a value (ignores function overrides).
func (m *MockStorage) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[key]
	return ok
}

// Verify MockStorage satisfies the storage interface.
var _ storage.Storage = (*MockStorage)(nil)
