package storage

import "time"

// Item is a single stored key/value pair. Value is always the plaintext;
// encryption at rest is handled inside the store.
type Item struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
