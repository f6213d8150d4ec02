package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process Store backed by go-cache
type MemoryStore struct {
	items *gocache.Cache
}

// NewMemoryStore creates a new in-memory store. defaultExpiration applies when
// Set is called with a zero expiration.
func NewMemoryStore(defaultExpiration time.Duration) *MemoryStore {
	if defaultExpiration <= 0 {
		defaultExpiration = 5 * time.Minute
	}
	return &MemoryStore{
		items: gocache.New(defaultExpiration, 10*time.Minute),
	}
}

// Set stores a key-value pair with expiration
func (ms *MemoryStore) Set(_ context.Context, key, value string, expiration time.Duration) error {
	if expiration <= 0 {
		expiration = gocache.DefaultExpiration
	}
	ms.items.Set(key, value, expiration)
	return nil
}

// Get retrieves a value by key
func (ms *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := ms.items.Get(key)
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	return s, ok, nil
}

// Delete removes a key
func (ms *MemoryStore) Delete(_ context.Context, key string) error {
	ms.items.Delete(key)
	return nil
}
