package mocks

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"eke/shared/cache"
)

// FakeCache is an in-memory, thread-safe RedisCache for tests. Unlike the
// generated mock it has no expectation lifecycle, so services that touch the
// cache from detached goroutines can keep doing so after a test returns.
type FakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func NewFakeCache() *FakeCache {
	return &FakeCache{entries: map[string][]byte{}}
}

var _ cache.RedisCache = (*FakeCache)(nil)

func (f *FakeCache) Save(_ context.Context, key string, value any, _ int) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries[key] = raw

	return nil
}

func (f *FakeCache) Get(_ context.Context, key string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, ok := f.entries[key]
	if !ok {
		return cache.Nil
	}

	return json.Unmarshal(raw, value)
}

func (f *FakeCache) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.entries, key)

	return nil
}

func (f *FakeCache) Clear(_ context.Context, prefix string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prefix = strings.TrimSuffix(prefix, "*")
	for key := range f.entries {
		if strings.HasPrefix(key, prefix) {
			delete(f.entries, key)
		}
	}

	return nil
}

// Has reports whether a key is currently cached.
func (f *FakeCache) Has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.entries[key]

	return ok
}
