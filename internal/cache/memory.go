package cache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/iwvelando/compound-growth/pkg/constants"
)

// MemoryCache is a process-local Repository holding at most a fixed number
// of series. The least recently used entry is evicted first.
type MemoryCache struct {
	entries *lru.Cache[string, string]
}

// NewMemoryCache returns an empty MemoryCache bounded to maxEntries. A
// non-positive bound selects the default.
func NewMemoryCache(maxEntries int) (*MemoryCache, error) {
	if maxEntries <= 0 {
		maxEntries = constants.DefaultCacheMaxEntries
	}
	entries, err := lru.New[string, string](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}
	return &MemoryCache{entries: entries}, nil
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	val, ok := m.entries.Get(key)
	return val, ok, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.entries.Add(key, value)
	return nil
}

// Len reports the number of cached entries.
func (m *MemoryCache) Len() int {
	return m.entries.Len()
}
