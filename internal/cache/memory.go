package cache

import (
	"context"
	"sync"
)

// DefaultMemorySize bounds a MemoryCache created with a non-positive size.
const DefaultMemorySize = 1024

// MemoryCache is an in-process cache that evicts the oldest entry once full.
type MemoryCache struct {
	mu      sync.Mutex
	maxSize int
	data    map[string]string
	order   []string
}

func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = DefaultMemorySize
	}
	return &MemoryCache{
		maxSize: maxSize,
		data:    make(map[string]string),
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	return val, ok
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists {
		if len(m.order) >= m.maxSize {
			oldest := m.order[0]
			m.order = m.order[1:]
			delete(m.data, oldest)
		}
		m.order = append(m.order, key)
	}
	m.data[key] = value
	return nil
}

// Len returns the number of stored entries.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}
