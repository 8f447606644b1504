package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// MemoryCache implements Cache as an in-process LRU. Used when no Valkey URL
// is configured.
type MemoryCache struct {
	maxItems int
	items    map[string]*list.Element
	lru      *list.List
	mu       sync.Mutex
}

type memoryItem struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates a new in-memory LRU cache
func NewMemoryCache(maxItems int) *MemoryCache {
	if maxItems <= 0 {
		maxItems = 1000
	}
	return &MemoryCache{
		maxItems: maxItems,
		items:    make(map[string]*list.Element),
		lru:      list.New(),
	}
}

// Get retrieves a value; nil with nil error means the key is absent
func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, found := m.items[key]
	if !found {
		return nil, nil
	}

	item := elem.Value.(*memoryItem)
	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		m.lru.Remove(elem)
		delete(m.items, key)
		return nil, nil
	}

	m.lru.MoveToFront(elem)

	// Return a copy to avoid mutation of the cached value
	value := make([]byte, len(item.value))
	copy(value, item.value)
	return value, nil
}

// Set stores a value, evicting the least-recently-used entry when full
func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expiresAt time.Time
	if expiration > 0 {
		expiresAt = time.Now().Add(expiration)
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	if elem, found := m.items[key]; found {
		item := elem.Value.(*memoryItem)
		item.value = stored
		item.expiresAt = expiresAt
		m.lru.MoveToFront(elem)
		return nil
	}

	elem := m.lru.PushFront(&memoryItem{key: key, value: stored, expiresAt: expiresAt})
	m.items[key] = elem

	for m.lru.Len() > m.maxItems {
		oldest := m.lru.Back()
		if oldest == nil {
			break
		}
		m.lru.Remove(oldest)
		delete(m.items, oldest.Value.(*memoryItem).key)
	}

	return nil
}

// Delete removes a key
func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, found := m.items[key]; found {
		m.lru.Remove(elem)
		delete(m.items, key)
	}
	return nil
}

// Close releases the cache contents
func (m *MemoryCache) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string]*list.Element)
	m.lru = list.New()
	return nil
}

// Health always succeeds for the in-memory cache
func (m *MemoryCache) Health(ctx context.Context) error {
	return nil
}
