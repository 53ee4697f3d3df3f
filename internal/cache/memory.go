package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// MemoryCache хранит записи в памяти процесса. Просроченные записи
// отбрасываются при чтении, Flush заменяет карту целиком, так что
// конкурентные читатели видят либо прежнее, либо пустое состояние.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache создаёт пустой кэш в памяти.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get возвращает непросроченное значение по ключу.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(e.expires) {
		return nil, false
	}
	return e.value, true
}

// Set сохраняет значение с указанным временем жизни.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	c.entries[key] = memoryEntry{
		value:   value,
		expires: c.now().Add(ttl),
	}
	c.mu.Unlock()
}

// Flush удаляет все записи кэша.
func (c *MemoryCache) Flush(_ context.Context) {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
}
