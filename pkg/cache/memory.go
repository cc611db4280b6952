package cache

import (
	"context"
	"sync"
	"time"

	"RateSpread/internal/domain/models"
)

// memoryItem stores a cached series with expiration.
type memoryItem struct {
	series   *models.Series
	expireAt time.Time
}

func (m *memoryItem) isExpired() bool {
	return time.Now().After(m.expireAt)
}

// MemoryCache implements Service using in-memory storage. Expired entries
// are dropped on access; a run-scoped cache needs no background sweeper.
type MemoryCache struct {
	data  map[string]*memoryItem
	mutex sync.RWMutex
}

// NewMemoryCache creates an in-memory series cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]*memoryItem),
	}
}

func (mc *MemoryCache) Set(_ context.Context, key string, s *models.Series, expiration time.Duration) error {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	expireAt := time.Now().Add(expiration)
	if expiration <= 0 {
		expireAt = time.Now().Add(24 * time.Hour)
	}

	mc.data[key] = &memoryItem{
		series:   s,
		expireAt: expireAt,
	}
	return nil
}

func (mc *MemoryCache) Get(_ context.Context, key string) (*models.Series, error) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	item, exists := mc.data[key]
	if !exists || item.isExpired() {
		if exists {
			delete(mc.data, key)
		}
		return nil, ErrCacheMiss
	}

	return item.series, nil
}

func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	for _, key := range keys {
		delete(mc.data, key)
	}
	return nil
}

var _ Service = (*MemoryCache)(nil)
