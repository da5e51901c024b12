package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process store for redis-less deployments and tests.
// Expired entries are invalidated lazily on read; a background sweep
// reclaims them but is not required for correctness.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	stop  chan struct{}
	now   func() time.Time
}

type memoryItem struct {
	value  []byte
	expiry time.Time
}

// NewMemoryStore creates the store and starts the hourly sweep.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		items: make(map[string]memoryItem),
		stop:  make(chan struct{}),
		now:   time.Now,
	}
	go s.sweep()
	return s
}

// Get retrieves a value; expired entries behave exactly like misses.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, found := s.items[key]
	if !found || s.now().After(item.expiry) {
		return nil, false, nil
	}
	return item.value, true, nil
}

// Set stores a value with the given TTL; the last write wins.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = memoryItem{
		value:  value,
		expiry: s.now().Add(ttl),
	}
	return nil
}

// Close stops the background sweep.
func (s *MemoryStore) Close() error {
	close(s.stop)
	return nil
}

func (s *MemoryStore) sweep() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			now := s.now()
			for k, v := range s.items {
				if now.After(v.expiry) {
					delete(s.items, k)
				}
			}
			s.mu.Unlock()
		}
	}
}
