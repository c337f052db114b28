package inmemory

import (
	"sync"
	"time"
)

// ttlStore is a per-user map whose entries expire. Values are copied on the
// way in and out with clone so callers never share cached memory.
type ttlStore[T any] struct {
	mu    sync.RWMutex
	items map[string]ttlItem[T]
	clone func(T) T
	now   func() time.Time
}

type ttlItem[T any] struct {
	value     T
	expiresAt time.Time
}

func newTTLStore[T any](clone func(T) T) *ttlStore[T] {
	return &ttlStore[T]{
		items: make(map[string]ttlItem[T]),
		clone: clone,
		now:   time.Now,
	}
}

func (s *ttlStore[T]) get(key string) (T, bool) {
	var zero T
	now := s.now()

	s.mu.RLock()
	item, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}

	if !item.expiresAt.After(now) {
		s.mu.Lock()
		item, ok = s.items[key]
		if ok && !item.expiresAt.After(now) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return zero, false
	}

	return s.clone(item.value), true
}

func (s *ttlStore[T]) set(key string, value T, ttl time.Duration) {
	if ttl <= 0 {
		s.delete(key)
		return
	}

	s.mu.Lock()
	s.items[key] = ttlItem[T]{
		value:     s.clone(value),
		expiresAt: s.now().Add(ttl),
	}
	s.mu.Unlock()
}

func (s *ttlStore[T]) delete(key string) {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}
