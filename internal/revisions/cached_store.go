package revisions

import (
	"context"
	"slices"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedStore fronts another store with an in-process read-through cache.
// Writes go to the backing store first and refresh the cached value.
type CachedStore struct {
	next  Store
	cache *gocache.Cache
	ttl   time.Duration
}

func NewCachedStore(next Store, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachedStore{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (s *CachedStore) Read(ctx context.Context, key string) ([]byte, error) {
	if cached, ok := s.cache.Get(key); ok {
		return slices.Clone(cached.([]byte)), nil
	}
	value, err := s.next.Read(ctx, key)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, slices.Clone(value), s.ttl)
	return value, nil
}

func (s *CachedStore) Write(ctx context.Context, key string, value []byte) error {
	if err := s.next.Write(ctx, key, value); err != nil {
		s.cache.Delete(key)
		return err
	}
	s.cache.Set(key, slices.Clone(value), s.ttl)
	return nil
}

// Unwrap returns the backing store.
func (s *CachedStore) Unwrap() Store {
	return s.next
}
