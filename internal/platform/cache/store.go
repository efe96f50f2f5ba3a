package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ImCuriosity/competition-recommendation/internal/platform/resilience"
)

type item struct {
	value   any
	staleAt time.Time // zero means the item never goes stale
}

func (it item) fresh(now time.Time) bool {
	return it.staleAt.IsZero() || it.staleAt.After(now)
}

// Store caches catalog search results in process. Items go stale
// after the configured TTL and are dropped on the next read; there is
// no invalidation path because the catalog is only ever read here.
type Store struct {
	ttl    time.Duration
	clock  func() time.Time
	flight resilience.FlightGroup

	mu    sync.Mutex
	items map[string]item
}

// NewStore builds a Store. A zero or negative ttl keeps items forever.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:   ttl,
		clock: time.Now,
		items: make(map[string]item),
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[key]
	if !ok {
		return nil, false
	}
	if !it.fresh(s.clock()) {
		delete(s.items, key)
		return nil, false
	}
	return it.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	it := item{value: value}
	if s.ttl > 0 {
		it.staleAt = s.clock().Add(s.ttl)
	}

	s.mu.Lock()
	s.items[key] = it
	s.mu.Unlock()
}

// GetOrLoad returns the cached value for key, running loader at most
// once across concurrent callers on a miss. Loader errors are not
// cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		// A concurrent leader may have filled the key while this
		// caller waited on the flight lock.
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}
