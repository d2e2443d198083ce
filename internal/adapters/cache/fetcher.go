package cache

import (
	"context"
	"sync/atomic"

	"github.com/okian/museumguide/internal/adapters/museum"
	"github.com/okian/museumguide/internal/domain/model"
	"github.com/okian/museumguide/pkg/metrics"
)

// Fetcher answers from the cache and falls through to next on a miss.
// Failed fetches are never cached.
type Fetcher struct {
	next   museum.Fetcher
	cache  Cache
	hits   atomic.Int64
	misses atomic.Int64
}

var _ museum.Fetcher = (*Fetcher)(nil)

// NewFetcher wraps next with c. A nil cache disables caching.
func NewFetcher(next museum.Fetcher, c Cache) *Fetcher {
	if c == nil {
		c = Nop{}
	}
	return &Fetcher{next: next, cache: c}
}

// Object implements museum.Fetcher.
func (f *Fetcher) Object(ctx context.Context, id string) (*model.Object, error) {
	if obj, ok := f.cache.Get(ctx, id); ok {
		f.hits.Add(1)
		metrics.RecordCacheHit()
		return obj, nil
	}
	f.misses.Add(1)
	metrics.RecordCacheMiss()

	obj, err := f.next.Object(ctx, id)
	if err != nil {
		return nil, err
	}
	f.cache.Set(ctx, id, obj)
	return obj, nil
}

// Hits returns how many lookups were answered from the cache.
func (f *Fetcher) Hits() int64 { return f.hits.Load() }

// Misses returns how many lookups fell through to the museum API.
func (f *Fetcher) Misses() int64 { return f.misses.Load() }
