// Package cache keeps recently fetched museum objects so a conversation asking
// several questions about one painting costs a single API call.
package cache

import (
	"context"

	"github.com/okian/museumguide/internal/domain/model"
)

// Cache stores objects by museum object id.
type Cache interface {
	// Get returns the cached object and true, or nil and false on a miss.
	Get(ctx context.Context, id string) (*model.Object, bool)

	// Set stores obj under id until the cache's TTL elapses.
	Set(ctx context.Context, id string, obj *model.Object)

	// Close releases any connections held by the cache.
	Close() error
}

// Nop is a Cache that never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) (*model.Object, bool) { return nil, false }
func (Nop) Set(context.Context, string, *model.Object)        {}
func (Nop) Close() error                                       { return nil }
