package cache

import "time"

// Option applies a configuration option to the InMemory cache.
type Option func(*InMemory)

// WithMaxSize sets the maximum number of objects kept in memory.
// If maxSize <= 0 the cache is unbounded and only TTL expiry removes entries.
func WithMaxSize(maxSize int) Option {
	return func(c *InMemory) {
		c.maxSize = maxSize
	}
}

// WithTTL sets how long an entry stays valid.
func WithTTL(ttl time.Duration) Option {
	return func(c *InMemory) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *InMemory) {
		if now != nil {
			c.now = now
		}
	}
}
