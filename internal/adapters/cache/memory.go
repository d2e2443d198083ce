package cache

import (
	"context"
	"sync"
	"time"

	"github.com/okian/museumguide/internal/domain/model"
	"github.com/okian/museumguide/pkg/metrics"
)

// Default in-memory cache configuration.
const (
	defaultMaxSize = 1000
	defaultTTL     = 5 * time.Minute
)

// node is an entry in the recency list. head is the newest entry, tail the oldest.
type node struct {
	id        string
	obj       *model.Object
	expiresAt time.Time
	prev      *node
	next      *node
}

// reset clears the node state for reuse.
func (n *node) reset() {
	n.id = ""
	n.obj = nil
	n.expiresAt = time.Time{}
	n.prev = nil
	n.next = nil
}

// InMemory is a bounded TTL cache. When full, the oldest inserted entry is
// evicted first.
type InMemory struct {
	mu       sync.Mutex
	entries  map[string]*node
	head     *node
	tail     *node
	maxSize  int
	ttl      time.Duration
	now      func() time.Time
	nodePool sync.Pool
}

var _ Cache = (*InMemory)(nil)

// NewInMemory creates an in-memory cache with configuration options.
func NewInMemory(opts ...Option) *InMemory {
	c := &InMemory{
		maxSize: defaultMaxSize,
		ttl:     defaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.entries = make(map[string]*node)
	c.nodePool = sync.Pool{
		New: func() any { return &node{} },
	}
	return c
}

// Get returns a live entry. Expired entries are dropped on access.
func (c *InMemory) Get(_ context.Context, id string) (*model.Object, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	if !c.now().Before(n.expiresAt) {
		c.remove(n)
		return nil, false
	}
	return n.obj, true
}

// Set stores obj, replacing any existing entry for id.
func (c *InMemory) Set(_ context.Context, id string, obj *model.Object) {
	if obj == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[id]; ok {
		c.remove(old)
	}
	if c.maxSize > 0 {
		for len(c.entries) >= c.maxSize && c.tail != nil {
			c.remove(c.tail)
		}
	}

	n := c.nodePool.Get().(*node)
	n.id = id
	n.obj = obj
	n.expiresAt = c.now().Add(c.ttl)
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
	c.entries[id] = n
	metrics.UpdateCacheEntries(len(c.entries))
}

// Len returns the number of entries, including expired ones not yet evicted.
func (c *InMemory) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close drops every entry.
func (c *InMemory) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.head != nil {
		c.remove(c.head)
	}
	return nil
}

// remove unlinks n and returns it to the pool. Must be called with c.mu held.
func (c *InMemory) remove(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	delete(c.entries, n.id)
	n.reset()
	c.nodePool.Put(n)
	metrics.UpdateCacheEntries(len(c.entries))
}
