// Package service answers painting fact questions on behalf of the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/okian/museumguide/internal/adapters/cache"
	"github.com/okian/museumguide/internal/adapters/museum"
	"github.com/okian/museumguide/internal/domain/facts"
	"github.com/okian/museumguide/pkg/logger"
	"github.com/okian/museumguide/pkg/metrics"
)

// Service errors.
var (
	ErrUnknownFact = errors.New("unknown fact")
	ErrNoFetcher   = errors.New("no museum fetcher configured")
)

// Service implements the API dependencies for the facts endpoints.
type Service struct {
	mu sync.RWMutex

	// Core components
	fetcher museum.Fetcher
	cache   cache.Cache
	lookup  *cache.Fetcher

	// State
	started bool

	// Counters
	lookups   atomic.Int64
	failures  atomic.Int64
	defaults  atomic.Int64
	notFound  atomic.Int64
	artistReq atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFetcher sets the museum API client.
func WithFetcher(f museum.Fetcher) Option {
	return func(s *Service) {
		s.fetcher = f
	}
}

// WithCache puts c in front of the fetcher. Without it every lookup hits the
// museum API.
func WithCache(c cache.Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// New constructs a new Service.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = cache.Nop{}
	}
	if s.fetcher != nil {
		s.lookup = cache.NewFetcher(s.fetcher, s.cache)
	}
	return s
}

// Start marks the service ready.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.lookup == nil {
		return ErrNoFetcher
	}

	s.started = true
	s.logger.Info(ctx, "facts service started",
		logger.Int("facts", len(facts.Names())),
		logger.String("cache", fmt.Sprintf("%T", s.cache)),
		logger.Bool("cache_enabled", cacheEnabled(s.cache)),
	)
	return nil
}

// Stop releases the cache.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if err := s.cache.Close(); err != nil {
		s.logger.Warn(context.Background(), "closing cache", logger.Error(err))
	}
	s.started = false
	s.logger.Info(context.Background(), "facts service stopped")
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logger == nil {
		return logger.Nop()
	}
	return s.logger
}

// Fact resolves the named fact for the painting identified by title. Absent
// fields resolve to the fact's default rather than an error.
func (s *Service) Fact(ctx context.Context, name, title string) (string, error) {
	f, ok := facts.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownFact, name)
	}
	if s.lookup == nil {
		return "", ErrNoFetcher
	}

	s.lookups.Add(1)
	obj, err := s.lookup.Object(ctx, title)
	if err != nil {
		s.failures.Add(1)
		metrics.RecordFactLookup(name, "error")
		return "", fmt.Errorf("lookup %s for %q: %w", name, title, err)
	}

	value, defaulted := f.Resolve(obj)
	if defaulted {
		s.defaults.Add(1)
		metrics.RecordFactDefault(name)
		s.log().Debug(ctx, "field absent, using default",
			logger.String("fact", name),
			logger.String("field", f.Field),
			logger.String("object_id", title),
		)
	}
	metrics.RecordFactLookup(name, "ok")
	return value, nil
}

// People lists the painting's credited artists.
func (s *Service) People(ctx context.Context, title string) ([]string, error) {
	if s.lookup == nil {
		return nil, ErrNoFetcher
	}

	s.artistReq.Add(1)
	obj, err := s.lookup.Object(ctx, title)
	if err != nil {
		s.failures.Add(1)
		metrics.RecordFactLookup("artists", "error")
		return nil, fmt.Errorf("lookup artists for %q: %w", title, err)
	}
	metrics.RecordFactLookup("artists", "ok")
	return facts.Artists(obj), nil
}

// Exists reports whether the museum knows title. Only a not-found answer
// yields false; any other failure is returned.
func (s *Service) Exists(ctx context.Context, title string) (bool, error) {
	if s.lookup == nil {
		return false, ErrNoFetcher
	}

	_, err := s.lookup.Object(ctx, title)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, museum.ErrNotFound), errors.Is(err, museum.ErrInvalidID):
		s.notFound.Add(1)
		return false, nil
	default:
		s.failures.Add(1)
		return false, fmt.Errorf("check %q: %w", title, err)
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"facts":           len(facts.Names()),
		"lookups":         s.lookups.Load(),
		"artistLookups":   s.artistReq.Load(),
		"failures":        s.failures.Load(),
		"defaultsApplied": s.defaults.Load(),
		"notFound":        s.notFound.Load(),
	}
	if s.lookup != nil {
		stats["cacheHits"] = s.lookup.Hits()
		stats["cacheMisses"] = s.lookup.Misses()
	}
	if sized, ok := s.cache.(interface{ Len() int }); ok {
		stats["cacheEntries"] = sized.Len()
	}
	stats["cacheEnabled"] = cacheEnabled(s.cache)
	return stats
}

func cacheEnabled(c cache.Cache) bool {
	if c == nil {
		return false
	}
	_, nop := c.(cache.Nop)
	return !nop
}
