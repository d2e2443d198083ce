package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/museumguide/internal/adapters/cache"
	"github.com/okian/museumguide/internal/adapters/http/api"
	"github.com/okian/museumguide/internal/adapters/http/swagger"
	"github.com/okian/museumguide/internal/adapters/museum"
	app "github.com/okian/museumguide/internal/app"
	"github.com/okian/museumguide/internal/config"
	"github.com/okian/museumguide/pkg/logger"
	"github.com/okian/museumguide/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
	// writeSlack is added to the museum timeout so a slow lookup can still
	// be answered with an error envelope.
	writeSlack = 5 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc, err := newService(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to build service", logger.Error(err))
		return
	}
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc, logger.Named("http")),
		ReadTimeout:       readTimeout,
		WriteTimeout:      cfg.MuseumTimeout() + writeSlack,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("museum", cfg.MuseumBaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(context.Background(), "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}

	log.Info(shutdownCtx, "server stopped", logger.Any("stats", svc.GetStats()))
}

// newService wires the museum client and object cache into the lookup service.
func newService(ctx context.Context, cfg *config.Config, log logger.Logger) (*app.Service, error) {
	client, err := museum.New(cfg.MuseumBaseURL, cfg.MuseumAPIKey,
		museum.WithTimeout(cfg.MuseumTimeout()),
		museum.WithLogger(log.Named("museum")),
	)
	if err != nil {
		return nil, err
	}

	objects, err := newCache(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return app.New(
		app.WithLogger(log.Named("service")),
		app.WithFetcher(client),
		app.WithCache(objects),
	), nil
}

// newCache picks the object cache: none when the TTL is zero, Redis when an
// address is configured, otherwise in memory.
func newCache(ctx context.Context, cfg *config.Config, log logger.Logger) (cache.Cache, error) {
	switch {
	case cfg.CacheTTL() <= 0:
		log.Info(ctx, "object cache disabled")
		return cache.Nop{}, nil
	case cfg.RedisAddr != "":
		log.Info(ctx, "using redis object cache", logger.String("redis_addr", cfg.RedisAddr))
		shared, err := cache.NewRedis(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL(),
		}, log)
		if err != nil {
			return nil, err
		}
		return shared, nil
	default:
		log.Info(ctx, "using in-memory object cache", logger.Int("cache_size", cfg.CacheSize))
		return cache.NewInMemory(
			cache.WithMaxSize(cfg.CacheSize),
			cache.WithTTL(cfg.CacheTTL()),
		), nil
	}
}

// newMux registers the docs and the dialogue API routes.
func newMux(ctx context.Context, svc *app.Service, log logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc, log).Register(ctx, mux)
	return mux
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
