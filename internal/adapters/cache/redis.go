package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/okian/museumguide/internal/domain/model"
	"github.com/okian/museumguide/pkg/logger"
)

const (
	defaultRedisPrefix = "museumguide:object:"
	redisDialTimeout   = 2 * time.Second
	redisOpTimeout     = 500 * time.Millisecond
)

// RedisConfig describes the shared cache connection.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	Prefix   string
}

// Redis stores objects as JSON in a shared Redis so every replica benefits
// from one replica's fetch.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger logger.Logger
}

var _ Cache = (*Redis)(nil)

// NewRedis connects and pings Redis.
func NewRedis(ctx context.Context, cfg RedisConfig, l logger.Logger) (*Redis, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis address required")
	}
	if l == nil {
		l = logger.Nop()
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  redisDialTimeout,
		ReadTimeout:  redisOpTimeout,
		WriteTimeout: redisOpTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	return &Redis{client: client, prefix: prefix, ttl: ttl, logger: l.Named("cache")}, nil
}

func (r *Redis) key(id string) string {
	return r.prefix + id
}

// Get returns the cached object. Redis failures are logged and read as misses
// so the museum API stays the source of truth.
func (r *Redis) Get(ctx context.Context, id string) (*model.Object, bool) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn(ctx, "redis get failed", logger.String("object_id", id), logger.Error(err))
		}
		return nil, false
	}
	var obj model.Object
	if err := json.Unmarshal(raw, &obj); err != nil {
		r.logger.Warn(ctx, "dropping undecodable cache entry", logger.String("object_id", id), logger.Error(err))
		_ = r.client.Del(ctx, r.key(id)).Err()
		return nil, false
	}
	return &obj, true
}

// Set stores obj with the configured TTL.
func (r *Redis) Set(ctx context.Context, id string, obj *model.Object) {
	if obj == nil {
		return
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		r.logger.Warn(ctx, "encode cache entry failed", logger.String("object_id", id), logger.Error(err))
		return
	}
	if err := r.client.Set(ctx, r.key(id), raw, r.ttl).Err(); err != nil {
		r.logger.Warn(ctx, "redis set failed", logger.String("object_id", id), logger.Error(err))
	}
}

// Close closes the Redis connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
