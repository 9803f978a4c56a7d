// Package cache stores transformed by-id lookup results in Redis so that
// widgets materializing a pre-selected value do not hit the database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"coldstore/internal/lookup"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "coldstore:lookup:"

// Client is the subset of redis commands the cache needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Redis implements lookup.Cache. Any redis failure is logged and treated
// as a miss.
type Redis struct {
	client Client
	ttl    time.Duration
	log    *zap.Logger
}

var _ lookup.Cache = (*Redis)(nil)

func NewRedis(client Client, ttl time.Duration, log *zap.Logger) *Redis {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Redis{client: client, ttl: ttl, log: log}
}

// Options holds the connection settings for Dial.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Dial returns a redis client, or nil when no address is configured.
func Dial(opts Options) *redis.Client {
	if opts.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
}

func Key(slug, id string) string {
	return keyPrefix + slug + ":" + id
}

func (c *Redis) Get(ctx context.Context, slug, id string) (lookup.Item, bool) {
	raw, err := c.client.Get(ctx, Key(slug, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.Warn("lookup cache get failed", zap.String("entity", slug), zap.Error(err))
		return nil, false
	}
	var item lookup.Item
	if err := json.Unmarshal(raw, &item); err != nil {
		c.log.Warn("lookup cache entry corrupt", zap.String("entity", slug), zap.Error(err))
		return nil, false
	}
	return item, true
}

func (c *Redis) Set(ctx context.Context, slug, id string, item lookup.Item) {
	raw, err := json.Marshal(item)
	if err != nil {
		c.log.Warn("lookup cache encode failed", zap.String("entity", slug), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, Key(slug, id), raw, c.ttl).Err(); err != nil {
		c.log.Warn("lookup cache set failed", zap.String("entity", slug), zap.Error(err))
	}
}
