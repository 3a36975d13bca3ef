package cache

import (
	"context"
	"strings"
	"time"

	"github.com/bestsenki/storefront/internal/config"
	"github.com/bestsenki/storefront/internal/logger"
	goCache "github.com/patrickmn/go-cache"
)

const (
	DefaultExpiration      = 30 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute
)

// InMemoryCache implements the Cache interface using github.com/patrickmn/go-cache.
// cache.enabled only gates the read-through Cache methods; the Force* methods
// back state that must live in memory regardless, such as checkout sessions.
type InMemoryCache struct {
	cache  *goCache.Cache
	cfg    *config.Configuration
	logger *logger.Logger
}

func NewInMemoryCache(cfg *config.Configuration, log *logger.Logger) *InMemoryCache {
	log.Infow("initializing in-memory cache", "enabled", cfg.Cache.Enabled)
	return &InMemoryCache{
		cache:  goCache.New(DefaultExpiration, DefaultCleanupInterval),
		cfg:    cfg,
		logger: log,
	}
}

func (c *InMemoryCache) Get(ctx context.Context, key string) (interface{}, bool) {
	if !c.cfg.Cache.Enabled {
		return nil, false
	}
	span := startSpan(ctx, "cache.get", key)
	v, ok := c.cache.Get(key)
	finishSpan(span, ok)
	return v, ok
}

func (c *InMemoryCache) ForceCacheGet(_ context.Context, key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *InMemoryCache) ForceCacheSet(_ context.Context, key string, value interface{}, expiration time.Duration) {
	c.cache.Set(key, value, expiration)
}

func (c *InMemoryCache) ForceCacheDelete(_ context.Context, key string) {
	c.cache.Delete(key)
}

func (c *InMemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	if !c.cfg.Cache.Enabled {
		return
	}
	span := startSpan(ctx, "cache.put", key)
	c.cache.Set(key, value, expiration)
	finishSpan(span, false)
}

func (c *InMemoryCache) Delete(_ context.Context, key string) {
	if !c.cfg.Cache.Enabled {
		return
	}
	c.cache.Delete(key)
}

// DeleteByPrefix removes all keys with the given prefix
func (c *InMemoryCache) DeleteByPrefix(_ context.Context, prefix string) {
	if !c.cfg.Cache.Enabled {
		return
	}
	for k := range c.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			c.cache.Delete(k)
		}
	}
}

func (c *InMemoryCache) Flush(_ context.Context) {
	if !c.cfg.Cache.Enabled {
		return
	}
	c.cache.Flush()
}
