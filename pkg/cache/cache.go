package cache

import (
	"context"
	"time"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	cache "github.com/go-pkgz/expirable-cache/v3"
)

type Cache[T any] struct {
	cache cache.Cache[string, T]
}

// New creates a cache which holds the values for the specified time. Zero TTL means no expiration.
func New[T any](ttl time.Duration) *Cache[T] {
	c := cache.NewCache[string, T]()
	if ttl > 0 {
		c = c.WithTTL(ttl)
	}
	return &Cache[T]{cache: c}
}

func (c *Cache[T]) Cached(ctx context.Context, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	if value, ok := c.cache.Get(key); ok {
		logging.L(ctx).Debugf("Got %s from cache.", key)
		return value, nil
	}

	value, err := fetch(ctx)
	if err == nil {
		logging.L(ctx).Debugf("Add %s to cache.", key)
		c.cache.Add(key, value)
	}

	return value, err
}

// Retain drops all values except the specified ones.
func (c *Cache[T]) Retain(ctx context.Context, keys []string) {
	retain := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		retain[key] = struct{}{}
	}

	c.cache.InvalidateFn(func(key string) bool {
		if _, ok := retain[key]; ok {
			return false
		}

		logging.L(ctx).Debugf("Drop %s from cache.", key)
		return true
	})
}

func (c *Cache[T]) Len() int {
	return c.cache.Len()
}
