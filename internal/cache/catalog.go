// Package cache puts a Redis read-through cache in front of the catalog
// snapshot.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"printshop/internal/catalog"
	"printshop/internal/errx"
	"printshop/internal/logx"
	"printshop/internal/repo"
)

const keyPrefix = "catalog:"

// Catalog caches reads from an underlying repo.Reader. Redis failures are
// logged and the read goes to the underlying reader.
type Catalog struct {
	rdb  redis.Cmdable
	next repo.Reader
	ttl  time.Duration
}

func NewCatalog(rdb redis.Cmdable, next repo.Reader, ttl time.Duration) *Catalog {
	return &Catalog{rdb: rdb, next: next, ttl: ttl}
}

func productKey(handle string) string    { return keyPrefix + "product:" + handle }
func collectionKey(handle string) string { return keyPrefix + "collection:" + handle }

const (
	productsKey    = keyPrefix + "products"
	collectionsKey = keyPrefix + "collections"
)

func (c *Catalog) Products(ctx context.Context) ([]catalog.Product, error) {
	return through(ctx, c, productsKey, func() ([]catalog.Product, error) {
		return c.next.Products(ctx)
	})
}

func (c *Catalog) ProductByHandle(ctx context.Context, handle string) (*catalog.Product, error) {
	return through(ctx, c, productKey(handle), func() (*catalog.Product, error) {
		return c.next.ProductByHandle(ctx, handle)
	})
}

// ProductsByHandles reads every handle with one MGET and loads only the
// misses from the underlying reader. Handles found nowhere are left out.
func (c *Catalog) ProductsByHandles(ctx context.Context, handles []string) (map[string]catalog.Product, error) {
	out := make(map[string]catalog.Product, len(handles))
	handles = unique(handles)
	if len(handles) == 0 {
		return out, nil
	}

	keys := make([]string, len(handles))
	for i, h := range handles {
		keys[i] = productKey(h)
	}
	missing := handles
	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		logx.Warn().Err(errx.WrapRedis(err)).Int("keys", len(keys)).Msg("cache read failed")
	} else {
		missing = nil
		for i, v := range vals {
			raw, ok := v.(string)
			var p catalog.Product
			if !ok || json.Unmarshal([]byte(raw), &p) != nil {
				missing = append(missing, handles[i])
				continue
			}
			out[handles[i]] = p
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	loaded, err := c.next.ProductsByHandles(ctx, missing)
	if err != nil {
		return nil, err
	}
	pipe := c.rdb.Pipeline()
	for h, p := range loaded {
		out[h] = p
		b, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("marshal cache entry: %w", err)
		}
		pipe.Set(ctx, productKey(h), b, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logx.Warn().Err(errx.WrapRedis(err)).Int("keys", len(loaded)).Msg("cache write failed")
	}
	return out, nil
}

func unique(handles []string) []string {
	seen := make(map[string]bool, len(handles))
	out := make([]string, 0, len(handles))
	for _, h := range handles {
		if !seen[h] {
			seen[h] = true
			out = append(out, h)
		}
	}
	return out
}

func (c *Catalog) Collections(ctx context.Context) ([]catalog.Collection, error) {
	return through(ctx, c, collectionsKey, func() ([]catalog.Collection, error) {
		return c.next.Collections(ctx)
	})
}

func (c *Catalog) CollectionByHandle(ctx context.Context, handle string) (*catalog.Collection, error) {
	return through(ctx, c, collectionKey(handle), func() (*catalog.Collection, error) {
		return c.next.CollectionByHandle(ctx, handle)
	})
}

// Invalidate drops every cached catalog key.
func (c *Catalog) Invalidate(ctx context.Context) error {
	var keys []string
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logx.Error().Err(err).Msg("failed to scan catalog keys")
		return errx.WrapRedis(err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logx.Error().Err(err).Int("keys", len(keys)).Msg("failed to delete catalog keys")
		return errx.WrapRedis(err)
	}
	logx.Debug().Int("keys", len(keys)).Msg("catalog cache invalidated")
	return nil
}

func through[T any](ctx context.Context, c *Catalog, key string, load func() (T, error)) (T, error) {
	var zero T

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		logx.Warn().Str("key", key).Msg("corrupt cache entry, reloading")
	case errors.Is(err, redis.Nil):
	default:
		logx.Warn().Err(errx.WrapRedis(err)).Str("key", key).Msg("cache read failed")
	}

	v, err := load()
	if err != nil {
		return zero, err
	}

	b, err := json.Marshal(v)
	if err != nil {
		return v, fmt.Errorf("marshal cache entry: %w", err)
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		logx.Warn().Err(errx.WrapRedis(err)).Str("key", key).Dur("ttl", c.ttl).Msg("cache write failed")
	}
	return v, nil
}

var _ repo.Reader = (*Catalog)(nil)
