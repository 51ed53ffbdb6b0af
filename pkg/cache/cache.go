package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	opTimeout = 5 * time.Second

	sectionTTL = 1 * time.Hour
	entityTTL  = 1 * time.Hour
)

// ErrCacheMiss is returned by Get when the key is absent or the cache is
// disabled. Callers fall through to the repository either way.
var ErrCacheMiss = errors.New("cache miss")

type Cache struct {
	client  *redis.Client
	enabled bool
}

// NewCache connects to Redis at addr. With enable=false it returns a no-op
// cache so callers never have to branch on configuration.
func NewCache(addr string, enable bool) (*Cache, error) {
	if !enable {
		return &Cache{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		PoolSize:     10,
		MinIdleConns: 5,
		DialTimeout:  opTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{client: client, enabled: true}, nil
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

func (c *Cache) Set(key string, value interface{}, ttl time.Duration) error {
	if !c.enabled {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	ctx, cancel := opContext()
	defer cancel()
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *Cache) Get(key string, dest interface{}) error {
	if !c.enabled {
		return ErrCacheMiss
	}

	ctx, cancel := opContext()
	defer cancel()

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (c *Cache) Delete(keys ...string) error {
	if !c.enabled || len(keys) == 0 {
		return nil
	}

	ctx, cancel := opContext()
	defer cancel()
	return c.client.Del(ctx, keys...).Err()
}

// DeletePattern removes every key matching the pattern via SCAN, so a large
// keyspace never blocks the server the way KEYS would.
func (c *Cache) DeletePattern(pattern string) error {
	if !c.enabled {
		return nil
	}

	ctx, cancel := opContext()
	defer cancel()

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var matched []string
	for iter.Next(ctx) {
		matched = append(matched, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(matched) == 0 {
		return nil
	}
	return c.client.Del(ctx, matched...).Err()
}

func (c *Cache) Exists(key string) (bool, error) {
	if !c.enabled {
		return false, nil
	}

	ctx, cancel := opContext()
	defer cancel()

	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

func (c *Cache) Close() error {
	if !c.enabled {
		return nil
	}
	return c.client.Close()
}

func sectionKey(id string) string      { return "section:" + id }
func entityKey(kind, id string) string { return kind + ":" + id }

func (c *Cache) CacheSection(sectionID string, section interface{}) error {
	return c.Set(sectionKey(sectionID), section, sectionTTL)
}

func (c *Cache) GetCachedSection(sectionID string, dest interface{}) error {
	return c.Get(sectionKey(sectionID), dest)
}

func (c *Cache) InvalidateSection(sectionID string) error {
	return c.Delete(sectionKey(sectionID))
}

func (c *Cache) CacheEntity(kind, id string, entity interface{}) error {
	return c.Set(entityKey(kind, id), entity, entityTTL)
}

func (c *Cache) GetCachedEntity(kind, id string, dest interface{}) error {
	return c.Get(entityKey(kind, id), dest)
}

// InvalidateEntity drops the entity's own key and any cached list results
// for its kind.
func (c *Cache) InvalidateEntity(kind, id string) error {
	if err := c.Delete(entityKey(kind, id)); err != nil {
		return err
	}
	return c.DeletePattern(kind + ":list:*")
}
