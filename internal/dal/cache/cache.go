package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/ceibacafe/ordering/internal/service/models/menuitem"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// MenuItemCache is a read-through cache for menu item lookups. A miss or a
// broken Redis is never an error to callers; the repository is the source
// of truth.
type MenuItemCache struct {
	client *redis.Client
	ttl    time.Duration
}

// MustNewMenuItemCache connects to Redis using the loaded config.
func MustNewMenuItemCache() *MenuItemCache {
	client := redis.NewClient(&redis.Options{
		Addr: viper.GetString("redis.addr"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		panic("failed to connect to redis: " + err.Error())
	}

	ttlSeconds := viper.GetInt("redis.menu_ttl_seconds")
	if ttlSeconds == 0 {
		ttlSeconds = 300
	}

	return &MenuItemCache{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// NewMenuItemCache wraps an existing client; used by tests.
func NewMenuItemCache(client *redis.Client, ttl time.Duration) *MenuItemCache {
	return &MenuItemCache{client: client, ttl: ttl}
}

// Close closes the underlying Redis connection.
func (c *MenuItemCache) Close() error {
	return c.client.Close()
}

func (c *MenuItemCache) key(id int64) string {
	return "menu-item:" + strconv.FormatInt(id, 10)
}

// Get returns the cached item, or nil on a miss.
func (c *MenuItemCache) Get(ctx context.Context, id int64) (*menuitem.MenuItem, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var item menuitem.MenuItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, err
	}

	return &item, nil
}

// Set stores the item for the configured TTL.
func (c *MenuItemCache) Set(ctx context.Context, item *menuitem.MenuItem) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, c.key(item.ID), raw, c.ttl).Err()
}

// Invalidate drops the cached item after an admin edit.
func (c *MenuItemCache) Invalidate(ctx context.Context, id int64) error {
	return c.client.Del(ctx, c.key(id)).Err()
}
