package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/catalog/model"
	"github.com/redis/go-redis/v9"
)

const (
	generationKey = "menu:generation"
	menuKeyPrefix = "menu:available:"
)

// RedisMenuCache keeps one menu per generation. Invalidate bumps the
// generation, so entries written for an older one are never read again and
// simply expire.
type RedisMenuCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisMenuCache(client *redis.Client, ttl time.Duration) *RedisMenuCache {
	return &RedisMenuCache{
		client: client,
		ttl:    ttl,
	}
}

func menuKey(gen int64) string {
	return menuKeyPrefix + strconv.FormatInt(gen, 10)
}

func (r *RedisMenuCache) generation(ctx context.Context) (int64, error) {
	gen, err := r.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (r *RedisMenuCache) Get(ctx context.Context) ([]model.MenuItem, int64, bool, error) {
	gen, err := r.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}

	raw, err := r.client.Get(ctx, menuKey(gen)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, gen, false, nil
	case err != nil:
		return nil, 0, false, err
	}

	var items []model.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		// unreadable entry: drop it so the next Set replaces it
		_ = r.client.Del(ctx, menuKey(gen)).Err()
		return nil, 0, false, err
	}
	return items, gen, true, nil
}

func (r *RedisMenuCache) Set(ctx context.Context, gen int64, items []model.MenuItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, menuKey(gen), raw, r.ttl).Err()
}

func (r *RedisMenuCache) Invalidate(ctx context.Context) error {
	return r.client.Incr(ctx, generationKey).Err()
}

// NopMenuCache is used when no redis address is configured.
type NopMenuCache struct{}

func (NopMenuCache) Get(context.Context) ([]model.MenuItem, int64, bool, error) {
	return nil, 0, false, nil
}
func (NopMenuCache) Set(context.Context, int64, []model.MenuItem) error { return nil }
func (NopMenuCache) Invalidate(context.Context) error                   { return nil }
