package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"

	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/catalog/model"
)

func newCache(t *testing.T, ttl time.Duration) (*RedisMenuCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	t.Cleanup(mr.Close)

	client := redisv9.NewClient(&redisv9.Options{
		Addr: mr.Addr(),
	})
	return NewRedisMenuCache(client, ttl), mr
}

var items = []model.MenuItem{
	{Name: "Soup", Price: 12.5, Description: "hot", Category: "starters"},
	{Name: "Cake", Price: 7, Description: "sweet", Category: "desserts"},
}

func TestRedisMenuCache_MissThenHit(t *testing.T) {
	cache, _ := newCache(t, time.Minute)
	ctx := context.Background()

	_, gen, ok, err := cache.Get(ctx)
	if err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := cache.Set(ctx, gen, items); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, _, ok, err := cache.Get(ctx)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(got) != 2 || got[0].Name != "Soup" || got[1].Price != 7 {
		t.Fatalf("unexpected items %+v", got)
	}
}

func TestRedisMenuCache_Invalidate(t *testing.T) {
	cache, _ := newCache(t, time.Minute)
	ctx := context.Background()

	_, gen, _, _ := cache.Get(ctx)
	_ = cache.Set(ctx, gen, items)
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, _, ok, _ := cache.Get(ctx); ok {
		t.Fatal("entry should be gone after Invalidate")
	}
}

func TestRedisMenuCache_SetAfterInvalidateIsNotServed(t *testing.T) {
	cache, _ := newCache(t, time.Minute)
	ctx := context.Background()

	// reader misses and loads the old list from the database...
	_, gen, _, _ := cache.Get(ctx)
	// ...a mutation commits and invalidates in between...
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	// ...and the reader stores what it loaded.
	if err := cache.Set(ctx, gen, items); err != nil {
		t.Fatalf("Set: %v", err)
	}

	_, newGen, ok, err := cache.Get(ctx)
	if err != nil || ok {
		t.Fatalf("list loaded before Invalidate must not be served, ok=%v err=%v", ok, err)
	}
	if newGen == gen {
		t.Fatal("Invalidate should advance the generation")
	}
}

func TestRedisMenuCache_Expires(t *testing.T) {
	cache, mr := newCache(t, time.Minute)
	ctx := context.Background()

	_ = cache.Set(ctx, 0, items)
	mr.FastForward(2 * time.Minute)

	if _, _, ok, _ := cache.Get(ctx); ok {
		t.Fatal("entry should expire after ttl")
	}
}

func TestRedisMenuCache_CorruptEntry(t *testing.T) {
	cache, mr := newCache(t, time.Minute)
	ctx := context.Background()

	if err := mr.Set(menuKey(0), "not json"); err != nil {
		t.Fatal(err)
	}
	if _, _, ok, err := cache.Get(ctx); err == nil || ok {
		t.Fatalf("expected decode error, got ok=%v err=%v", ok, err)
	}
	if mr.Exists(menuKey(0)) {
		t.Fatal("corrupt entry should be dropped")
	}
}

func TestRedisMenuCache_Unavailable(t *testing.T) {
	cache, mr := newCache(t, time.Minute)
	mr.Close()

	if _, _, _, err := cache.Get(context.Background()); err == nil {
		t.Fatal("expected error when redis is down")
	}
}
