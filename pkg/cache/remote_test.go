package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "ftp://localhost:6379"); err == nil {
		t.Error("NewRedisCache() with bad scheme should fail")
	}
}

func TestRedisCacheKeys(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	c := NewRedisCacheFromClient(client)
	if got := c.key("layout:abc"); got != "mastfig:layout:abc" {
		t.Errorf("key() = %q", got)
	}
	c = NewRedisCacheFromClient(client, WithRedisPrefix("fig:"))
	if got := c.key("x"); got != "fig:x" {
		t.Errorf("key() with prefix = %q", got)
	}
}

func TestRedisCacheLive(t *testing.T) {
	url := os.Getenv("MASTFIG_TEST_REDIS_URL")
	if url == "" {
		t.Skip("MASTFIG_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, url, WithRedisPrefix("mastfig-test:"))
	if err != nil {
		t.Fatalf("NewRedisCache() error: %v", err)
	}
	defer c.Close()
	exerciseCache(t, c)

	if _, err := c.Clear(ctx); err != nil {
		t.Errorf("Clear() error: %v", err)
	}
}

func TestNewMongoCacheBadURI(t *testing.T) {
	if _, err := NewMongoCache(context.Background(), "not-a-mongo-uri"); err == nil {
		t.Error("NewMongoCache() with bad URI should fail")
	}
}

func TestMongoEntry(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	e := newMongoEntry("k", []byte("v"), time.Hour, now)
	if e.Key != "k" || string(e.Data) != "v" || !e.CreatedAt.Equal(now) {
		t.Errorf("entry = %+v", e)
	}
	if e.ExpiresAt == nil || !e.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("ExpiresAt = %v", e.ExpiresAt)
	}
	if e.expired(now.Add(59 * time.Minute)) {
		t.Error("entry expired early")
	}
	if !e.expired(now.Add(61 * time.Minute)) {
		t.Error("entry did not expire")
	}

	forever := newMongoEntry("k", nil, 0, now)
	if forever.ExpiresAt != nil || forever.expired(now.Add(1000*time.Hour)) {
		t.Error("zero TTL entry should never expire")
	}
}

func TestMongoCacheLive(t *testing.T) {
	uri := os.Getenv("MASTFIG_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("MASTFIG_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	c, err := NewMongoCache(ctx, uri, WithMongoDatabase("mastfig_test"), WithMongoCollection("cache_test"))
	if err != nil {
		t.Fatalf("NewMongoCache() error: %v", err)
	}
	defer c.Close()
	exerciseCache(t, c)

	if _, err := c.Clear(ctx); err != nil {
		t.Errorf("Clear() error: %v", err)
	}
}

func exerciseCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if err := c.Set(ctx, "artifact:h:svg", []byte("<svg/>"), time.Minute); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, hit, err := c.Get(ctx, "artifact:h:svg")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Errorf("Get() = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, "artifact:h:svg"); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "artifact:h:svg"); hit {
		t.Error("entry survived Delete")
	}
}
