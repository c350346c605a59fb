// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client on DB 15 for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(envOr("VALKEY_HOST", "localhost"), envOr("VALKEY_PORT", "6379")),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, pageKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	testValkeyClient(t) // skip early when unreachable

	client, err := ConnectValkey(context.Background(),
		envOr("VALKEY_HOST", "localhost"), envOr("VALKEY_PORT", "6379"),
		os.Getenv("VALKEY_PASSWORD"), 15)
	if err != nil {
		t.Fatalf("ConnectValkey: %v", err)
	}
	defer client.Close()

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Errorf("ping after connect: %v", err)
	}
}

func TestConnectValkeyUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	_, port, _ := net.SplitHostPort(ln.Addr().String())
	ln.Close()

	if _, err := ConnectValkey(context.Background(), "127.0.0.1", port, "", 0); err == nil {
		t.Fatal("expected error connecting to a closed port")
	}
}

func TestPageCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPageCache(client, time.Minute)
	ctx := context.Background()

	if _, ok := pc.Get(ctx, "pizza-place-a1b2c3"); ok {
		t.Fatal("expected miss before Set")
	}

	html := []byte("<html><body>Pizza</body></html>")
	pc.Set(ctx, "pizza-place-a1b2c3", html)

	got, ok := pc.Get(ctx, "pizza-place-a1b2c3")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if string(got) != string(html) {
		t.Errorf("Get = %q, want %q", got, html)
	}

	ttl, err := client.TTL(ctx, Key("pizza-place-a1b2c3")).Result()
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL = %v, want within (0, 1m]", ttl)
	}
}

func TestPageCacheInvalidateAll(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPageCache(client, time.Minute)
	ctx := context.Background()

	for _, slug := range []string{"a-000001", "b-000002", "c-000003"} {
		pc.Set(ctx, slug, []byte(slug))
	}
	// Keys outside the prefix are left alone.
	client.Set(ctx, "site:a-000001", "record", time.Minute)
	t.Cleanup(func() { client.Del(ctx, "site:a-000001") })

	if n := pc.InvalidateAll(ctx); n != 3 {
		t.Errorf("InvalidateAll deleted %d keys, want 3", n)
	}
	if _, ok := pc.Get(ctx, "a-000001"); ok {
		t.Error("page should be gone after InvalidateAll")
	}
	if v, _ := client.Get(ctx, "site:a-000001").Result(); v != "record" {
		t.Error("non-page key was removed")
	}
}

func TestKey(t *testing.T) {
	if got := Key("my-site-abc123"); got != "page:my-site-abc123" {
		t.Errorf("Key = %q", got)
	}
}

func TestDefaultTTL(t *testing.T) {
	pc := NewPageCache(nil, 0)
	if pc.TTL() != DefaultPageTTL {
		t.Errorf("TTL = %v, want %v", pc.TTL(), DefaultPageTTL)
	}
	pc = NewPageCache(nil, 2*time.Minute)
	if pc.TTL() != 2*time.Minute {
		t.Errorf("TTL = %v, want 2m", pc.TTL())
	}
}

var _ Pages = (*PageCache)(nil)
