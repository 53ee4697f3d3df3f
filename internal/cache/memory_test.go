package cache

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, UserIDKey(1), []byte(`{"id":1}`), time.Minute)

	got, ok := c.Get(ctx, UserIDKey(1))
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if string(got) != `{"id":1}` {
		t.Fatalf("value = %s, want {\"id\":1}", got)
	}

	if _, ok := c.Get(ctx, UserIDKey(2)); ok {
		t.Fatalf("expected miss for unknown key")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	current := time.Now()

	c := NewMemoryCache()
	c.now = func() time.Time { return current }

	ctx := context.Background()
	c.Set(ctx, AllUsersKey(), []byte(`[]`), 5*time.Minute)

	if _, ok := c.Get(ctx, AllUsersKey()); !ok {
		t.Fatalf("expected hit before expiry")
	}

	current = current.Add(5*time.Minute + time.Second)

	if _, ok := c.Get(ctx, AllUsersKey()); ok {
		t.Fatalf("expected miss after expiry")
	}
}

func TestMemoryCache_Flush(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, UserIDKey(1), []byte(`a`), time.Minute)
	c.Set(ctx, UserEmailKey("a@x.com"), []byte(`b`), time.Minute)
	c.Set(ctx, AllUsersKey(), []byte(`c`), time.Minute)

	c.Flush(ctx)

	for _, key := range []string{UserIDKey(1), UserEmailKey("a@x.com"), AllUsersKey()} {
		if _, ok := c.Get(ctx, key); ok {
			t.Fatalf("key %q survived flush", key)
		}
	}
}

func TestMemoryCache_ZeroTTLNotStored(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, UserIDKey(1), []byte(`a`), 0)

	if _, ok := c.Get(ctx, UserIDKey(1)); ok {
		t.Fatalf("zero-ttl entry must not be stored")
	}
}

func TestMemoryCache_ConcurrentFlush(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set(ctx, UserIDKey(n), []byte(`v`), time.Minute)
				c.Get(ctx, UserIDKey(n))
			}
		}(int64(i))
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 100; j++ {
			c.Flush(ctx)
		}
	}()

	wg.Wait()
}
