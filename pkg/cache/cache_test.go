package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "receipt:com.example:serdes:1.0.0"); hit {
		t.Fatal("empty cache reported a hit")
	}
	if err := c.Set(ctx, "receipt:com.example:serdes:1.0.0", []byte(`{"ok":true}`), 0); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "receipt:com.example:serdes:1.0.0")
	if err != nil || !hit || string(data) != `{"ok":true}` {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "receipt:com.example:serdes:1.0.0"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "receipt:com.example:serdes:1.0.0"); hit {
		t.Error("hit after Delete")
	}
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "run:abc", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "run:abc"); hit {
		t.Error("expired entry reported as hit")
	}
}

func TestFileCache_CorruptEntryIsRemoved(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	const key = "receipt:com.example:serdes:1.0.0"
	if err := c.Set(ctx, key, []byte("x"), 0); err != nil {
		t.Fatal(err)
	}

	h := Hash([]byte(key))
	path := filepath.Join(dir, h[:2], h[2:]+".json")
	if err := os.WriteFile(path, []byte("{truncated"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, key); hit || err != nil {
		t.Fatalf("Get of corrupt entry = %v, %v; want miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("corrupt entry left on disk: %v", err)
	}
}

func TestKeyType(t *testing.T) {
	tests := map[string]string{
		"receipt:com.example:serdes:1.0.0":        "receipt",
		"team-a:receipt:com.example:serdes:1.0.0": "receipt",
		"run:0b7c":                                "run",
		"index:com.example:serdes":                "other",
	}
	for key, want := range tests {
		if got := keyType(key); got != want {
			t.Errorf("keyType(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestRedisCache(t *testing.T) {
	url := os.Getenv("PUBKIT_TEST_REDIS_URL")
	if url == "" {
		t.Skip("PUBKIT_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, url)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	key := "pubkit:test:" + Hash([]byte(t.Name()))
	defer c.Delete(ctx, key)

	if err := c.Set(ctx, key, []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}
}

func TestNewRedisCache_BadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not-a-url"); err == nil {
		t.Error("expected error for malformed url")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestKeyers(t *testing.T) {
	k := NewDefaultKeyer()
	if got := k.ReceiptKey("com.example:serdes:1.0.0"); got != "receipt:com.example:serdes:1.0.0" {
		t.Errorf("ReceiptKey = %s", got)
	}

	scoped := NewScopedKeyer(nil, "pubkit:staging:")
	if got := scoped.RunKey("abc"); got != "pubkit:staging:run:abc" {
		t.Errorf("scoped RunKey = %s", got)
	}
	if got := scoped.ReceiptKey("g:a:1"); got != "pubkit:staging:receipt:g:a:1" {
		t.Errorf("scoped ReceiptKey = %s", got)
	}
}
