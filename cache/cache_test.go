package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestDisabledCacheIsNoOp(t *testing.T) {
	os.Unsetenv("REDIS_URL")
	c := New()

	if c.Enabled() {
		t.Fatal("cache should be disabled without REDIS_URL")
	}

	ctx := context.Background()
	if _, ok := c.GetStatus(ctx); ok {
		t.Error("disabled cache should always miss")
	}

	// Writes and invalidation must not panic when disabled.
	c.SetStatus(ctx, `{"isOpen":true}`, 10*time.Second)
	c.InvalidateStatus(ctx)
	if err := c.Close(); err != nil {
		t.Errorf("close on disabled cache: %v", err)
	}
}

func TestInvalidURLDisablesCache(t *testing.T) {
	os.Setenv("REDIS_URL", "://not-a-url")
	defer os.Unsetenv("REDIS_URL")

	c := New()
	if c.Enabled() {
		t.Fatal("cache should be disabled for an unparseable REDIS_URL")
	}
}
