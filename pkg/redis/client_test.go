package redis

import (
	"fmt"
	"testing"

	goredis "github.com/redis/go-redis/v9"

	"github.com/maxscharwath/tacocrew-sub004/pkg/config"
)

func TestIdempotencyKeyNamespacing(t *testing.T) {
	t.Parallel()

	c := &Client{}
	got := c.IdempotencyKey("group_order_submit", "abc-123")
	want := "tc:idempotency:group_order_submit:abc-123"
	if got != want {
		t.Fatalf("key = %q, want %q", got, want)
	}
}

func TestBuildKeySkipsEmptyParts(t *testing.T) {
	t.Parallel()

	c := &Client{}
	got := c.buildKey("idempotency", "", "  ", "id")
	if got != "tc:idempotency:id" {
		t.Fatalf("key = %q", got)
	}
}

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	t.Parallel()

	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}
}

func TestIsNil(t *testing.T) {
	t.Parallel()

	if !IsNil(goredis.Nil) {
		t.Fatal("redis.Nil not detected")
	}
	if IsNil(fmt.Errorf("boom")) {
		t.Fatal("plain error misclassified")
	}
}
