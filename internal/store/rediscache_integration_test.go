package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"rateshop/internal/engine"
)

// Tests are skipped unless TEST_REDIS_ADDR points at a disposable Redis.
func setupRedisTest(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set; skipping redis integration tests")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("redis ping failed: %v", err)
	}
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})
	return client
}

// countingZones counts pass-through lookups so cache hits are observable.
type countingZones struct {
	inner engine.ZoneSource
	calls int
}

func (c *countingZones) GetZone(ctx context.Context, pincode string) (*engine.PincodeZone, error) {
	c.calls++
	return c.inner.GetZone(ctx, pincode)
}

func TestCachedZones_ReadThrough(t *testing.T) {
	client := setupRedisTest(t)
	ctx := context.Background()

	inner := &countingZones{inner: NewMemory().AddZone(engine.PincodeZone{Pincode: "110001", Zone: "N1"})}
	cached := NewCachedZones(inner, client, time.Minute, nil)

	z, err := cached.GetZone(ctx, "110001")
	if err != nil || z == nil || z.Zone != "N1" {
		t.Fatalf("first lookup: zone=%+v err=%v", z, err)
	}
	z, err = cached.GetZone(ctx, "110001")
	if err != nil || z == nil || z.Zone != "N1" {
		t.Fatalf("second lookup: zone=%+v err=%v", z, err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected one pass-through lookup, got %d", inner.calls)
	}
}

func TestCachedZones_MissesAreNotCached(t *testing.T) {
	client := setupRedisTest(t)
	ctx := context.Background()

	inner := &countingZones{inner: NewMemory()}
	cached := NewCachedZones(inner, client, time.Minute, nil)

	for i := 0; i < 2; i++ {
		z, err := cached.GetZone(ctx, "999999")
		if err != nil || z != nil {
			t.Fatalf("expected absent zone, got %+v err=%v", z, err)
		}
	}
	if inner.calls != 2 {
		t.Fatalf("absent zones must pass through every time, got %d calls", inner.calls)
	}
}
