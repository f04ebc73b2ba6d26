package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"rateshop/internal/engine"
)

const zoneCachePrefix = "zone:"

// CachedZones is a read-through Redis cache in front of a ZoneSource. Zone
// rows are immutable reference data maintained out of band, so a short TTL is
// all the invalidation needed. The cache is a best-effort optimization:
// Redis failures fall through to the inner source and never fail a lookup.
type CachedZones struct {
	inner  engine.ZoneSource
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewCachedZones(inner engine.ZoneSource, client *redis.Client, ttl time.Duration, log *zap.Logger) *CachedZones {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedZones{inner: inner, client: client, ttl: ttl, log: log}
}

func (c *CachedZones) GetZone(ctx context.Context, pincode string) (*engine.PincodeZone, error) {
	key := zoneCachePrefix + pincode
	if raw, err := c.client.Get(ctx, key).Result(); err == nil {
		var z engine.PincodeZone
		if jerr := json.Unmarshal([]byte(raw), &z); jerr == nil {
			return &z, nil
		}
	} else if err != redis.Nil {
		c.log.Warn("zone cache read failed", zap.String("pincode", pincode), zap.Error(err))
	}

	zone, err := c.inner.GetZone(ctx, pincode)
	if err != nil || zone == nil {
		return zone, err
	}
	if raw, jerr := json.Marshal(zone); jerr == nil {
		if serr := c.client.Set(ctx, key, raw, c.ttl).Err(); serr != nil {
			c.log.Warn("zone cache write failed", zap.String("pincode", pincode), zap.Error(serr))
		}
	}
	return zone, nil
}
