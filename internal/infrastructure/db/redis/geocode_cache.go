package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
)

// GeocodeCache stores resolved coordinates in Redis, keyed by normalized
// address. Key format: geo:<normalized_address>
//
// Staleness is judged logically from the entry's resolved_at on read; the
// Redis TTL is set to the same window only as storage hygiene, so a stale
// record is never served even if the TTL has not fired yet.
type GeocodeCache struct {
	client *redis.Client
	expiry time.Duration
	log    zerolog.Logger
}

// NewGeocodeCache creates a GeocodeCache wrapping the given Redis client.
// A non-positive expiry disables both the staleness check and the TTL.
func NewGeocodeCache(client *redis.Client, expiry time.Duration, log zerolog.Logger) *GeocodeCache {
	return &GeocodeCache{client: client, expiry: expiry, log: log}
}

// Get fails soft: backend errors and undecodable payloads are logged and
// reported as a miss so a broken cache only costs extra external lookups.
func (c *GeocodeCache) Get(ctx context.Context, key string) (domain.GeocodeEntry, bool) {
	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("key", key).Msg("geocode cache read failed")
		}
		return domain.GeocodeEntry{}, false
	}

	var entry domain.GeocodeEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("geocode cache entry undecodable")
		return domain.GeocodeEntry{}, false
	}

	if entry.Stale(time.Now().UTC(), c.expiry) {
		return domain.GeocodeEntry{}, false
	}
	return entry, true
}

// Put overwrites any existing entry whole (last-write-wins, no merge) and
// stamps the resolution time.
func (c *GeocodeCache) Put(ctx context.Context, key string, coords domain.Coordinates) error {
	entry := domain.GeocodeEntry{
		Coordinates: coords,
		ResolvedAt:  time.Now().UTC(),
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	ttl := c.expiry
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, c.key(key), raw, ttl).Err()
}

func (c *GeocodeCache) key(normalized string) string {
	return "geo:" + normalized
}
