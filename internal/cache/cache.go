// Package cache provides the result cache for upstream call payloads.
// Entries are keyed by deterministic fingerprints, tagged by kind, and
// expire on kind-specific TTLs. An expired entry is indistinguishable
// from a miss; entries are immutable once written and a later put simply
// supersedes the previous one.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"geoinsight_backend/platform/config"
	"geoinsight_backend/platform/logger"
)

// Kind tags a cache entry with the upstream capability that produced it.
type Kind string

const (
	KindGeocode   Kind = "geocode"
	KindPOI       Kind = "poi"
	KindRoute     Kind = "route"
	KindAIContent Kind = "ai_content"
)

// keyPrefix namespaces all cache keys written by this service.
const keyPrefix = "geo"

// Store is the underlying key/value-with-expiry engine. The cache treats
// it abstractly; only get/put/expire semantics are assumed. Implementations
// must be safe for concurrent use and atomic per key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// ResultCache caches upstream payloads with kind-specific TTLs.
type ResultCache struct {
	store Store
	cfg   config.CacheConfig
	log   *logger.Logger
}

// New creates a ResultCache over the given store.
func New(store Store, cfg config.CacheConfig, log *logger.Logger) *ResultCache {
	return &ResultCache{store: store, cfg: cfg, log: log}
}

func (c *ResultCache) fullKey(kind Kind, fingerprint string) string {
	return keyPrefix + ":" + string(kind) + ":" + fingerprint
}

// TTLFor returns the configured TTL for a kind.
func (c *ResultCache) TTLFor(kind Kind) time.Duration {
	switch kind {
	case KindGeocode:
		return c.cfg.GetGeocodeTTL()
	case KindPOI:
		return c.cfg.GetPOITTL()
	case KindRoute:
		return c.cfg.GetRouteTTL()
	case KindAIContent:
		return c.cfg.GetAIContentTTL()
	default:
		return time.Hour
	}
}

// Get looks up a fingerprint and unmarshals the payload into dest.
// An absent or expired entry returns (false, nil). Store failures are
// reported as misses with the error so callers can fall through to the
// provider rather than fail the request.
func (c *ResultCache) Get(ctx context.Context, kind Kind, fingerprint string, dest any) (bool, error) {
	key := c.fullKey(kind, fingerprint)

	raw, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn("cache_get_failed", "key", key, "error", err.Error())
		return false, err
	}
	if !found {
		c.log.CacheEvent(string(kind), key, false)
		return false, nil
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		// A corrupt entry is treated as a miss; the next put overwrites it.
		c.log.Warn("cache_payload_corrupt", "key", key, "error", err.Error())
		return false, nil
	}

	c.log.CacheEvent(string(kind), key, true)
	return true, nil
}

// Put writes a payload under the kind's TTL. Put failures are logged and
// swallowed: a cache write must never fail the request that produced the
// payload.
func (c *ResultCache) Put(ctx context.Context, kind Kind, fingerprint string, payload any) {
	key := c.fullKey(kind, fingerprint)

	raw, err := json.Marshal(payload)
	if err != nil {
		c.log.Warn("cache_marshal_failed", "key", key, "error", err.Error())
		return
	}

	if err := c.store.Set(ctx, key, raw, c.TTLFor(kind)); err != nil {
		c.log.Warn("cache_put_failed", "key", key, "error", err.Error())
	}
}
