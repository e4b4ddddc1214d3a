// Package cache provides byte-oriented key/value caches with TTLs.
//
// Three backends implement [Cache]:
//   - [FileCache] stores entries as JSON files under a directory (CLI default)
//   - [RedisCache] stores entries in Redis, for ledgers shared between hosts
//   - [NullCache] stores nothing
//
// Keys are built by a [Keyer] so several tools can share one backend.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store for opaque bytes.
// Get reports a miss with ok=false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
