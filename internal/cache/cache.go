package cache

import (
	"context"
	"time"
)

// SnapshotPrefix namespaces aggregated snapshots in the store.
const SnapshotPrefix = "stock_analysis:"

// SnapshotTTL is how long a snapshot stays servable from the cache.
const SnapshotTTL = 24 * time.Hour

// SnapshotKey returns the cache key for a normalized symbol.
func SnapshotKey(symbol string) string { return SnapshotPrefix + symbol }

// Cache is a best-effort TTL key-value store. Implementations never return
// errors: a broken store behaves as an always-empty one.
type Cache interface {
	// Get returns the stored bytes and true, or nil and false on miss or failure.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value with ttl and reports whether it was stored.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool
	// Delete removes key and reports whether the store accepted the command.
	Delete(ctx context.Context, key string) bool
	// Enabled reports whether a backing store is in use.
	Enabled() bool
}

// disabled is the pass-through cache.
type disabled struct{}

// Disabled returns a cache that stores nothing.
func Disabled() Cache { return disabled{} }

func (disabled) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (disabled) Set(context.Context, string, []byte, time.Duration) bool { return false }
func (disabled) Delete(context.Context, string) bool { return false }
func (disabled) Enabled() bool { return false }
