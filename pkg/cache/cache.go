// Package cache provides content-addressed caching for computed group
// models. Keys are derived from the generator descriptor, so a cached
// entry is valid forever: the model of a fixed permutation pair never
// changes. Backends: file (CLI default), redis (shared deployments), and
// null (caching disabled).
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache is the backend interface. Get reports a miss with (nil, false, nil);
// errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop all entries at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Default TTLs. Group models are immutable, so the TTL only bounds disk
// usage, not staleness.
const (
	TTLModel = 30 * 24 * time.Hour
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash computes the SHA-256 hash of the input as a 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ModelKey is the cache key for the group model of a permutation pair,
// given in one-line image notation.
func ModelKey(permS, permR []int) string {
	return hashKey("model", permS, permR)
}

// Gamma0Key is the cache key for the group model of Gamma0(N).
func Gamma0Key(level int64) string {
	return hashKey("gamma0", level)
}
