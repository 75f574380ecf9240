// Package cache provides pluggable byte-level caching for HTTP responses.
//
// Backends implement the [Cache] interface:
//   - [FileCache]: hash-sharded files under a directory, for CLI usage
//   - [RedisCache]: shared cache for environments with a Redis instance
//   - [NullCache]: no-op, for --no-cache runs and tests
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores opaque byte values under string keys with optional TTL.
// A TTL of 0 means entries never expire.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// found (expired entries count as misses).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
