// Package cache stores rendered graph artifacts (SVG, PNG, DOT) keyed by
// graph content hash and render options, so re-rendering an unchanged
// tree is cheap. The graph itself is never cached: every build
// re-discovers the filesystem from scratch.
//
// Three backends implement [Cache]: a file cache under the XDG cache
// directory, a Redis cache for shared setups, and a null cache that
// disables caching entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache is a byte-oriented key-value store with per-entry TTL.
type Cache interface {
	// Get retrieves a value. The second return is false on miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value; deleting a missing key is not an error.
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

// ArtifactKeyOpts captures the render options that affect artifact bytes.
type ArtifactKeyOpts struct {
	Format          string `json:"format"`
	Detailed        bool   `json:"detailed"`
	ShowAssignments bool   `json:"show_assignments"`
}

// ArtifactKey generates the cache key for a rendered artifact from the
// graph's content hash and the render options.
func ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	data, _ := json.Marshal(opts)
	return fmt.Sprintf("artifact:%s:%s", graphHash, Hash(data))
}
