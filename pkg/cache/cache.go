// Package cache stores rendered artifacts between runs.
//
// # Backends
//
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance (github.com/redis/go-redis/v9)
//   - [NullCache]: stores nothing, used by --no-cache and in tests
//
// # Keys
//
// A [Keyer] derives cache keys. [DefaultKeyer] hashes the inputs that
// determine an artifact, so identical point files rendered with identical
// options share an entry:
//
//	key := keyer.ArtifactKey(cache.HashPoints(pts), cache.ArtifactKeyOpts{Format: "svg", Mode: "all"})
//	// artifact:3f2a...
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered outputs stay cached.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. A miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero keeps the entry until it is
	// deleted or cleared.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	// Clear removes every entry and reports how many were removed.
	Clear(ctx context.Context) (int, error)
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered output format.
	ArtifactKey(pointsHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format       string  `json:"format"`
	Mode         string  `json:"mode"`
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	DedupeRadius float64 `json:"dedupe_radius,omitempty"`
	Styles       string  `json:"styles,omitempty"` // hash of style overrides
}

// DefaultKeyer builds content-addressed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:" followed by the SHA-256 of the inputs.
func (DefaultKeyer) ArtifactKey(pointsHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", pointsHash, opts)
}
