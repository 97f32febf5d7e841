// Package cache provides caller-side memoization for rendered charts.
//
// The chart engine holds no state between calls, so any reuse of results is
// the caller's job. Since identical inputs always produce identical models,
// a model can be cached under a hash of its full input, and each rendered
// artifact (SVG, PNG, JSON) under the model hash plus its output options.
//
// # Backends
//
//   - [NullCache]: never stores anything (--no-cache)
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [MemoryCache]: bounded in-process LRU, for a single server instance
//   - [RedisCache]: shared cache for several server instances
//
// # Keys
//
// A [Keyer] derives keys. [DefaultKeyer] produces "model:<hash>" and
// "artifact:<hash>" keys; [ScopedKeyer] prefixes them to keep tenants or
// environments apart.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with an optional TTL.
// A TTL of zero means the entry does not expire.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// ModelKey returns the key of the render model computed from an input
	// whose canonical hash is inputHash.
	ModelKey(inputHash string) string
	// ArtifactKey returns the key of one rendered output of a model.
	ArtifactKey(modelHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds the sink options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
	Title  string  `json:"title,omitempty"`
	Class  string  `json:"class,omitempty"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ModelKey returns "model:<inputHash>".
func (DefaultKeyer) ModelKey(inputHash string) string {
	return "model:" + inputHash
}

// ArtifactKey returns "artifact:<sha256 of modelHash and opts>".
func (DefaultKeyer) ArtifactKey(modelHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", modelHash, opts)
}
