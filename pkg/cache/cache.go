// Package cache stores serialized documents and rendered previews so that
// identical descriptions are not rebuilt or re-rendered.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under the user cache directory,
//     used by the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer]. Serialized documents are keyed by the hash
// of the description they were built from ("gdl:<hash>"); previews by the
// hash of the document text and the render options ("svg:<hash>",
// "png:<hash>", ...).
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	// Clear removes every entry and reports how many were removed.
	Clear(ctx context.Context) (int, error)
}
