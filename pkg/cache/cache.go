// Package cache stores pipeline results keyed by content hashes.
//
// The clustering core is stateless; caching happens here, at the call site,
// keyed by [grid.Grid.Hash] plus every option that influences the result.
// Three backends implement [Cache]:
//
//   - [FileCache] for the CLI (one JSON file per entry under a directory)
//   - [RedisCache] for shared deployments of the API server
//   - [NullCache] when caching is disabled
//
// A [Keyer] derives keys; [NewScopedKeyer] adds a namespace prefix so several
// tenants or versions can share one backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default time-to-live per entry type.
const (
	TTLFrames  = 24 * time.Hour
	TTLSummary = 7 * 24 * time.Hour
)

// Key types reported to observability hooks.
const (
	KeyTypeFrames  = "frames"
	KeyTypeSummary = "summary"
)

// FrameKeyOpts holds every input besides the grid that changes a frame system.
type FrameKeyOpts struct {
	Viewport      string  `json:"viewport,omitempty"`
	ViewpointX    float64 `json:"vx"`
	ViewpointY    float64 `json:"vy"`
	Zoom          float64 `json:"zoom"`
	ShowAllLevels bool    `json:"all"`
	GapThreshold  int     `json:"gap"`
	Settings      any     `json:"settings,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// FrameKey keys a frame system by grid content hash and options.
	FrameKey(gridHash string, opts FrameKeyOpts) string

	// SummaryKey keys one summarizer output by summarizer name and input text.
	SummaryKey(summarizer, text string) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// FrameKey returns "frames:<hash>".
func (DefaultKeyer) FrameKey(gridHash string, opts FrameKeyOpts) string {
	return hashKey(KeyTypeFrames, gridHash, opts)
}

// SummaryKey returns "summary:<hash>".
func (DefaultKeyer) SummaryKey(summarizer, text string) string {
	return hashKey(KeyTypeSummary, summarizer, Hash([]byte(text)))
}
