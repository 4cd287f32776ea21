package cache

// ScopedKeyer wraps a Keyer with a prefix so several tenants or releases can
// share one backend without colliding.
//
// Example usage:
//
//	// Entries written by this build only
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v"+buildinfo.Version+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// FrameKey generates a prefixed frame-system key.
func (k *ScopedKeyer) FrameKey(gridHash string, opts FrameKeyOpts) string {
	return k.prefix + k.inner.FrameKey(gridHash, opts)
}

// SummaryKey generates a prefixed summary key.
func (k *ScopedKeyer) SummaryKey(summarizer, text string) string {
	return k.prefix + k.inner.SummaryKey(summarizer, text)
}
