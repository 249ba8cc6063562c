package cache

// ScopedKeyer wraps a Keyer with a prefix, so that several gdlkit
// deployments can share one Redis instance without seeing each other's
// entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
//	keyer.DocumentKey(h) // "staging:gdl:<h>"
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

// DocumentKey generates a prefixed document key.
func (k *ScopedKeyer) DocumentKey(descHash string) string {
	return k.prefix + k.inner.DocumentKey(descHash)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}
