package cache

// ScopedKeyer prefixes every key of an inner Keyer, so that several
// deployments or tenants can share one Redis without colliding:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ModelKey returns the prefixed model key.
func (k *ScopedKeyer) ModelKey(inputHash string) string {
	return k.prefix + k.inner.ModelKey(inputHash)
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(modelHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(modelHash, opts)
}
