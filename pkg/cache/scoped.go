package cache

// ScopedKeyer wraps a Keyer with a prefix so separate projects or users
// sharing one cache directory get isolated namespaces.
//
// Example usage:
//
//	// Keys scoped to one atlas project
//	projectKeyer := NewScopedKeyer(NewDefaultKeyer(), "atlas:uk:")
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

// BoundaryKey generates a prefixed key for parsed boundary geometry.
func (k *ScopedKeyer) BoundaryKey(contentHash string, opts BoundaryKeyOpts) string {
	return k.prefix + k.inner.BoundaryKey(contentHash, opts)
}

// SceneKey generates a prefixed key for a sampled scene.
func (k *ScopedKeyer) SceneKey(boundaryHash string, opts SceneKeyOpts) string {
	return k.prefix + k.inner.SceneKey(boundaryHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneHash, opts)
}
