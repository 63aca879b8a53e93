package cache

// ScopedKeyer prefixes every key of an inner [Keyer], so several receivers
// can share one store without clashing.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "tenant:acme:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) PublishKey(sink, target, workspaceID string) string {
	return k.prefix + k.inner.PublishKey(sink, target, workspaceID)
}

func (k *ScopedKeyer) WorkspaceKey(workspaceID string) string {
	return k.prefix + k.inner.WorkspaceKey(workspaceID)
}
