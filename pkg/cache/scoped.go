package cache

// Keyer builds the cache keys of publish receipts.
type Keyer interface {
	// ReceiptKey names the latest receipt of a coordinate ("group:artifact:version").
	ReceiptKey(coordinate string) string

	// RunKey names the receipt of one run.
	RunKey(runID string) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ReceiptKey(coordinate string) string { return "receipt:" + coordinate }
func (DefaultKeyer) RunKey(runID string) string          { return "run:" + runID }

// ScopedKeyer wraps a Keyer with a prefix, so that several projects or
// environments can share one Redis database.
//
//	keyer := NewScopedKeyer(nil, "pubkit:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// If inner is nil, a DefaultKeyer is used.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ReceiptKey(coordinate string) string {
	return k.prefix + k.inner.ReceiptKey(coordinate)
}

func (k *ScopedKeyer) RunKey(runID string) string {
	return k.prefix + k.inner.RunKey(runID)
}
