package cache

import "github.com/matzehuels/recipecost/pkg/cost"

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is useful when several deployments (or a staging and a production
// server) share one Redis database.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "recipecost:staging:")
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

// SummaryKey generates a prefixed summary key.
func (k *ScopedKeyer) SummaryKey(records []cost.Ingredient, settings cost.Settings) string {
	return k.prefix + k.inner.SummaryKey(records, settings)
}

// ChartKey generates a prefixed chart key.
func (k *ScopedKeyer) ChartKey(summaryKey string, opts ChartKeyOpts) string {
	return k.prefix + k.inner.ChartKey(summaryKey, opts)
}
