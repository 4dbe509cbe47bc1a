// Package coalesce implements Coalescer: keyed single-flight deduplication
// of in-progress work, backed by golang.org/x/sync/singleflight.
package coalesce

import "golang.org/x/sync/singleflight"

// Coalescer deduplicates concurrent calls sharing the same key to a single
// underlying computation. The handle is removed when the operation settles
// (success or failure) — golang.org/x/sync/singleflight.Group already gives
// us exactly this: Do forgets the call once every waiter has been notified,
// so a subsequent call with the same key starts a fresh thunk and failures
// are never cached.
type Coalescer struct {
	group singleflight.Group
}

// New returns a ready-to-use Coalescer.
func New() *Coalescer {
	return &Coalescer{}
}

// Run executes thunk for key, or waits on an identical in-flight call if one
// exists. All callers arriving during the in-flight window observe the same
// outcome.
func (c *Coalescer) Run(key string, thunk func() (any, error)) (any, error) {
	v, err, _ := c.group.Do(key, thunk)
	return v, err
}
