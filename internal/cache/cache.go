// Package cache provides the fragment cache used by the home feed: a
// TTL-bounded store of pre-rendered page bytes keyed by a fixed
// identifier. Backend failures are absorbed as misses so a page render
// never fails because the cache is unavailable.
package cache

import (
	"context"
	"time"
)

// IndexPageKey is the fixed key the rendered home feed is stored under.
const IndexPageKey = "index_page"

// FragmentCache stores rendered page fragments for a bounded time.
type FragmentCache interface {
	// Get returns the stored fragment and true on a hit. A backend
	// error or an elapsed TTL is a miss.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Put stores a fragment under key for ttl. Errors are absorbed.
	Put(ctx context.Context, key string, fragment []byte, ttl time.Duration)

	// Clear drops every stored fragment.
	Clear(ctx context.Context) error
}
