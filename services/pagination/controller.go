// Package pagination drives infinite-scroll fetches: one cursor per content
// stream, at most one fetch in flight per stream, page advance on success
// and revert on failure.
package pagination

import (
	"context"
	"log/slog"
	"sync"

	"marquee/models"
	"marquee/services/catalog"
	"marquee/services/gateway"
	"marquee/services/render"
)

// Notifier surfaces fetch failures to the user.
type Notifier interface {
	Push(message string, kind models.NotificationKind) models.Notification
}

type cursor struct {
	page     int
	inFlight bool
}

// Controller owns one cursor per stream. Cursors only mutate the snapshot
// through the cache's Append operation.
type Controller struct {
	mu       sync.Mutex
	cursors  map[models.MediaType]*cursor
	gw       gateway.Gateway
	cache    *catalog.Cache
	notifier Notifier
	sink     render.Sink
}

// NewController creates a controller with both stream cursors at page 1.
func NewController(gw gateway.Gateway, cache *catalog.Cache, notifier Notifier, sink render.Sink) *Controller {
	return &Controller{
		cursors: map[models.MediaType]*cursor{
			models.MediaTypeMovie:  {page: 1},
			models.MediaTypeSeries: {page: 1},
		},
		gw:       gw,
		cache:    cache,
		notifier: notifier,
		sink:     sink,
	}
}

// RequestNextPage fetches the next page for a stream. It is a silent no-op
// while a fetch for the same stream is already in flight; the caller may
// simply trigger again on the next scroll event. Streams are independent and
// may fetch concurrently: the lock is held only around cursor bookkeeping,
// never across the network call.
func (c *Controller) RequestNextPage(ctx context.Context, mediaType models.MediaType) {
	c.mu.Lock()
	cur, ok := c.cursors[mediaType]
	if !ok || cur.inFlight {
		c.mu.Unlock()
		return
	}
	cur.inFlight = true
	next := cur.page + 1
	c.mu.Unlock()

	items, err := c.gw.FetchPage(ctx, mediaType, next)

	c.mu.Lock()
	cur.inFlight = false
	if err != nil {
		// Page number untouched: the system is back in its pre-call state.
		c.mu.Unlock()
		slog.Warn("page fetch failed", "stream", mediaType, "page", next, "error", err)
		c.notifier.Push("Could not load more content. Scroll again to retry.", models.KindError)
		return
	}
	cur.page = next
	c.mu.Unlock()

	if len(items) == 0 {
		// Empty page means the stream is exhausted; nothing to append.
		return
	}
	c.cache.Append(mediaType, items)
	c.sink.PageAppended(mediaType, items)
}

// Page returns the stream's current page number.
func (c *Controller) Page(mediaType models.MediaType) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.cursors[mediaType]; ok {
		return cur.page
	}
	return 0
}

// InFlight reports whether a fetch for the stream is currently running.
func (c *Controller) InFlight(mediaType models.MediaType) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.cursors[mediaType]; ok {
		return cur.inFlight
	}
	return false
}
