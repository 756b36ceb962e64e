// Package lazyload defers poster loading until the display surface reports
// that a placeholder is approaching the viewport. Each placeholder resolves
// at most once, no matter how often the render step re-registers it.
package lazyload

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Resolver materializes a deferred resource locator, e.g. by fetching the
// poster bytes into a local cache.
type Resolver interface {
	Resolve(ctx context.Context, locator string) error
}

// Coordinator tracks pending placeholders and the set already resolved.
// Resolution order follows visibility events, not registration order.
type Coordinator struct {
	mu       sync.Mutex
	margin   int
	resolver Resolver
	pending  map[string]string
	resolved map[string]struct{}
}

// NewCoordinator creates a coordinator. margin is the viewport proximity
// distance (in display units) the external observer should apply before
// reporting visibility; the core only stores it.
func NewCoordinator(resolver Resolver, margin int) *Coordinator {
	return &Coordinator{
		margin:   margin,
		resolver: resolver,
		pending:  make(map[string]string),
		resolved: make(map[string]struct{}),
	}
}

// Margin returns the configured proximity margin for the viewport observer.
func (c *Coordinator) Margin() int {
	return c.margin
}

// Register adds a placeholder with its deferred locator and returns the
// placeholder id (generated when empty). Re-registering an id that is
// already pending or already resolved is a no-op, so re-running a render
// step only picks up genuinely new placeholders.
func (c *Coordinator) Register(id, locator string) string {
	if id == "" {
		id = uuid.NewString()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, done := c.resolved[id]; done {
		return id
	}
	if _, exists := c.pending[id]; exists {
		return id
	}
	c.pending[id] = locator
	return id
}

// OnVisible resolves the placeholder's resource exactly once and removes it
// from the watch set. Unknown or already-resolved ids report false. A failed
// resolution still counts as consumed: posters are best-effort and the
// placeholder is not retried.
func (c *Coordinator) OnVisible(ctx context.Context, id string) bool {
	c.mu.Lock()
	locator, ok := c.pending[id]
	if !ok {
		c.mu.Unlock()
		return false
	}
	delete(c.pending, id)
	c.resolved[id] = struct{}{}
	c.mu.Unlock()

	if err := c.resolver.Resolve(ctx, locator); err != nil {
		slog.Warn("lazy resource resolution failed", "placeholder", id, "error", err)
	}
	return true
}

// PendingCount returns the number of placeholders still under watch.
func (c *Coordinator) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
