package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/sourcegraph/conc/pool"

	"marquee/models"
	"marquee/services/gateway"
	"marquee/services/render"
)

// Notifier surfaces user-facing messages from the refresh flow.
type Notifier interface {
	Push(message string, kind models.NotificationKind) models.Notification
}

// Refresher coordinates full catalog refreshes: serve the cache while it is
// fresh, fetch movies, series and categories in parallel when it is not, and
// fall back to the stale snapshot on network failure.
type Refresher struct {
	cache    *Cache
	gw       gateway.Gateway
	notifier Notifier
	sink     render.Sink
	maxAge   time.Duration
	interval time.Duration
}

// NewRefresher wires a refresher around the cache. maxAge bounds snapshot
// freshness; interval paces the background update check (zero disables it).
func NewRefresher(cache *Cache, gw gateway.Gateway, notifier Notifier, sink render.Sink, maxAge, interval time.Duration) *Refresher {
	return &Refresher{
		cache:    cache,
		gw:       gw,
		notifier: notifier,
		sink:     sink,
		maxAge:   maxAge,
		interval: interval,
	}
}

// Ensure makes a usable snapshot available: the in-memory cache if fresh,
// the persisted one if that is fresh, otherwise a full refresh.
func (r *Refresher) Ensure(ctx context.Context) error {
	if r.cache.IsFresh(r.maxAge) {
		r.sink.SnapshotReady(r.cache.Snapshot())
		return nil
	}
	if r.cache.LoadFromStore() && r.cache.IsFresh(r.maxAge) {
		r.sink.SnapshotReady(r.cache.Snapshot())
		return nil
	}
	return r.Refresh(ctx)
}

// Refresh fetches the first page of both streams plus the category list in
// parallel and atomically replaces the snapshot. On failure the previous
// snapshot stays in place (stale-but-available over empty) and an error
// notification is pushed.
func (r *Refresher) Refresh(ctx context.Context) error {
	var (
		movies     []models.MediaItem
		series     []models.MediaItem
		categories []models.Category
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		movies, err = r.gw.FetchPage(ctx, models.MediaTypeMovie, 1)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		series, err = r.gw.FetchPage(ctx, models.MediaTypeSeries, 1)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		categories, err = r.gw.FetchCategories(ctx)
		return err
	})

	if err := p.Wait(); err != nil {
		slog.Warn("catalog refresh failed", "error", err)
		r.notifier.Push("Could not refresh the catalog. Showing the last saved view.", models.KindError)

		// Hydrate from disk so a cold start still has something to show.
		if snap := r.cache.Snapshot(); snap.LastRefreshed == nil {
			if r.cache.LoadFromStore() {
				r.sink.SnapshotReady(r.cache.Snapshot())
			}
		} else {
			r.sink.SnapshotReady(snap)
		}
		return err
	}

	r.cache.Replace(movies, series, categories)
	r.sink.SnapshotReady(r.cache.Snapshot())
	return nil
}

// Start runs the periodic update check until ctx is cancelled. A stale cache
// triggers a refresh; a successful refresh surfaces a notification so the
// user learns about new content without being blocked.
func (r *Refresher) Start(ctx context.Context) {
	if r.interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if r.cache.IsFresh(r.maxAge) {
					continue
				}
				if err := r.Refresh(ctx); err == nil {
					r.notifier.Push("New content is available.", models.KindSuccess)
				}
			}
		}
	}()
}
