package pagination_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"marquee/internal/store"
	"marquee/models"
	"marquee/services/catalog"
	"marquee/services/pagination"

	"github.com/spf13/afero"
)

type scriptedGateway struct {
	mu      sync.Mutex
	pages   map[int][]models.MediaItem
	err     error
	calls   int
	release chan struct{} // when non-nil, FetchPage blocks until closed
	started chan struct{}
}

func (g *scriptedGateway) FetchPage(ctx context.Context, mediaType models.MediaType, page int) ([]models.MediaItem, error) {
	g.mu.Lock()
	g.calls++
	started := g.started
	release := g.release
	g.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	if g.err != nil {
		return nil, g.err
	}
	return g.pages[page], nil
}

func (g *scriptedGateway) FetchCategories(ctx context.Context) ([]models.Category, error) {
	return nil, nil
}

func (g *scriptedGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type nullNotifier struct {
	mu     sync.Mutex
	pushed []string
}

func (n *nullNotifier) Push(message string, kind models.NotificationKind) models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pushed = append(n.pushed, message)
	return models.Notification{Message: message, Kind: kind}
}

type countingSink struct {
	mu    sync.Mutex
	pages int
}

func (s *countingSink) SnapshotReady(models.CatalogSnapshot) {}
func (s *countingSink) PageAppended(mediaType models.MediaType, items []models.MediaItem) {
	s.mu.Lock()
	s.pages++
	s.mu.Unlock()
}
func (s *countingSink) Notification(models.Notification)        {}
func (s *countingSink) RecommendationsReady([]models.MediaItem) {}

func newTestCache(t *testing.T) *catalog.Cache {
	t.Helper()
	st, err := store.NewFileStore(afero.NewMemMapFs(), "cache")
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return catalog.NewCache(st)
}

func TestRequestNextPageAppends(t *testing.T) {
	gw := &scriptedGateway{pages: map[int][]models.MediaItem{
		2: {{ID: "m2", Title: "Page Two"}},
	}}
	cache := newTestCache(t)
	cache.Replace([]models.MediaItem{{ID: "m1"}}, nil, nil)
	sink := &countingSink{}
	c := pagination.NewController(gw, cache, &nullNotifier{}, sink)

	c.RequestNextPage(context.Background(), models.MediaTypeMovie)

	if got := c.Page(models.MediaTypeMovie); got != 2 {
		t.Fatalf("Page = %d, want 2", got)
	}
	if snap := cache.Snapshot(); len(snap.Movies) != 2 {
		t.Fatalf("got %d movies, want 2", len(snap.Movies))
	}
	if sink.pages != 1 {
		t.Fatalf("sink saw %d page events, want 1", sink.pages)
	}
}

func TestRequestNextPageFailureRevertsCursor(t *testing.T) {
	gw := &scriptedGateway{err: errors.New("timeout")}
	cache := newTestCache(t)
	notifier := &nullNotifier{}
	c := pagination.NewController(gw, cache, notifier, &countingSink{})

	c.RequestNextPage(context.Background(), models.MediaTypeMovie)

	if got := c.Page(models.MediaTypeMovie); got != 1 {
		t.Fatalf("Page = %d after failure, want 1", got)
	}
	if c.InFlight(models.MediaTypeMovie) {
		t.Fatal("in-flight flag stuck after failure")
	}
	if len(notifier.pushed) != 1 {
		t.Fatalf("expected one error notification, got %d", len(notifier.pushed))
	}

	// The very next trigger retries the same page.
	gw.err = nil
	gw.pages = map[int][]models.MediaItem{2: {{ID: "m2"}}}
	c.RequestNextPage(context.Background(), models.MediaTypeMovie)
	if got := c.Page(models.MediaTypeMovie); got != 2 {
		t.Fatalf("Page = %d after retry, want 2", got)
	}
}

func TestRequestNextPageGatesConcurrentTriggers(t *testing.T) {
	gw := &scriptedGateway{
		pages:   map[int][]models.MediaItem{2: {{ID: "m2"}}},
		release: make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	cache := newTestCache(t)
	c := pagination.NewController(gw, cache, &nullNotifier{}, &countingSink{})

	done := make(chan struct{})
	go func() {
		c.RequestNextPage(context.Background(), models.MediaTypeMovie)
		close(done)
	}()
	<-gw.started // first fetch is now blocked in flight

	// Triggers while in flight are silent no-ops.
	c.RequestNextPage(context.Background(), models.MediaTypeMovie)
	c.RequestNextPage(context.Background(), models.MediaTypeMovie)

	close(gw.release)
	<-done

	if got := gw.callCount(); got != 1 {
		t.Fatalf("gateway saw %d calls, want 1", got)
	}
	if got := c.Page(models.MediaTypeMovie); got != 2 {
		t.Fatalf("Page = %d, want 2", got)
	}
}

func TestRequestNextPageEmptyPageAppendsNothing(t *testing.T) {
	gw := &scriptedGateway{pages: map[int][]models.MediaItem{}}
	cache := newTestCache(t)
	cache.Replace([]models.MediaItem{{ID: "m1"}}, nil, nil)
	sink := &countingSink{}
	c := pagination.NewController(gw, cache, &nullNotifier{}, sink)

	c.RequestNextPage(context.Background(), models.MediaTypeMovie)

	if snap := cache.Snapshot(); len(snap.Movies) != 1 {
		t.Fatalf("empty page changed the snapshot: %d movies", len(snap.Movies))
	}
	if sink.pages != 0 {
		t.Fatal("empty page still emitted a render event")
	}
}

func TestStreamsPaginateIndependently(t *testing.T) {
	gw := &scriptedGateway{pages: map[int][]models.MediaItem{
		2: {{ID: "x2"}},
	}}
	cache := newTestCache(t)
	c := pagination.NewController(gw, cache, &nullNotifier{}, &countingSink{})

	c.RequestNextPage(context.Background(), models.MediaTypeMovie)

	if got := c.Page(models.MediaTypeMovie); got != 2 {
		t.Fatalf("movie page = %d, want 2", got)
	}
	if got := c.Page(models.MediaTypeSeries); got != 1 {
		t.Fatalf("series page = %d, want 1", got)
	}
}
