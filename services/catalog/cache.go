// Package catalog owns the cached view of the remote catalog: the snapshot
// itself, its freshness rules, and the refresh orchestration around it.
package catalog

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"marquee/internal/store"
	"marquee/models"
)

const snapshotStoreKey = "media_cache"

// Cache exclusively owns the catalog snapshot. All mutation goes through
// Replace and Append; readers get copies and never observe a half-updated
// snapshot because the swap is a single pointer assignment under the lock.
type Cache struct {
	mu    sync.RWMutex
	snap  *models.CatalogSnapshot
	store store.Store
	now   func() time.Time
}

// NewCache creates an empty cache persisting snapshots to st.
func NewCache(st store.Store) *Cache {
	return &Cache{
		snap:  &models.CatalogSnapshot{},
		store: st,
		now:   time.Now,
	}
}

// IsFresh reports whether the snapshot was refreshed less than maxAge ago.
// A never-populated snapshot is never fresh; exactly at the boundary counts
// as stale.
func (c *Cache) IsFresh(maxAge time.Duration) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snap.LastRefreshed == nil {
		return false
	}
	return c.now().Sub(*c.snap.LastRefreshed) < maxAge
}

// Replace atomically swaps the entire snapshot, stamps it with the current
// time, recomputes derived item fields, and persists the result. It never
// fails: callers must not hand it partial or garbage data.
func (c *Cache) Replace(movies, series []models.MediaItem, categories []models.Category) {
	now := c.now()
	snap := &models.CatalogSnapshot{
		Movies:        decorateItems(movies, now),
		Series:        decorateItems(series, now),
		Categories:    append([]models.Category(nil), categories...),
		LastRefreshed: &now,
	}

	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()

	c.persist(snap)
}

// Append adds newItems to the named partition, skipping any id already
// present. First-seen items and their relative order are preserved.
func (c *Cache) Append(mediaType models.MediaType, newItems []models.MediaItem) {
	if len(newItems) == 0 {
		return
	}
	now := c.now()

	c.mu.Lock()
	old := c.snap.Partition(mediaType)
	seen := make(map[string]struct{}, len(old))
	for _, it := range old {
		seen[it.ID] = struct{}{}
	}

	merged := append([]models.MediaItem(nil), old...)
	for _, it := range newItems {
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		merged = append(merged, decorateItem(it, now))
	}

	snap := &models.CatalogSnapshot{
		Movies:        c.snap.Movies,
		Series:        c.snap.Series,
		Categories:    c.snap.Categories,
		LastRefreshed: c.snap.LastRefreshed,
	}
	if mediaType == models.MediaTypeSeries {
		snap.Series = merged
	} else {
		snap.Movies = merged
	}
	c.snap = snap
	c.mu.Unlock()

	c.persist(snap)
}

// Snapshot returns a copy of the current snapshot safe for the caller to
// hold across later mutations.
func (c *Cache) Snapshot() models.CatalogSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return models.CatalogSnapshot{
		Movies:        append([]models.MediaItem(nil), c.snap.Movies...),
		Series:        append([]models.MediaItem(nil), c.snap.Series...),
		Categories:    append([]models.Category(nil), c.snap.Categories...),
		LastRefreshed: c.snap.LastRefreshed,
	}
}

// Lookup resolves an item id against both partitions.
func (c *Cache) Lookup(id string) (models.MediaItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, it := range c.snap.Movies {
		if it.ID == id {
			return it, true
		}
	}
	for _, it := range c.snap.Series {
		if it.ID == id {
			return it, true
		}
	}
	return models.MediaItem{}, false
}

// LoadFromStore hydrates the snapshot from persistent storage. It reports
// whether a usable snapshot (non-nil LastRefreshed) was found; a missing or
// undecodable value is a miss, not an error.
func (c *Cache) LoadFromStore() bool {
	if c.store == nil {
		return false
	}
	raw, ok := c.store.Get(snapshotStoreKey)
	if !ok {
		return false
	}

	var snap models.CatalogSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		slog.Warn("discarding undecodable cached snapshot", "error", err)
		return false
	}
	if snap.LastRefreshed == nil {
		return false
	}

	c.mu.Lock()
	c.snap = &snap
	c.mu.Unlock()
	return true
}

func (c *Cache) persist(snap *models.CatalogSnapshot) {
	if c.store == nil {
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		slog.Warn("could not encode snapshot for persistence", "error", err)
		return
	}
	if err := c.store.Set(snapshotStoreKey, string(data)); err != nil {
		slog.Warn("could not persist snapshot", "error", err)
	}
}

func decorateItems(items []models.MediaItem, now time.Time) []models.MediaItem {
	out := make([]models.MediaItem, len(items))
	for i, it := range items {
		out[i] = decorateItem(it, now)
	}
	return out
}

func decorateItem(it models.MediaItem, now time.Time) models.MediaItem {
	if it.ReleaseDate.IsZero() {
		it.IsNew = false
		return it
	}
	it.ReleaseYear = it.ReleaseDate.Year()
	age := now.Sub(it.ReleaseDate)
	it.IsNew = age >= 0 && age < models.NewReleaseWindow
	return it
}
