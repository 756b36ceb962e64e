// Package watchstate maintains per-profile watch history and watchlist,
// mirrored to persistent storage on every mutation.
package watchstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"marquee/internal/store"
	"marquee/models"
)

var (
	ErrProfileIDRequired = errors.New("profile id is required")
	ErrItemIDRequired    = errors.New("item id is required")
)

const (
	historyStoreKey   = "watch_history"
	watchlistStoreKey = "watchlist"

	// DefaultHistoryCapacity bounds the watch history when no capacity is
	// configured.
	DefaultHistoryCapacity = 20
)

// ToggleResult reports which way a watchlist toggle went.
type ToggleResult string

const (
	ToggleAdded   ToggleResult = "added"
	ToggleRemoved ToggleResult = "removed"
)

// Catalog resolves item ids against the cached snapshot so stored entries
// carry display metadata. Lookup is id-based.
type Catalog interface {
	Lookup(id string) (models.MediaItem, bool)
}

// Service owns the watch history and watchlist lists. History is
// most-recent-first and bounded; the watchlist is an insertion-ordered set.
type Service struct {
	mu        sync.RWMutex
	store     store.Store
	catalog   Catalog
	capacity  int
	history   map[string][]models.WatchHistoryEntry
	watchlist map[string][]models.WatchlistEntry
	onChange  func(profileID string)
	now       func() time.Time
}

// NewService creates a tracker persisting to st. capacity bounds the watch
// history per profile (<=0 uses the default).
func NewService(st store.Store, capacity int) (*Service, error) {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	svc := &Service{
		store:     st,
		capacity:  capacity,
		history:   make(map[string][]models.WatchHistoryEntry),
		watchlist: make(map[string][]models.WatchlistEntry),
		now:       time.Now,
	}
	if err := svc.load(); err != nil {
		return nil, err
	}
	return svc, nil
}

// SetCatalog attaches the catalog used to resolve item metadata.
func (s *Service) SetCatalog(c Catalog) {
	s.mu.Lock()
	s.catalog = c
	s.mu.Unlock()
}

// SetOnChange registers a callback fired after every successful history
// mutation, e.g. to rederive recommendations.
func (s *Service) SetOnChange(fn func(profileID string)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// RecordWatch moves itemID to the front of the profile's history (inserting
// it if absent), stamps it with the current time, truncates to capacity and
// persists the full list. Repeating the same call converges on the same
// final state.
func (s *Service) RecordWatch(profileID, itemID string) error {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return ErrProfileIDRequired
	}
	if strings.TrimSpace(itemID) == "" {
		return ErrItemIDRequired
	}

	s.mu.Lock()
	entry := models.WatchHistoryEntry{ItemID: itemID, LastWatchedAt: s.now()}
	if s.catalog != nil {
		if it, ok := s.catalog.Lookup(itemID); ok {
			entry.Title = it.Title
			entry.MediaType = it.MediaType
		}
	}

	entries := s.history[profileID]
	kept := make([]models.WatchHistoryEntry, 0, len(entries)+1)
	kept = append(kept, entry)
	for _, e := range entries {
		if e.ItemID == itemID {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) > s.capacity {
		kept = kept[:s.capacity]
	}
	s.history[profileID] = kept

	err := s.saveHistoryLocked()
	onChange := s.onChange
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if onChange != nil {
		onChange(profileID)
	}
	return nil
}

// History returns the profile's watch history, most recent first.
func (s *Service) History(profileID string) []models.WatchHistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.WatchHistoryEntry(nil), s.history[profileID]...)
}

// HistoryIDs returns just the item ids of the profile's history, most
// recent first.
func (s *Service) HistoryIDs(profileID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.history[profileID]
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ItemID
	}
	return ids
}

// ToggleWatchlist flips itemID's watchlist membership for the profile and
// persists the result: absent items are appended (insertion order is kept
// for display), present items are removed.
func (s *Service) ToggleWatchlist(profileID, itemID string) (ToggleResult, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return "", ErrProfileIDRequired
	}
	if strings.TrimSpace(itemID) == "" {
		return "", ErrItemIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.watchlist[profileID]
	for i, e := range entries {
		if e.ItemID == itemID {
			s.watchlist[profileID] = append(entries[:i:i], entries[i+1:]...)
			if err := s.saveWatchlistLocked(); err != nil {
				return "", err
			}
			return ToggleRemoved, nil
		}
	}

	entry := models.WatchlistEntry{ItemID: itemID, AddedAt: s.now()}
	if s.catalog != nil {
		if it, ok := s.catalog.Lookup(itemID); ok {
			entry.Title = it.Title
			entry.MediaType = it.MediaType
			entry.PosterURL = it.PosterURL
		}
	}
	s.watchlist[profileID] = append(entries, entry)
	if err := s.saveWatchlistLocked(); err != nil {
		return "", err
	}
	return ToggleAdded, nil
}

// Watchlist returns the profile's watchlist in insertion order.
func (s *Service) Watchlist(profileID string) []models.WatchlistEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.WatchlistEntry(nil), s.watchlist[profileID]...)
}

// InWatchlist reports whether itemID is on the profile's watchlist.
func (s *Service) InWatchlist(profileID, itemID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.watchlist[profileID] {
		if e.ItemID == itemID {
			return true
		}
	}
	return false
}

func (s *Service) load() error {
	if raw, ok := s.store.Get(historyStoreKey); ok {
		if err := json.Unmarshal([]byte(raw), &s.history); err != nil {
			return fmt.Errorf("decode watch history: %w", err)
		}
	}
	if raw, ok := s.store.Get(watchlistStoreKey); ok {
		if err := json.Unmarshal([]byte(raw), &s.watchlist); err != nil {
			return fmt.Errorf("decode watchlist: %w", err)
		}
	}
	return nil
}

func (s *Service) saveHistoryLocked() error {
	data, err := json.Marshal(s.history)
	if err != nil {
		return fmt.Errorf("encode watch history: %w", err)
	}
	if err := s.store.Set(historyStoreKey, string(data)); err != nil {
		return fmt.Errorf("persist watch history: %w", err)
	}
	return nil
}

func (s *Service) saveWatchlistLocked() error {
	data, err := json.Marshal(s.watchlist)
	if err != nil {
		return fmt.Errorf("encode watchlist: %w", err)
	}
	if err := s.store.Set(watchlistStoreKey, string(data)); err != nil {
		return fmt.Errorf("persist watchlist: %w", err)
	}
	return nil
}
