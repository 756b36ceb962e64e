package models

import "time"

// WatchHistoryEntry records that a profile watched an item. Entries are kept
// most-recent-first and bounded; watching an item already in the history
// moves it to the front instead of duplicating it.
type WatchHistoryEntry struct {
	ItemID        string    `json:"itemId"`
	Title         string    `json:"title,omitempty"`
	MediaType     MediaType `json:"mediaType,omitempty"`
	LastWatchedAt time.Time `json:"lastWatchedAt"`
}

// WatchlistEntry is a single saved item. The watchlist is an id-keyed set,
// kept in insertion order for display.
type WatchlistEntry struct {
	ItemID    string    `json:"itemId"`
	Title     string    `json:"title,omitempty"`
	MediaType MediaType `json:"mediaType,omitempty"`
	PosterURL string    `json:"posterUrl,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}
