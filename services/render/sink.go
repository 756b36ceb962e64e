// Package render defines the callback surface between the core engine and
// whatever realises the UI. The core emits events; the display layer owns
// everything visual.
package render

import (
	"log/slog"

	"marquee/models"
)

// Sink receives events destined for the display surface.
type Sink interface {
	// SnapshotReady fires after a full catalog refresh or hydration.
	SnapshotReady(snapshot models.CatalogSnapshot)
	// PageAppended fires when an infinite-scroll page lands in the cache.
	PageAppended(mediaType models.MediaType, items []models.MediaItem)
	// Notification fires for every pushed user-facing message.
	Notification(n models.Notification)
	// RecommendationsReady fires whenever the recommendation set is rederived.
	RecommendationsReady(items []models.MediaItem)
}

// LogSink writes render events to the structured log. It is the default when
// no UI transport is attached.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) SnapshotReady(snapshot models.CatalogSnapshot) {
	s.log.Info("snapshot ready",
		"movies", len(snapshot.Movies),
		"series", len(snapshot.Series),
		"categories", len(snapshot.Categories),
	)
}

func (s *LogSink) PageAppended(mediaType models.MediaType, items []models.MediaItem) {
	s.log.Info("page appended", "stream", mediaType, "items", len(items))
}

func (s *LogSink) Notification(n models.Notification) {
	s.log.Info("notification", "id", n.ID, "kind", n.Kind, "message", n.Message)
}

func (s *LogSink) RecommendationsReady(items []models.MediaItem) {
	s.log.Info("recommendations ready", "items", len(items))
}

// Tee fans every event out to multiple sinks in order.
type Tee []Sink

func (t Tee) SnapshotReady(snapshot models.CatalogSnapshot) {
	for _, s := range t {
		s.SnapshotReady(snapshot)
	}
}

func (t Tee) PageAppended(mediaType models.MediaType, items []models.MediaItem) {
	for _, s := range t {
		s.PageAppended(mediaType, items)
	}
}

func (t Tee) Notification(n models.Notification) {
	for _, s := range t {
		s.Notification(n)
	}
}

func (t Tee) RecommendationsReady(items []models.MediaItem) {
	for _, s := range t {
		s.RecommendationsReady(items)
	}
}
