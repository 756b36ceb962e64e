// Package recommend derives recommendation sets from the cached catalog and
// the profile's watch history.
package recommend

import (
	"marquee/models"
)

const (
	// ratingThreshold is the minimum rating an item needs to be recommended.
	ratingThreshold = 8.5
	// perPartitionLimit caps how many items each partition contributes.
	perPartitionLimit = 4
)

// Derive computes the recommendation set for a snapshot and watch history:
// movies rated above the threshold, then series rated above the threshold,
// each capped and kept in snapshot order. It is a pure function of its
// inputs, so results are deterministic for a fixed snapshot and history.
//
// historyIDs is accepted so callers rederive whenever the history changes;
// ranking beyond the rating threshold is deliberately out of scope.
func Derive(snapshot models.CatalogSnapshot, historyIDs []string) []models.MediaItem {
	out := topRated(snapshot.Movies)
	return append(out, topRated(snapshot.Series)...)
}

func topRated(items []models.MediaItem) []models.MediaItem {
	out := make([]models.MediaItem, 0, perPartitionLimit)
	for _, it := range items {
		if len(out) == perPartitionLimit {
			break
		}
		if it.Rating > ratingThreshold {
			out = append(out, it)
		}
	}
	return out
}
