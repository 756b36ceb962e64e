package catalog

import (
	"sort"

	"marquee/models"
)

// TrendingMovies returns the top n movies by rating, best first. The
// snapshot itself is never reordered.
func (c *Cache) TrendingMovies(n int) []models.MediaItem {
	snap := c.Snapshot()
	movies := snap.Movies
	sort.SliceStable(movies, func(i, j int) bool {
		return movies[i].Rating > movies[j].Rating
	})
	return limitItems(movies, n)
}

// ExclusiveSeries returns the n most recently released exclusive series.
func (c *Cache) ExclusiveSeries(n int) []models.MediaItem {
	snap := c.Snapshot()
	exclusive := snap.Series[:0:0]
	for _, s := range snap.Series {
		if s.IsExclusive {
			exclusive = append(exclusive, s)
		}
	}
	sort.SliceStable(exclusive, func(i, j int) bool {
		return exclusive[i].ReleaseDate.After(exclusive[j].ReleaseDate)
	})
	return limitItems(exclusive, n)
}

func limitItems(items []models.MediaItem, n int) []models.MediaItem {
	if n > 0 && len(items) > n {
		items = items[:n]
	}
	return items
}
