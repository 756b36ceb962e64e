package search

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"marquee/models"
)

// defaultPerPartition caps how many matches each partition contributes.
const defaultPerPartition = 3

// Catalog provides the snapshot queries run against.
type Catalog interface {
	Snapshot() models.CatalogSnapshot
}

// Searcher runs queries against the cached catalog: top movie matches
// followed by top series matches, ranked by fuzzy match quality.
type Searcher struct {
	catalog      Catalog
	perPartition int
}

// NewSearcher creates a searcher over the catalog. perPartition caps the
// matches taken from each of movies and series (0 uses the default).
func NewSearcher(catalog Catalog, perPartition int) *Searcher {
	if perPartition <= 0 {
		perPartition = defaultPerPartition
	}
	return &Searcher{catalog: catalog, perPartition: perPartition}
}

// Search returns the best matches for query, movies first.
func (s *Searcher) Search(query string) []models.MediaItem {
	snap := s.catalog.Snapshot()
	out := rankPartition(snap.Movies, query, s.perPartition)
	return append(out, rankPartition(snap.Series, query, s.perPartition)...)
}

func rankPartition(items []models.MediaItem, query string, limit int) []models.MediaItem {
	titles := make([]string, len(items))
	for i, it := range items {
		titles[i] = it.Title
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Sort(ranks)

	out := make([]models.MediaItem, 0, limit)
	for _, r := range ranks {
		if len(out) == limit {
			break
		}
		out = append(out, items[r.OriginalIndex])
	}
	return out
}
