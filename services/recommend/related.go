package recommend

import (
	"sort"

	"marquee/models"
	"marquee/utils/similarity"
)

// relatedLimit caps how many related titles are returned.
const relatedLimit = 6

// Related ranks titles from the same partition as the given item by genre
// overlap plus title similarity. The item itself is excluded.
func Related(snapshot models.CatalogSnapshot, item models.MediaItem) []models.MediaItem {
	candidates := snapshot.Partition(item.MediaType)
	genres := make(map[string]struct{}, len(item.Genres))
	for _, g := range item.Genres {
		genres[g] = struct{}{}
	}

	type scored struct {
		item  models.MediaItem
		score float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, cand := range candidates {
		if cand.ID == item.ID {
			continue
		}
		score := similarity.Score(item.Title, cand.Title)
		for _, g := range cand.Genres {
			if _, shared := genres[g]; shared {
				score += 0.5
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{item: cand, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]models.MediaItem, 0, relatedLimit)
	for _, r := range ranked {
		if len(out) == relatedLimit {
			break
		}
		out = append(out, r.item)
	}
	return out
}
