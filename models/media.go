package models

import "time"

// MediaType identifies which catalog partition an item belongs to.
type MediaType string

const (
	MediaTypeMovie  MediaType = "movie"
	MediaTypeSeries MediaType = "series"
)

// ParseMediaType normalises a raw stream/partition name ("movie", "movies",
// "series") into a MediaType. The second return is false for unknown values.
func ParseMediaType(raw string) (MediaType, bool) {
	switch raw {
	case "movie", "movies":
		return MediaTypeMovie, true
	case "series":
		return MediaTypeSeries, true
	}
	return "", false
}

// NewReleaseWindow is how recently an item must have been released to carry
// the "new" badge.
const NewReleaseWindow = 30 * 24 * time.Hour

// MediaItem is a single movie or series in the catalog. Immutable once
// fetched except for the derived fields, which are recomputed whenever the
// cache snapshot is replaced or extended.
type MediaItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	MediaType   MediaType `json:"mediaType"`
	Rating      float64   `json:"rating"`
	ReleaseDate time.Time `json:"releaseDate"`
	Genres      []string  `json:"genres,omitempty"`
	PosterURL   string    `json:"posterUrl,omitempty"`
	Description string    `json:"description,omitempty"`
	IsExclusive bool      `json:"isExclusive,omitempty"`

	// Derived fields.
	IsNew       bool `json:"isNew,omitempty"`
	ReleaseYear int  `json:"releaseYear,omitempty"`
}

// Category is a browsable genre shelf.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// CatalogSnapshot is the full cached view of the remote catalog at a point
// in time. LastRefreshed is nil iff the snapshot has never been populated.
// Item ids are unique within each of Movies and Series.
type CatalogSnapshot struct {
	Movies        []MediaItem `json:"movies"`
	Series        []MediaItem `json:"series"`
	Categories    []Category  `json:"categories"`
	LastRefreshed *time.Time  `json:"lastRefreshed,omitempty"`
}

// Partition returns the item sequence for the given media type.
func (s CatalogSnapshot) Partition(mediaType MediaType) []MediaItem {
	if mediaType == MediaTypeSeries {
		return s.Series
	}
	return s.Movies
}
