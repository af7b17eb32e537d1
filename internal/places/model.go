package places

import "time"

// Place is a bar/venue record. Identity is the ExternalID assigned by the
// places provider; a place is created on first discovery and only its
// rating/open_now fields are refreshed afterwards.
type Place struct {
	ExternalID string   `json:"id"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Rating     float64  `json:"rating"`
	OpenNow    bool     `json:"openNow"`
	Latitude   float64  `json:"lat"`
	Longitude  float64  `json:"lng"`
	Website    *string  `json:"website,omitempty"`
	DistanceKm float64  `json:"distance"`

	CreatedAt time.Time `json:"-"`
}

// SearchResult is the outcome of a progressive radius search.
type SearchResult struct {
	Places       []*Place `json:"bars"`
	Source       string   `json:"source"`
	RadiusUsedKm float64  `json:"searchedRadius"`
}

// Source labels for SearchResult, set per the last contributing query.
const (
	SourceStore    = "store"
	SourceProvider = "provider"
)
