package prices

import (
	"time"

	"github.com/Fxdvs/maturitna-praca-spevak/internal/places"
)

// Provenance is the method a quote was obtained by.
const (
	ProvenanceStored    = "stored"
	ProvenanceScraped   = "scraped"
	ProvenanceOCR       = "ocr"
	ProvenanceGenerated = "generated"
)

// Quote is a drink price attached to a bar. Prices are euros, always
// positive.
type Quote struct {
	BarID          string  `json:"barId"`
	DrinkName      string  `json:"drinkName"`
	Price          float64 `json:"price"`
	Provenance     string  `json:"provenance"`
	SourceImageURL *string `json:"sourceImageUrl,omitempty"`

	CreatedAt time.Time `json:"-"`
}

// PricedPlace is a bar with its resolved quote, as returned to the client.
type PricedPlace struct {
	places.Place
	DrinkName  string  `json:"drinkName"`
	Price      float64 `json:"price"`
	Provenance string  `json:"provenance"`
}

// Stats summarises one resolution batch.
type Stats struct {
	Total        int            `json:"total"`
	ByProvenance map[string]int `json:"byProvenance"`
	MeanPrice    float64        `json:"meanPrice"`
}

// Result is the response of POST /api/prices.
type Result struct {
	Bars     []*PricedPlace `json:"bars"`
	Cheapest *PricedPlace   `json:"cheapest,omitempty"`
	Stats    Stats          `json:"stats"`
}
