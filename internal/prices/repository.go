package prices

import "context"

type Repository interface {
	// GetByBars batch-loads the most recent quote per bar. Bars with no
	// stored quote are absent from the map.
	GetByBars(ctx context.Context, barIDs []string) (map[string]*Quote, error)

	// Upsert stores a quote for later reuse.
	Upsert(ctx context.Context, quote *Quote) error
}
