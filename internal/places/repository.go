package places

import (
	"context"

	"github.com/Fxdvs/maturitna-praca-spevak/internal/geo"
)

type Repository interface {
	// FindInBox returns all stored places whose coordinates fall inside
	// the bounding box.
	FindInBox(ctx context.Context, box geo.BoundingBox) ([]*Place, error)

	// Upsert inserts the place or, on external_id conflict, refreshes
	// rating and open_now without touching other stored fields.
	Upsert(ctx context.Context, place *Place) error

	// Get returns the stored place or nil when unknown.
	Get(ctx context.Context, externalID string) (*Place, error)
}
