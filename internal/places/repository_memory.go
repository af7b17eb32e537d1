package places

import (
	"context"
	"sync"

	"github.com/Fxdvs/maturitna-praca-spevak/internal/geo"
)

// InMemoryRepository mirrors the Postgres repository for tests.
type InMemoryRepository struct {
	mu     sync.Mutex
	places map[string]*Place

	// FailQueries makes every read return this error, simulating a
	// store outage.
	FailQueries error
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{places: make(map[string]*Place)}
}

func (r *InMemoryRepository) FindInBox(
	_ context.Context,
	box geo.BoundingBox,
) ([]*Place, error) {

	if r.FailQueries != nil {
		return nil, r.FailQueries
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var found []*Place
	for _, p := range r.places {
		if box.Contains(p.Latitude, p.Longitude) {
			found = append(found, p)
		}
	}
	return found, nil
}

func (r *InMemoryRepository) Upsert(_ context.Context, place *Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.places[place.ExternalID]; ok {
		existing.Rating = place.Rating
		existing.OpenNow = place.OpenNow
		if place.Website != nil {
			existing.Website = place.Website
		}
		return nil
	}

	copied := *place
	r.places[place.ExternalID] = &copied
	return nil
}

func (r *InMemoryRepository) Get(
	_ context.Context,
	externalID string,
) (*Place, error) {

	if r.FailQueries != nil {
		return nil, r.FailQueries
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.places[externalID]
	if !ok {
		return nil, nil
	}
	return p, nil
}

// Len reports how many places are stored. Test helper.
func (r *InMemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.places)
}
