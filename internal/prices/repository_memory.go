package prices

import (
	"context"
	"sync"
)

// InMemoryRepository mirrors the Postgres repository for tests. The most
// recently upserted quote per bar wins, matching the DISTINCT ON query.
type InMemoryRepository struct {
	mu     sync.Mutex
	quotes map[string]*Quote

	FailQueries error
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{quotes: make(map[string]*Quote)}
}

func (r *InMemoryRepository) GetByBars(
	_ context.Context,
	barIDs []string,
) (map[string]*Quote, error) {

	if r.FailQueries != nil {
		return nil, r.FailQueries
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	found := make(map[string]*Quote)
	for _, id := range barIDs {
		if q, ok := r.quotes[id]; ok {
			found[id] = q
		}
	}
	return found, nil
}

func (r *InMemoryRepository) Upsert(_ context.Context, quote *Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *quote
	r.quotes[quote.BarID] = &copied
	return nil
}

// Stored returns the quote held for a bar, or nil. Test helper.
func (r *InMemoryRepository) Stored(barID string) *Quote {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.quotes[barID]
}
