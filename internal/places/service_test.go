package places

import (
	"context"
	"errors"
	"testing"

	"github.com/Fxdvs/maturitna-praca-spevak/internal/geo"
)

// Fake provider returning a fixed set of places regardless of radius,
// with optional per-call failures.
type fakeProvider struct {
	bars     []*Place
	err      error
	calls    int
	failOnce bool

	websites     map[string]string
	websiteCalls int
}

func (f *fakeProvider) NearbyBars(_ context.Context, _, _, _ float64) ([]*Place, error) {
	f.calls++
	if f.err != nil {
		if f.failOnce {
			err := f.err
			f.err = nil
			return nil, err
		}
		return nil, f.err
	}
	return f.bars, nil
}

func (f *fakeProvider) Website(_ context.Context, externalID string) (*string, error) {
	f.websiteCalls++
	site, ok := f.websites[externalID]
	if !ok {
		return nil, nil
	}
	return &site, nil
}

const (
	bratislavaLat = 48.1486
	bratislavaLng = 17.1077
)

func barAt(id string, lat, lng float64) *Place {
	return &Place{
		ExternalID: id,
		Name:       "Bar " + id,
		Latitude:   lat,
		Longitude:  lng,
	}
}

func TestSearchEscalatesUntilProviderResultsFound(t *testing.T) {
	repo := NewInMemoryRepository()
	provider := &fakeProvider{bars: []*Place{
		barAt("g1", 48.149, 17.108),
		barAt("g2", 48.150, 17.109),
	}}
	service := NewService(repo, provider)

	result, err := service.FindNearbyBars(context.Background(), bratislavaLat, bratislavaLng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Places) != 2 {
		t.Fatalf("expected 2 places, got %d", len(result.Places))
	}

	// 2 < target(10), so every radius step runs and the final radius is
	// the last in the sequence
	if result.RadiusUsedKm != 10 {
		t.Fatalf("expected final radius 10, got %v", result.RadiusUsedKm)
	}

	if result.Source != SourceProvider {
		t.Fatalf("expected provider source, got %s", result.Source)
	}

	if provider.calls != len(defaultRadiiKm) {
		t.Fatalf("expected %d provider calls, got %d", len(defaultRadiiKm), provider.calls)
	}
}

func TestSearchNeverReturnsDuplicateIDs(t *testing.T) {
	repo := NewInMemoryRepository()

	// The same bar known to both the store and the provider
	shared := barAt("dup", 48.149, 17.108)
	if err := repo.Upsert(context.Background(), shared); err != nil {
		t.Fatal(err)
	}

	provider := &fakeProvider{bars: []*Place{
		barAt("dup", 48.149, 17.108),
		barAt("other", 48.150, 17.109),
	}}
	service := NewService(repo, provider)

	result, err := service.FindNearbyBars(context.Background(), bratislavaLat, bratislavaLng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[string]bool)
	for _, p := range result.Places {
		if seen[p.ExternalID] {
			t.Fatalf("duplicate external_id %s in result", p.ExternalID)
		}
		seen[p.ExternalID] = true
	}

	if len(result.Places) != 2 {
		t.Fatalf("expected 2 unique places, got %d", len(result.Places))
	}
}

func TestSearchStopsOnceTargetReached(t *testing.T) {
	repo := NewInMemoryRepository()

	// Store already holds enough bars within the first radius
	for i := 0; i < defaultMinResults; i++ {
		p := barAt(string(rune('a'+i)), 48.1486+float64(i)*0.0001, 17.1077)
		if err := repo.Upsert(context.Background(), p); err != nil {
			t.Fatal(err)
		}
	}

	provider := &fakeProvider{}
	service := NewService(repo, provider)

	result, err := service.FindNearbyBars(context.Background(), bratislavaLat, bratislavaLng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RadiusUsedKm != 1 {
		t.Fatalf("expected search to stop at radius 1, got %v", result.RadiusUsedKm)
	}
	if result.Source != SourceStore {
		t.Fatalf("expected store source, got %s", result.Source)
	}
	if provider.calls != 0 {
		t.Fatalf("provider should not be called when store satisfies target, got %d calls", provider.calls)
	}
}

func TestProviderFailureIsToleratedPerStep(t *testing.T) {
	repo := NewInMemoryRepository()
	provider := &fakeProvider{
		bars:     []*Place{barAt("late", 48.149, 17.108)},
		err:      errors.New("provider down"),
		failOnce: true,
	}
	service := NewService(repo, provider)

	result, err := service.FindNearbyBars(context.Background(), bratislavaLat, bratislavaLng)
	if err != nil {
		t.Fatalf("provider failure must not fail the search: %v", err)
	}

	// First step failed, later steps still found the bar
	if len(result.Places) != 1 {
		t.Fatalf("expected 1 place from later steps, got %d", len(result.Places))
	}
}

func TestStoreFailureIsFatal(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.FailQueries = errors.New("store down")

	service := NewService(repo, &fakeProvider{})

	if _, err := service.FindNearbyBars(context.Background(), bratislavaLat, bratislavaLng); err == nil {
		t.Fatal("expected error when the store is unavailable")
	}
}

func TestZeroResultsIsNotAnError(t *testing.T) {
	repo := NewInMemoryRepository()
	service := NewService(repo, &fakeProvider{})

	result, err := service.FindNearbyBars(context.Background(), bratislavaLat, bratislavaLng)
	if err != nil {
		t.Fatalf("empty area must not error: %v", err)
	}

	if len(result.Places) != 0 {
		t.Fatalf("expected no places, got %d", len(result.Places))
	}
	if result.RadiusUsedKm != defaultRadiiKm[len(defaultRadiiKm)-1] {
		t.Fatalf("expected max radius tried, got %v", result.RadiusUsedKm)
	}
}

func TestProviderDiscoveriesArePersisted(t *testing.T) {
	repo := NewInMemoryRepository()
	provider := &fakeProvider{bars: []*Place{barAt("new", 48.149, 17.108)}}
	service := NewService(repo, provider)

	if _, err := service.FindNearbyBars(context.Background(), bratislavaLat, bratislavaLng); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := repo.Get(context.Background(), "new")
	if err != nil {
		t.Fatal(err)
	}
	if stored == nil {
		t.Fatal("provider discovery was not upserted into the store")
	}
}

func TestResultsStayWithinSearchBound(t *testing.T) {
	repo := NewInMemoryRepository()

	// One bar nearby, one in Vienna (outside every radius)
	near := barAt("near", 48.150, 17.110)
	far := barAt("far", 48.2082, 16.3738)
	for _, p := range []*Place{near, far} {
		if err := repo.Upsert(context.Background(), p); err != nil {
			t.Fatal(err)
		}
	}

	service := NewService(repo, &fakeProvider{})

	result, err := service.FindNearbyBars(context.Background(), bratislavaLat, bratislavaLng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	maxRadius := result.RadiusUsedKm
	box := geo.BoxAround(bratislavaLat, bratislavaLng, maxRadius)

	for _, p := range result.Places {
		if !box.Contains(p.Latitude, p.Longitude) {
			t.Fatalf("place %s outside the final search box", p.ExternalID)
		}
		if p.DistanceKm <= 0 {
			t.Fatalf("place %s missing distance annotation", p.ExternalID)
		}
	}
}
