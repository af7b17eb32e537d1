package places

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/Fxdvs/maturitna-praca-spevak/internal/geo"
)

// Progressive radius search constants. Values carried over from the
// original product unchanged.
var defaultRadiiKm = []float64{1, 3, 5, 7, 10}

const defaultMinResults = 10

type Service struct {
	repo       Repository
	provider   Provider
	radiiKm    []float64
	minResults int
}

func NewService(repo Repository, provider Provider) *Service {
	return &Service{
		repo:       repo,
		provider:   provider,
		radiiKm:    defaultRadiiKm,
		minResults: defaultMinResults,
	}
}

// --------------------------------------------------
// Progressive radius search
// --------------------------------------------------
// Widens the search radius step by step, merging store results first and
// provider results second at each step, until enough unique places are
// collected or the radius sequence is exhausted. Store failures abort the
// whole search; provider failures only skip that step's provider query.
func (s *Service) FindNearbyBars(
	ctx context.Context,
	lat, lng float64,
) (*SearchResult, error) {

	seen := make(map[string]bool)
	var collected []*Place

	// Label reflects the last query that actually contributed new places.
	source := SourceStore
	radiusUsed := s.radiiKm[len(s.radiiKm)-1]

	for _, radius := range s.radiiKm {
		radiusUsed = radius

		box := geo.BoxAround(lat, lng, radius)

		stored, err := s.repo.FindInBox(ctx, box)
		if err != nil {
			return nil, fmt.Errorf("place store query failed: %w", err)
		}
		before := len(collected)
		collected = merge(collected, stored, seen)
		if len(collected) > before {
			source = SourceStore
		}

		if len(collected) < s.minResults {
			fetched, err := s.provider.NearbyBars(ctx, lat, lng, radius)
			if err != nil {
				// Treated as no results for this step only
				log.Printf("PROVIDER_STEP_FAILED radius=%v err=%v", radius, err)
				fetched = nil
			}

			for _, p := range fetched {
				if seen[p.ExternalID] {
					continue
				}
				if err := s.repo.Upsert(ctx, p); err != nil {
					return nil, fmt.Errorf("place upsert failed: %w", err)
				}
			}
			before = len(collected)
			collected = merge(collected, fetched, seen)
			if len(collected) > before {
				source = SourceProvider
			}
		}

		if len(collected) >= s.minResults {
			break
		}
	}

	for _, p := range collected {
		p.DistanceKm = geo.DistanceKm(lat, lng, p.Latitude, p.Longitude)
	}

	// No ordering guarantee is promised, but a stable response is nicer
	// to cache and debug.
	sort.Slice(collected, func(i, j int) bool {
		return collected[i].DistanceKm < collected[j].DistanceKm
	})

	if collected == nil {
		collected = []*Place{}
	}

	return &SearchResult{
		Places:       collected,
		Source:       source,
		RadiusUsedKm: radiusUsed,
	}, nil
}

// merge appends places not yet collected, de-duplicated by external_id.
func merge(collected, incoming []*Place, seen map[string]bool) []*Place {
	for _, p := range incoming {
		if p == nil || seen[p.ExternalID] {
			continue
		}
		seen[p.ExternalID] = true
		collected = append(collected, p)
	}
	return collected
}
