package places

import (
	"context"
	"log"
)

// WebsiteCache answers website lookups from the store before paying for a
// provider details call, and writes newly discovered websites back.
type WebsiteCache struct {
	repo     Repository
	provider Provider
}

func NewWebsiteCache(repo Repository, provider Provider) *WebsiteCache {
	return &WebsiteCache{repo: repo, provider: provider}
}

func (w *WebsiteCache) Website(ctx context.Context, externalID string) (*string, error) {
	place, err := w.repo.Get(ctx, externalID)
	if err != nil {
		// Store trouble degrades to a plain provider lookup
		log.Printf("WEBSITE_CACHE_READ_FAILED bar=%s err=%v", externalID, err)
		place = nil
	}

	if place != nil && place.Website != nil {
		return place.Website, nil
	}

	site, err := w.provider.Website(ctx, externalID)
	if err != nil || site == nil {
		return site, err
	}

	// Only known places can carry the website; the upsert refreshes the
	// existing row without clobbering other fields.
	if place != nil {
		place.Website = site
		if err := w.repo.Upsert(ctx, place); err != nil {
			log.Printf("WEBSITE_CACHE_WRITE_FAILED bar=%s err=%v", externalID, err)
		}
	}

	return site, nil
}
