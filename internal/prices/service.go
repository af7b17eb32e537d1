package prices

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Fxdvs/maturitna-praca-spevak/internal/ocr"
	"github.com/Fxdvs/maturitna-praca-spevak/internal/places"
)

// sampleDrinks is the candidate list for generated quotes, carried over
// from the original product.
var sampleDrinks = []string{"Pilsner", "IPA", "Stout", "Merlot", "Whisky", "Cocktail"}

// Generated fallback price range in euros.
const (
	generatedMin = 2.00
	generatedMax = 7.00
)

const maxImageCandidates = 3

// WebsiteResolver looks up a bar's website when the search result did not
// carry one. Satisfied by places.GoogleClient.
type WebsiteResolver interface {
	Website(ctx context.Context, externalID string) (*string, error)
}

// Archive retains the menu image an OCR quote was read from. Optional.
type Archive interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

type Service struct {
	repo     Repository
	fetcher  Fetcher
	engine   ocr.Engine
	pattern  PricePattern
	websites WebsiteResolver
	archive  Archive
	randFn   func() float64
}

func NewService(
	repo Repository,
	fetcher Fetcher,
	engine ocr.Engine,
	pattern PricePattern,
	websites WebsiteResolver,
	archive Archive,
) *Service {
	return &Service{
		repo:     repo,
		fetcher:  fetcher,
		engine:   engine,
		pattern:  pattern,
		websites: websites,
		archive:  archive,
		randFn:   rand.Float64,
	}
}

// --------------------------------------------------
// Resolve prices for a batch of bars
// --------------------------------------------------
// Resolution order per bar, first success wins:
// stored quote -> webpage scrape -> image OCR -> generated fallback.
// A scrape or OCR failure degrades that one bar to the next tier and
// never aborts the batch; only the batch store lookup is fatal.
func (s *Service) ResolvePrices(
	ctx context.Context,
	bars []*places.Place,
	drinkType string,
) (*Result, error) {

	stored, err := s.repo.GetByBars(ctx, barIDs(bars))
	if err != nil {
		return nil, fmt.Errorf("quote store lookup failed: %w", err)
	}

	priced := make([]*PricedPlace, len(bars))

	var wg sync.WaitGroup
	for i, bar := range bars {
		wg.Add(1)
		go func(i int, bar *places.Place) {
			defer wg.Done()
			priced[i] = s.resolveOne(ctx, bar, stored[bar.ExternalID], drinkType)
		}(i, bar)
	}
	wg.Wait()

	valid := make([]*PricedPlace, 0, len(priced))
	for _, p := range priced {
		if p != nil && p.Price > 0 {
			valid = append(valid, p)
		}
	}

	sort.Slice(valid, func(i, j int) bool {
		return valid[i].Price < valid[j].Price
	})

	result := &Result{
		Bars: valid,
		Stats: Stats{
			Total:        len(valid),
			ByProvenance: make(map[string]int),
		},
	}

	var sum float64
	for _, p := range valid {
		result.Stats.ByProvenance[p.Provenance]++
		sum += p.Price
	}
	if len(valid) > 0 {
		result.Cheapest = valid[0]
		result.Stats.MeanPrice = round2(sum / float64(len(valid)))
	}

	return result, nil
}

func (s *Service) resolveOne(
	ctx context.Context,
	bar *places.Place,
	stored *Quote,
	drinkType string,
) *PricedPlace {

	if stored != nil {
		return priced(bar, stored.DrinkName, stored.Price, ProvenanceStored)
	}

	if quote := s.resolveFromWebsite(ctx, bar, drinkType); quote != nil {
		return quote
	}

	// Generated fallback: plausible drink, plausible price.
	name := drinkName(drinkType)
	price := round2(generatedMin + s.randFn()*(generatedMax-generatedMin))

	log.Printf("PRICE_GENERATED bar=%s price=%.2f", bar.ExternalID, price)
	return priced(bar, name, price, ProvenanceGenerated)
}

func (s *Service) resolveFromWebsite(
	ctx context.Context,
	bar *places.Place,
	drinkType string,
) *PricedPlace {

	site := bar.Website
	if site == nil && s.websites != nil {
		resolved, err := s.websites.Website(ctx, bar.ExternalID)
		if err != nil {
			log.Printf("WEBSITE_LOOKUP_FAILED bar=%s err=%v", bar.ExternalID, err)
			return nil
		}
		site = resolved
	}
	if site == nil {
		return nil
	}

	markup, err := s.fetcher.FetchPage(ctx, *site)
	if err != nil {
		log.Printf("SCRAPE_FAILED bar=%s err=%v", bar.ExternalID, err)
		return nil
	}

	name := drinkName(drinkType)

	// Tier 2: price pattern straight in the markup
	if price, ok := s.pattern.FindFirst(markup); ok {
		log.Printf("PRICE_SCRAPED bar=%s price=%.2f", bar.ExternalID, price)
		s.persist(ctx, bar.ExternalID, name, price, ProvenanceScraped, nil)
		return priced(bar, name, price, ProvenanceScraped)
	}

	// Tier 3: OCR over embedded images
	for _, imageURL := range ImageCandidates(markup, *site, maxImageCandidates) {
		image, contentType, err := s.fetcher.FetchImage(ctx, imageURL)
		if err != nil {
			continue
		}
		if strings.HasPrefix(string(image), "%PDF") {
			continue
		}

		text, err := s.engine.ExtractText(ctx, image)
		if err != nil {
			log.Printf("OCR_FAILED bar=%s image=%s err=%v", bar.ExternalID, imageURL, err)
			continue
		}

		found := s.pattern.FindAll(text)
		if len(found) == 0 {
			continue
		}

		var sum float64
		for _, v := range found {
			sum += v
		}
		price := round2(sum / float64(len(found)))

		archived := s.archiveImage(ctx, bar.ExternalID, image, contentType)

		log.Printf(
			"PRICE_OCR bar=%s image=%s matches=%d price=%.2f",
			bar.ExternalID, imageURL, len(found), price,
		)
		s.persist(ctx, bar.ExternalID, name, price, ProvenanceOCR, archived)
		return priced(bar, name, price, ProvenanceOCR)
	}

	return nil
}

// persist keeps successful scrape/OCR quotes for future requests.
// Failures are logged only; the bar already has its price.
func (s *Service) persist(
	ctx context.Context,
	barID, name string,
	price float64,
	provenance string,
	sourceImageURL *string,
) {
	err := s.repo.Upsert(ctx, &Quote{
		BarID:          barID,
		DrinkName:      name,
		Price:          price,
		Provenance:     provenance,
		SourceImageURL: sourceImageURL,
	})
	if err != nil {
		log.Printf("QUOTE_PERSIST_FAILED bar=%s err=%v", barID, err)
	}
}

func (s *Service) archiveImage(
	ctx context.Context,
	barID string,
	image []byte,
	contentType string,
) *string {
	if s.archive == nil {
		return nil
	}

	key := fmt.Sprintf("menus/%s/%s", barID, uuid.New().String())
	archivedURL, err := s.archive.Put(ctx, key, image, contentType)
	if err != nil {
		log.Printf("IMAGE_ARCHIVE_FAILED bar=%s err=%v", barID, err)
		return nil
	}
	return &archivedURL
}

func priced(bar *places.Place, name string, price float64, provenance string) *PricedPlace {
	return &PricedPlace{
		Place:      *bar,
		DrinkName:  name,
		Price:      price,
		Provenance: provenance,
	}
}

func drinkName(drinkType string) string {
	if drinkType != "" {
		return drinkType
	}
	return sampleDrinks[rand.Intn(len(sampleDrinks))]
}

func barIDs(bars []*places.Place) []string {
	ids := make([]string, 0, len(bars))
	for _, b := range bars {
		ids = append(ids, b.ExternalID)
	}
	return ids
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
