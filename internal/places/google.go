package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Provider searches for bars around a coordinate and resolves place
// details. Implemented by GoogleClient; faked in tests.
type Provider interface {
	NearbyBars(ctx context.Context, lat, lng, radiusKm float64) ([]*Place, error)
	Website(ctx context.Context, externalID string) (*string, error)
}

// GoogleClient wraps the Google Places nearby-search and details APIs.
// All calls are bounded by a 10s client timeout.
type GoogleClient struct {
	apiKey  string
	baseURL string
	keyword string
	client  *http.Client
}

func NewGoogleClient(apiKey string) *GoogleClient {
	return &GoogleClient{
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com/maps/api/place",
		keyword: "pub",
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type nearbyResponse struct {
	Results []placeResult `json:"results"`
	Status  string        `json:"status"`
}

type placeResult struct {
	PlaceID  string  `json:"place_id"`
	Name     string  `json:"name"`
	Vicinity string  `json:"vicinity"`
	Rating   float64 `json:"rating"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	OpeningHours *struct {
		OpenNow bool `json:"open_now"`
	} `json:"opening_hours"`
}

type detailsResponse struct {
	Result struct {
		Website string `json:"website"`
	} `json:"result"`
	Status string `json:"status"`
}

func (g *GoogleClient) NearbyBars(
	ctx context.Context,
	lat, lng, radiusKm float64,
) ([]*Place, error) {

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("radius", fmt.Sprintf("%d", int(radiusKm*1000)))
	params.Set("keyword", g.keyword)
	params.Set("key", g.apiKey)

	var resp nearbyResponse
	if err := g.get(ctx, g.baseURL+"/nearbysearch/json?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places API status %s", resp.Status)
	}

	bars := make([]*Place, 0, len(resp.Results))
	for _, res := range resp.Results {
		p := &Place{
			ExternalID: res.PlaceID,
			Name:       res.Name,
			Address:    res.Vicinity,
			Rating:     res.Rating,
			Latitude:   res.Geometry.Location.Lat,
			Longitude:  res.Geometry.Location.Lng,
		}
		if res.OpeningHours != nil {
			p.OpenNow = res.OpeningHours.OpenNow
		}
		bars = append(bars, p)
	}

	return bars, nil
}

// Website resolves a place's website URL via the details API. Returns nil
// when the place has none.
func (g *GoogleClient) Website(
	ctx context.Context,
	externalID string,
) (*string, error) {

	params := url.Values{}
	params.Set("place_id", externalID)
	params.Set("fields", "website")
	params.Set("key", g.apiKey)

	var resp detailsResponse
	if err := g.get(ctx, g.baseURL+"/details/json?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	if resp.Status != "OK" {
		return nil, fmt.Errorf("place details status %s", resp.Status)
	}
	if resp.Result.Website == "" {
		return nil, nil
	}

	site := resp.Result.Website
	return &site, nil
}

func (g *GoogleClient) get(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("places request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("places API returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse places response: %w", err)
	}

	return nil
}
