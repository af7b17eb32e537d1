package prices

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher retrieves bar websites and their embedded images. Implemented
// by WebScraper; faked in tests.
type Fetcher interface {
	FetchPage(ctx context.Context, pageURL string) (string, error)
	FetchImage(ctx context.Context, imageURL string) ([]byte, string, error)
}

// WebScraper fetches pages and images with a bounded 10s timeout and a
// cap on body size, since bar websites are arbitrary internet content.
type WebScraper struct {
	client      *http.Client
	maxBodySize int64
}

func NewWebScraper() *WebScraper {
	return &WebScraper{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		maxBodySize: 5 << 20, // 5 MiB
	}
}

func (s *WebScraper) FetchPage(ctx context.Context, pageURL string) (string, error) {
	body, _, err := s.fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (s *WebScraper) FetchImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	return s.fetch(ctx, imageURL)
}

func (s *WebScraper) fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; drinkfinder/1.0)")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodySize))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read body: %w", err)
	}

	return body, resp.Header.Get("Content-Type"), nil
}

// menuHints mark image URLs likely to show a price list. Slovak venues
// commonly publish their menu as "cennik" or "napojovy listok".
var menuHints = []string{"menu", "price", "cennik", "listok", "drink"}

// ImageCandidates extracts embedded image URLs from the markup, hinted
// ones first, resolved against the page URL. Falls back to the first
// image when nothing looks like a menu.
func ImageCandidates(markup, pageURL string, limit int) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	base, _ := url.Parse(pageURL)

	var hinted, rest []string
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("src")
		if !ok || src == "" || strings.HasPrefix(src, "data:") {
			return
		}

		resolved := resolveURL(base, src)
		if resolved == "" {
			return
		}

		if hasMenuHint(resolved) || hasMenuHint(sel.AttrOr("alt", "")) {
			hinted = append(hinted, resolved)
		} else {
			rest = append(rest, resolved)
		}
	})

	candidates := append(hinted, rest...)
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

func hasMenuHint(s string) bool {
	lower := strings.ToLower(s)
	for _, hint := range menuHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

func resolveURL(base *url.URL, src string) string {
	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	if base == nil {
		if ref.IsAbs() {
			return ref.String()
		}
		return ""
	}
	return base.ResolveReference(ref).String()
}
