package places

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

var errTest = errors.New("store down")

func setupBarsTestRouter(service *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handler := NewHandler(service)
	r.GET("/api/bars", handler.FindNearby)

	return r
}

func TestBarsRequiresCoordinates(t *testing.T) {
	router := setupBarsTestRouter(NewService(NewInMemoryRepository(), &fakeProvider{}))

	cases := []string{
		"/api/bars",
		"/api/bars?lat=48.1",
		"/api/bars?lng=17.1",
		"/api/bars?lat=abc&lng=17.1",
	}

	for _, path := range cases {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, w.Code)
		}
	}
}

func TestBarsRejectsOutOfRangeCoordinates(t *testing.T) {
	provider := &fakeProvider{}
	repo := NewInMemoryRepository()
	router := setupBarsTestRouter(NewService(repo, provider))

	// NaN parses as a valid float and must still be rejected
	cases := []string{
		"/api/bars?lat=123&lng=17.1",
		"/api/bars?lat=48.1&lng=-200",
		"/api/bars?lat=NaN&lng=17.1",
		"/api/bars?lat=48.1&lng=NaN",
	}

	for _, path := range cases {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, w.Code)
		}
	}

	if provider.calls != 0 {
		t.Fatalf("invalid coordinates must not reach the provider, got %d calls", provider.calls)
	}
}

func TestBarsReturnsSearchResult(t *testing.T) {
	provider := &fakeProvider{bars: []*Place{
		barAt("g1", 48.149, 17.108),
		barAt("g2", 48.150, 17.109),
	}}
	router := setupBarsTestRouter(NewService(NewInMemoryRepository(), provider))

	req := httptest.NewRequest(http.MethodGet, "/api/bars?lat=48.1486&lng=17.1077", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Bars           []*Place `json:"bars"`
		Source         string   `json:"source"`
		SearchedRadius float64  `json:"searchedRadius"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	if len(resp.Bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(resp.Bars))
	}
	if resp.Source != SourceProvider {
		t.Fatalf("expected provider source, got %q", resp.Source)
	}
	if resp.SearchedRadius == 0 {
		t.Fatal("searchedRadius missing from response")
	}
}

func TestBarsStoreErrorIsServerError(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.FailQueries = errTest

	router := setupBarsTestRouter(NewService(repo, &fakeProvider{}))

	req := httptest.NewRequest(http.MethodGet, "/api/bars?lat=48.1486&lng=17.1077", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
