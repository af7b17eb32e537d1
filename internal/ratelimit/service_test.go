package ratelimit

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestService(repo Repository, now time.Time) *Service {
	s := NewService(repo)
	s.nowFn = func() time.Time { return now }
	return s
}

func TestLimitAllowsUpToThreeThenDenies(t *testing.T) {
	repo := NewInMemoryRepository()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	service := newTestService(repo, now)

	ctx := context.Background()

	for i := 0; i < Limit; i++ {
		decision := service.Check(ctx, "1.2.3.4", "/api/bars")
		if !decision.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	decision := service.Check(ctx, "1.2.3.4", "/api/bars")
	if decision.Allowed {
		t.Fatal("4th request within window should be denied")
	}
	if decision.ResetAt == nil {
		t.Fatal("denied decision must carry a reset time")
	}
	if !decision.ResetAt.After(now) {
		t.Fatalf("resetAt %v not in the future", decision.ResetAt)
	}
	if want := now.Add(Window); !decision.ResetAt.Equal(want) {
		t.Fatalf("resetAt = %v, want %v", decision.ResetAt, want)
	}
}

func TestWindowExpiryResetsCounter(t *testing.T) {
	repo := NewInMemoryRepository()
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	service := newTestService(repo, start)

	ctx := context.Background()

	for i := 0; i < Limit+1; i++ {
		service.Check(ctx, "1.2.3.4", "/api/bars")
	}

	// Past the window, the counter starts over
	service.nowFn = func() time.Time { return start.Add(Window + time.Minute) }

	decision := service.Check(ctx, "1.2.3.4", "/api/bars")
	if !decision.Allowed {
		t.Fatal("request after window expiry should be allowed")
	}
	if decision.Remaining != Limit-1 {
		t.Fatalf("expected remaining %d after reset, got %d", Limit-1, decision.Remaining)
	}
}

func TestEndpointsAreLimitedIndependently(t *testing.T) {
	repo := NewInMemoryRepository()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	service := newTestService(repo, now)

	ctx := context.Background()

	for i := 0; i < Limit; i++ {
		service.Check(ctx, "1.2.3.4", "/api/bars")
	}

	if decision := service.Check(ctx, "1.2.3.4", "/api/prices"); !decision.Allowed {
		t.Fatal("a different endpoint must not share the counter")
	}
	if decision := service.Check(ctx, "5.6.7.8", "/api/bars"); !decision.Allowed {
		t.Fatal("a different IP must not share the counter")
	}
}

func TestPersistenceFailureFailsOpen(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.FailAll = errors.New("store down")

	service := newTestService(repo, time.Now())

	decision := service.Check(context.Background(), "1.2.3.4", "/api/bars")
	if !decision.Allowed {
		t.Fatal("persistence failure must fail open")
	}
}

func TestClientIPResolution(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newCtx := func() *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/", nil)
		return c
	}

	c := newCtx()
	c.Request.Header.Set("X-Forwarded-For", "9.9.9.9, 10.0.0.1")
	c.Request.Header.Set("X-Real-IP", "8.8.8.8")
	if ip := ClientIP(c); ip != "9.9.9.9" {
		t.Fatalf("expected first forwarded entry, got %q", ip)
	}

	c = newCtx()
	c.Request.Header.Set("X-Real-IP", "8.8.8.8")
	if ip := ClientIP(c); ip != "8.8.8.8" {
		t.Fatalf("expected real-ip fallback, got %q", ip)
	}

	c = newCtx()
	if ip := ClientIP(c); ip != "unknown" {
		t.Fatalf("expected unknown sentinel, got %q", ip)
	}
}
