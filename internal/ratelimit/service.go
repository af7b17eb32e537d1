package ratelimit

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Service enforces a per-(ip, endpoint) sliding-window-by-reset limit.
// Any persistence fault fails open: availability over strict enforcement.
type Service struct {
	repo   Repository
	limit  int
	window time.Duration
	nowFn  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:   repo,
		limit:  Limit,
		window: Window,
		nowFn:  time.Now,
	}
}

func (s *Service) Check(ctx context.Context, ip, endpoint string) Decision {
	now := s.nowFn()

	rec, err := s.repo.Get(ctx, ip, endpoint)
	if err != nil {
		log.Printf("RATELIMIT_FETCH_FAILED ip=%s endpoint=%s err=%v", ip, endpoint, err)
		return Decision{Allowed: true, Remaining: s.limit}
	}

	if rec == nil {
		if err := s.repo.Create(ctx, ip, endpoint, now); err != nil {
			log.Printf("RATELIMIT_CREATE_FAILED ip=%s endpoint=%s err=%v", ip, endpoint, err)
		}
		return Decision{Allowed: true, Remaining: s.limit - 1}
	}

	// Window expired, start over
	if now.Sub(rec.FirstRequestAt) > s.window {
		if err := s.repo.Reset(ctx, ip, endpoint, now); err != nil {
			log.Printf("RATELIMIT_RESET_FAILED ip=%s endpoint=%s err=%v", ip, endpoint, err)
		}
		return Decision{Allowed: true, Remaining: s.limit - 1}
	}

	if rec.RequestCount >= s.limit {
		resetAt := rec.FirstRequestAt.Add(s.window)
		return Decision{Allowed: false, Remaining: 0, ResetAt: &resetAt}
	}

	if err := s.repo.Increment(ctx, ip, endpoint, now); err != nil {
		log.Printf("RATELIMIT_INCREMENT_FAILED ip=%s endpoint=%s err=%v", ip, endpoint, err)
	}
	return Decision{Allowed: true, Remaining: s.limit - rec.RequestCount - 1}
}

// ClientIP resolves the requester's address: first X-Forwarded-For entry,
// then X-Real-IP, else "unknown". Never fails.
func ClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}

	return "unknown"
}
