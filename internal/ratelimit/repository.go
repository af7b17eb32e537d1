package ratelimit

import (
	"context"
	"time"
)

type Repository interface {
	// Get returns the counter row for (ip, endpoint), or nil when none
	// exists.
	Get(ctx context.Context, ip, endpoint string) (*Record, error)

	// Create inserts a fresh row with count 1.
	Create(ctx context.Context, ip, endpoint string, now time.Time) error

	// Reset restarts the window with count 1.
	Reset(ctx context.Context, ip, endpoint string, now time.Time) error

	// Increment bumps the counter within the current window.
	Increment(ctx context.Context, ip, endpoint string, now time.Time) error
}
