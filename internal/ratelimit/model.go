package ratelimit

import "time"

// Limit and window carried over from the original product unchanged.
const (
	Limit  = 3
	Window = 2 * time.Hour
)

// Record is one per-(ip, endpoint) counter row.
type Record struct {
	IP             string
	Endpoint       string
	RequestCount   int
	FirstRequestAt time.Time
	LastRequestAt  time.Time
}

// Decision is the outcome of a rate-limit check.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   *time.Time
}
