package ratelimit

import (
	"context"
	"sync"
	"time"
)

type InMemoryRepository struct {
	mu      sync.Mutex
	records map[string]*Record

	FailAll error
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{records: make(map[string]*Record)}
}

func key(ip, endpoint string) string {
	return ip + "|" + endpoint
}

func (r *InMemoryRepository) Get(_ context.Context, ip, endpoint string) (*Record, error) {
	if r.FailAll != nil {
		return nil, r.FailAll
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[key(ip, endpoint)]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (r *InMemoryRepository) Create(_ context.Context, ip, endpoint string, now time.Time) error {
	if r.FailAll != nil {
		return r.FailAll
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[key(ip, endpoint)] = &Record{
		IP:             ip,
		Endpoint:       endpoint,
		RequestCount:   1,
		FirstRequestAt: now,
		LastRequestAt:  now,
	}
	return nil
}

func (r *InMemoryRepository) Reset(_ context.Context, ip, endpoint string, now time.Time) error {
	if r.FailAll != nil {
		return r.FailAll
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if rec, ok := r.records[key(ip, endpoint)]; ok {
		rec.RequestCount = 1
		rec.FirstRequestAt = now
		rec.LastRequestAt = now
	}
	return nil
}

func (r *InMemoryRepository) Increment(_ context.Context, ip, endpoint string, now time.Time) error {
	if r.FailAll != nil {
		return r.FailAll
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if rec, ok := r.records[key(ip, endpoint)]; ok {
		rec.RequestCount++
		rec.LastRequestAt = now
	}
	return nil
}
