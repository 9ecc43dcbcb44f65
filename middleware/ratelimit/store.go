package ratelimit

import (
	"context"
	"sync"
	"time"

	"trimly/models"
)

// Store holds the mutable rate-limit state: per-key fixed windows, per-IP
// violation history, and the IP blacklist. The in-memory implementation is
// per-instance; the redis implementation shares state across instances.
type Store interface {
	// Allow applies the fixed-window rule for key: when the current window's
	// count has reached max the request is denied without incrementing, and
	// RetryAfter covers the remainder of the window. Otherwise the counter
	// is incremented and the request allowed.
	Allow(ctx context.Context, key string, max int, window time.Duration, now time.Time) (allowed bool, retryAfter time.Duration, err error)

	// AddViolation records a throttling violation for the IP and returns the
	// number of violations within the rolling period ending at now.
	AddViolation(ctx context.Context, ip string, period time.Duration, now time.Time) (int, error)

	// Blacklist inserts or refreshes a blacklist entry.
	Blacklist(ctx context.Context, entry models.BlacklistEntry) error

	// GetBlacklist returns the active entry for ip, lazily evicting an
	// expired one. A request exactly at expiry is allowed through.
	GetBlacklist(ctx context.Context, ip string, now time.Time) (*models.BlacklistEntry, error)

	ListBlacklist(ctx context.Context, now time.Time) ([]models.BlacklistEntry, error)
	RemoveBlacklist(ctx context.Context, ip string) error
}

// MemoryStore is the default per-instance Store: plain maps behind a mutex
// with lazy expiry, no background sweep.
type MemoryStore struct {
	mu         sync.Mutex
	windows    map[string]*fixedWindow
	violations map[string][]time.Time
	blacklist  map[string]models.BlacklistEntry
}

type fixedWindow struct {
	start time.Time
	count int
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows:    make(map[string]*fixedWindow),
		violations: make(map[string][]time.Time),
		blacklist:  make(map[string]models.BlacklistEntry),
	}
}

func (s *MemoryStore) Allow(_ context.Context, key string, max int, window time.Duration, now time.Time) (bool, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || now.Sub(w.start) >= window {
		w = &fixedWindow{start: now}
		s.windows[key] = w
	}
	if w.count >= max {
		return false, w.start.Add(window).Sub(now), nil
	}
	w.count++
	return true, 0, nil
}

func (s *MemoryStore) AddViolation(_ context.Context, ip string, period time.Duration, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-period)
	kept := s.violations[ip][:0]
	for _, ts := range s.violations[ip] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	kept = append(kept, now)
	s.violations[ip] = kept
	return len(kept), nil
}

func (s *MemoryStore) Blacklist(_ context.Context, entry models.BlacklistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blacklist[entry.IP] = entry
	return nil
}

func (s *MemoryStore) GetBlacklist(_ context.Context, ip string, now time.Time) (*models.BlacklistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.blacklist[ip]
	if !ok {
		return nil, nil
	}
	if entry.Expired(now) {
		delete(s.blacklist, ip)
		return nil, nil
	}
	return &entry, nil
}

func (s *MemoryStore) ListBlacklist(_ context.Context, now time.Time) ([]models.BlacklistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]models.BlacklistEntry, 0, len(s.blacklist))
	for ip, entry := range s.blacklist {
		if entry.Expired(now) {
			delete(s.blacklist, ip)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *MemoryStore) RemoveBlacklist(_ context.Context, ip string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blacklist, ip)
	return nil
}
