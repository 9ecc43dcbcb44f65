package models

import "time"

// BlacklistEntry records a temporarily blocked client IP. Entries are created
// when an IP accumulates rate-limit violations on sensitive endpoints, and
// are lazily evicted once ExpiresAt has passed.
type BlacklistEntry struct {
	IP            string    `json:"ip"`
	BlacklistedAt time.Time `json:"blacklistedAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
	Reason        string    `json:"reason"`
}

// Expired reports whether the entry is past its expiry at the given time.
func (e BlacklistEntry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}
