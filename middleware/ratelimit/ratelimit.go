package ratelimit

import "time"

// Severity ranks how abuse-sensitive a bucket class is. Only high and
// critical classes escalate repeat offenders to the blacklist.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityHigh
	SeverityCritical
)

// Class is a named endpoint category with its own fixed-window budget.
// Classes are independent: exhausting one bucket does not affect others.
type Class struct {
	Name     string
	Max      int
	Window   time.Duration
	Severity Severity
}

// The bucket classes and budgets enforced per client IP.
var (
	ClassAuth          = Class{Name: "auth", Max: 5, Window: 15 * time.Minute, Severity: SeverityCritical}
	ClassBookingCreate = Class{Name: "booking_create", Max: 3, Window: time.Minute, Severity: SeverityCritical}
	ClassReservation   = Class{Name: "reservation", Max: 5, Window: 15 * time.Minute, Severity: SeverityHigh}
	ClassCancel        = Class{Name: "cancel", Max: 3, Window: time.Hour, Severity: SeverityHigh}
	ClassReview        = Class{Name: "review", Max: 3, Window: 24 * time.Hour, Severity: SeverityLow}
	ClassPublicRead    = Class{Name: "public_read", Max: 30, Window: time.Minute, Severity: SeverityLow}
	ClassAdminWrite    = Class{Name: "admin_write", Max: 60, Window: time.Minute, Severity: SeverityLow}
	ClassAdminRead     = Class{Name: "admin_read", Max: 120, Window: time.Minute, Severity: SeverityLow}
)

// Decision is the outcome of a guard check for one request.
type Decision struct {
	Allowed     bool
	Blacklisted bool
	// RetryAfter is the remaining window time when rate limited.
	RetryAfter time.Duration
}
