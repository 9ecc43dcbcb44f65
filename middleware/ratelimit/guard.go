package ratelimit

import (
	"context"
	"fmt"
	"time"

	"trimly/models"
	"trimly/utils"

	"go.uber.org/zap"
)

// Guard applies the per-class fixed-window budgets and escalates repeat
// offenders to the IP blacklist.
//
// The guard is fail-open: if the store errors, the request is allowed and
// the failure logged. Denying traffic because our own counters are down
// would turn a limiter fault into an outage.
type Guard struct {
	Store Store

	// EscalationThreshold violations within EscalationPeriod on high or
	// critical classes blacklist the IP for BlacklistTTL.
	EscalationThreshold int
	EscalationPeriod    time.Duration
	BlacklistTTL        time.Duration

	// Now is injectable for tests; nil means time.Now.
	Now func() time.Time

	Logger *zap.Logger
}

// NewGuard constructs a Guard with the default escalation policy.
func NewGuard(store Store) *Guard {
	return &Guard{
		Store:               store,
		EscalationThreshold: 3,
		EscalationPeriod:    5 * time.Minute,
		BlacklistTTL:        time.Hour,
	}
}

func (g *Guard) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g *Guard) logger() *zap.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return utils.GetLogger()
}

// Check decides whether the request from ip may proceed under the class.
// The blacklist gate runs first and is cheaper than the window counting; a
// blacklisted IP never touches its counters.
func (g *Guard) Check(ctx context.Context, ip string, class Class) Decision {
	now := g.now()

	entry, err := g.Store.GetBlacklist(ctx, ip, now)
	if err != nil {
		g.logger().Error("blacklist lookup failed, allowing request", zap.String("ip", ip), zap.Error(err))
		return Decision{Allowed: true}
	}
	if entry != nil {
		return Decision{Allowed: false, Blacklisted: true}
	}

	key := fmt.Sprintf("%s:%s", class.Name, ip)
	allowed, retryAfter, err := g.Store.Allow(ctx, key, class.Max, class.Window, now)
	if err != nil {
		g.logger().Error("rate window update failed, allowing request", zap.String("ip", ip), zap.Error(err))
		return Decision{Allowed: true}
	}
	if allowed {
		return Decision{Allowed: true}
	}

	if class.Severity >= SeverityHigh {
		g.escalate(ctx, ip, class, now)
	}
	return Decision{Allowed: false, RetryAfter: retryAfter}
}

// escalate records the violation and blacklists the IP once the threshold is
// reached within the rolling escalation period.
func (g *Guard) escalate(ctx context.Context, ip string, class Class, now time.Time) {
	count, err := g.Store.AddViolation(ctx, ip, g.EscalationPeriod, now)
	if err != nil {
		g.logger().Error("violation tracking failed", zap.String("ip", ip), zap.Error(err))
		return
	}
	if count < g.EscalationThreshold {
		return
	}

	entry := models.BlacklistEntry{
		IP:            ip,
		BlacklistedAt: now,
		ExpiresAt:     now.Add(g.BlacklistTTL),
		Reason:        fmt.Sprintf("%d rate-limit violations on %s within %s", count, class.Name, g.EscalationPeriod),
	}
	if err := g.Store.Blacklist(ctx, entry); err != nil {
		g.logger().Error("blacklist insert failed", zap.String("ip", ip), zap.Error(err))
		return
	}
	utils.SecurityEvent("ip_blacklisted",
		zap.String("ip", ip),
		zap.String("class", class.Name),
		zap.Int("violations", count),
		zap.Time("expiresAt", entry.ExpiresAt),
	)
}
