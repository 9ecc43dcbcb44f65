package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trimly/models"
)

var t0 = time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

func TestMemoryStoreAllow(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, _, err := s.Allow(ctx, "booking_create:1.2.3.4", 3, time.Minute, t0.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		assert.True(t, allowed, "request %d", i+1)
	}

	allowed, retryAfter, err := s.Allow(ctx, "booking_create:1.2.3.4", 3, time.Minute, t0.Add(10*time.Second))
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 50*time.Second, retryAfter)
}

func TestMemoryStoreDeniedRequestsDoNotExtendWindow(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, err := s.Allow(ctx, "k", 3, time.Minute, t0)
		require.NoError(t, err)
	}
	// Hammering a full bucket must not push the reset further out.
	for i := 0; i < 10; i++ {
		allowed, _, err := s.Allow(ctx, "k", 3, time.Minute, t0.Add(30*time.Second))
		require.NoError(t, err)
		assert.False(t, allowed)
	}

	allowed, _, err := s.Allow(ctx, "k", 3, time.Minute, t0.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMemoryStoreWindowReset(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, err := s.Allow(ctx, "k", 3, time.Minute, t0)
		require.NoError(t, err)
	}
	allowed, _, err := s.Allow(ctx, "k", 3, time.Minute, t0.Add(59*time.Second))
	require.NoError(t, err)
	assert.False(t, allowed)

	// A fresh window starts exactly at the boundary.
	allowed, _, err = s.Allow(ctx, "k", 3, time.Minute, t0.Add(60*time.Second))
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMemoryStoreKeysAreIndependent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, err := s.Allow(ctx, "booking_create:1.2.3.4", 3, time.Minute, t0)
		require.NoError(t, err)
	}
	denied, _, err := s.Allow(ctx, "booking_create:1.2.3.4", 3, time.Minute, t0)
	require.NoError(t, err)
	assert.False(t, denied)

	// Same class, other IP.
	allowed, _, err := s.Allow(ctx, "booking_create:5.6.7.8", 3, time.Minute, t0)
	require.NoError(t, err)
	assert.True(t, allowed)

	// Same IP, other class.
	allowed, _, err = s.Allow(ctx, "public_read:1.2.3.4", 30, time.Minute, t0)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMemoryStoreAddViolation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	n, err := s.AddViolation(ctx, "1.2.3.4", 5*time.Minute, t0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.AddViolation(ctx, "1.2.3.4", 5*time.Minute, t0.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Six minutes later the first violation has aged out of the period.
	n, err = s.AddViolation(ctx, "1.2.3.4", 5*time.Minute, t0.Add(6*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMemoryStoreBlacklist(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	entry := models.BlacklistEntry{
		IP:            "1.2.3.4",
		BlacklistedAt: t0,
		ExpiresAt:     t0.Add(time.Hour),
		Reason:        "test",
	}
	require.NoError(t, s.Blacklist(ctx, entry))

	got, err := s.GetBlacklist(ctx, "1.2.3.4", t0.Add(30*time.Minute))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "test", got.Reason)

	got, err = s.GetBlacklist(ctx, "9.9.9.9", t0)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreBlacklistLazyExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Blacklist(ctx, models.BlacklistEntry{
		IP: "1.2.3.4", BlacklistedAt: t0, ExpiresAt: t0.Add(time.Hour),
	}))

	got, err := s.GetBlacklist(ctx, "1.2.3.4", t0.Add(time.Hour-time.Second))
	require.NoError(t, err)
	assert.NotNil(t, got)

	// A lookup exactly at expiry evicts the entry and passes the client.
	got, err = s.GetBlacklist(ctx, "1.2.3.4", t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Nil(t, got)

	entries, err := s.ListBlacklist(ctx, t0.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMemoryStoreListAndRemoveBlacklist(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Blacklist(ctx, models.BlacklistEntry{IP: "1.1.1.1", ExpiresAt: t0.Add(time.Hour)}))
	require.NoError(t, s.Blacklist(ctx, models.BlacklistEntry{IP: "2.2.2.2", ExpiresAt: t0.Add(time.Minute)}))

	entries, err := s.ListBlacklist(ctx, t0.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "1.1.1.1", entries[0].IP)

	require.NoError(t, s.RemoveBlacklist(ctx, "1.1.1.1"))
	got, err := s.GetBlacklist(ctx, "1.1.1.1", t0.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Nil(t, got)
}
