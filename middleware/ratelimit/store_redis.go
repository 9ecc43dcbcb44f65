package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"trimly/models"

	"github.com/go-redis/redis/v8"
)

const (
	redisWindowPrefix    = "rl:win:"
	redisViolationPrefix = "rl:viol:"
	redisBlacklistPrefix = "rl:bl:"
)

// RedisStore shares rate-limit state across instances. Counters are INCR'd
// with a TTL equal to the window, so the fixed window is keyed by first-seen
// rather than wall-clock aligned, matching the in-memory semantics.
type RedisStore struct {
	Client *redis.Client
}

// NewRedisStore wraps the given redis client as a shared Store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client}
}

func (s *RedisStore) Allow(ctx context.Context, key string, max int, window time.Duration, now time.Time) (bool, time.Duration, error) {
	rkey := redisWindowPrefix + key

	count, err := s.Client.Incr(ctx, rkey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("rate window incr: %w", err)
	}
	if count == 1 {
		if err := s.Client.Expire(ctx, rkey, window).Err(); err != nil {
			return false, 0, fmt.Errorf("rate window expire: %w", err)
		}
	}
	if count > int64(max) {
		ttl, err := s.Client.TTL(ctx, rkey).Result()
		if err != nil || ttl < 0 {
			ttl = window
		}
		return false, ttl, nil
	}
	return true, 0, nil
}

func (s *RedisStore) AddViolation(ctx context.Context, ip string, period time.Duration, now time.Time) (int, error) {
	rkey := redisViolationPrefix + ip

	count, err := s.Client.Incr(ctx, rkey).Result()
	if err != nil {
		return 0, fmt.Errorf("violation incr: %w", err)
	}
	if count == 1 {
		if err := s.Client.Expire(ctx, rkey, period).Err(); err != nil {
			return 0, fmt.Errorf("violation expire: %w", err)
		}
	}
	return int(count), nil
}

func (s *RedisStore) Blacklist(ctx context.Context, entry models.BlacklistEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	ttl := time.Until(entry.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.Client.Set(ctx, redisBlacklistPrefix+entry.IP, data, ttl).Err()
}

func (s *RedisStore) GetBlacklist(ctx context.Context, ip string, now time.Time) (*models.BlacklistEntry, error) {
	data, err := s.Client.Get(ctx, redisBlacklistPrefix+ip).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("blacklist get: %w", err)
	}
	var entry models.BlacklistEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return nil, fmt.Errorf("blacklist decode: %w", err)
	}
	if entry.Expired(now) {
		// Redis TTL normally evicts first; a stale entry can survive a
		// clock skew between instances.
		_ = s.Client.Del(ctx, redisBlacklistPrefix+ip).Err()
		return nil, nil
	}
	return &entry, nil
}

func (s *RedisStore) ListBlacklist(ctx context.Context, now time.Time) ([]models.BlacklistEntry, error) {
	var entries []models.BlacklistEntry
	iter := s.Client.Scan(ctx, 0, redisBlacklistPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := s.Client.Get(ctx, iter.Val()).Result()
		if err != nil {
			continue
		}
		var entry models.BlacklistEntry
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			continue
		}
		if !entry.Expired(now) {
			entries = append(entries, entry)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("blacklist scan: %w", err)
	}
	return entries, nil
}

func (s *RedisStore) RemoveBlacklist(ctx context.Context, ip string) error {
	return s.Client.Del(ctx, redisBlacklistPrefix+ip).Err()
}
