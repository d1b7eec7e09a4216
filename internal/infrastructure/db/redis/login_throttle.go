package redis

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/rasulmamishov/portfolio-api/internal/core/domain"
)

const (
	defaultMaxAttempts = 5
	defaultLockout     = 15 * time.Minute
)

// LoginThrottle counts failed logins per identifier and per client IP.
// Key format: login:fail:id:<identifier> and login:fail:ip:<ip>
// Each failure refreshes the key's TTL, so the lockout window slides.
// Redis errors never block a login.
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int64
	lockout     time.Duration
	log         zerolog.Logger
}

// NewLoginThrottle wraps the given Redis client. Non-positive limits fall
// back to 5 attempts per 15 minutes.
func NewLoginThrottle(client *redis.Client, maxAttempts int, lockout time.Duration, log zerolog.Logger) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if lockout <= 0 {
		lockout = defaultLockout
	}
	return &LoginThrottle{client: client, maxAttempts: int64(maxAttempts), lockout: lockout, log: log}
}

// Allow returns domain.ErrTooManyAttempts once either counter reaches the limit.
func (t *LoginThrottle) Allow(ctx context.Context, identifier, ip string) error {
	keys := t.keys(identifier, ip)
	vals, err := t.client.MGet(ctx, keys...).Result()
	if err != nil {
		t.log.Warn().Err(err).Msg("login throttle unavailable, allowing attempt")
		return nil
	}

	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n >= t.maxAttempts {
			return domain.ErrTooManyAttempts
		}
	}
	return nil
}

// RecordFailure increments both counters.
func (t *LoginThrottle) RecordFailure(ctx context.Context, identifier, ip string) {
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, k := range t.keys(identifier, ip) {
			pipe.Incr(ctx, k)
			pipe.Expire(ctx, k, t.lockout)
		}
		return nil
	})
	if err != nil {
		t.log.Warn().Err(err).Str("identifier", identifier).Msg("login throttle: record failure")
	}
}

// Reset clears the identifier counter after a successful login. The IP
// counter is left alone since it spans accounts.
func (t *LoginThrottle) Reset(ctx context.Context, identifier string) {
	if err := t.client.Del(ctx, identifierKey(identifier)).Err(); err != nil {
		t.log.Warn().Err(err).Str("identifier", identifier).Msg("login throttle: reset")
	}
}

func (t *LoginThrottle) keys(identifier, ip string) []string {
	keys := []string{identifierKey(identifier)}
	if ip != "" {
		keys = append(keys, "login:fail:ip:"+ip)
	}
	return keys
}

func identifierKey(identifier string) string {
	return "login:fail:id:" + strings.ToLower(strings.TrimSpace(identifier))
}
