package lockout

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	defaultMaxStrikes = 10
	defaultWindow     = 15 * time.Minute
)

// Tracker counts failed logins per (email, ip) in Redis and short-circuits
// further attempts once the threshold is reached. A nil Tracker is inert,
// which is how deployments without Redis run.
type Tracker struct {
	rdb        *redis.Client
	maxStrikes int64
	window     time.Duration
}

func New(rdb *redis.Client) *Tracker {
	return &Tracker{rdb: rdb, maxStrikes: defaultMaxStrikes, window: defaultWindow}
}

func key(email, ip string) string {
	return fmt.Sprintf("login:strikes:%s:%s", email, ip)
}

// Locked reports whether this (email, ip) pair has exhausted its attempts.
func (t *Tracker) Locked(ctx context.Context, email, ip string) bool {
	if t == nil || t.rdb == nil {
		return false
	}
	strikes, err := t.rdb.Get(ctx, key(email, ip)).Int64()
	if err != nil {
		return false
	}
	return strikes >= t.maxStrikes
}

// RecordFailure adds a strike. The first strike in a window starts the
// expiry clock.
func (t *Tracker) RecordFailure(ctx context.Context, email, ip string) {
	if t == nil || t.rdb == nil {
		return
	}
	k := key(email, ip)
	strikes, err := t.rdb.Incr(ctx, k).Result()
	if err != nil {
		log.Warn().Err(err).Msg("failed to record login strike")
		return
	}
	if strikes == 1 {
		t.rdb.Expire(ctx, k, t.window)
	}
	if strikes == t.maxStrikes {
		log.Warn().Str("email", email).Str("ip", ip).Int64("strikes", strikes).Msg("login locked out")
	}
}

// Reset clears the strikes after a successful login.
func (t *Tracker) Reset(ctx context.Context, email, ip string) {
	if t == nil || t.rdb == nil {
		return
	}
	t.rdb.Del(ctx, key(email, ip))
}
