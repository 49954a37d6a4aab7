package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired is returned when the lock is already held by another pass.
var ErrNotAcquired = errors.New("lock already held")

// releaseScript deletes the lock key only if it still holds our token, so an
// expired lease can never release a lock re-acquired by someone else.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// Lock is a Redis-backed advisory lock with a TTL lease.
type Lock struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

// Lease represents a held lock. Release must be called when done; the TTL
// bounds the damage of a crashed holder.
type Lease struct {
	lock  *Lock
	token string
}

// New creates an advisory lock on the given key.
func New(rdb *redis.Client, key string, ttl time.Duration) *Lock {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Lock{rdb: rdb, key: key, ttl: ttl}
}

// Acquire attempts to take the lock without blocking.
// Returns ErrNotAcquired when another holder owns it.
func (l *Lock) Acquire(ctx context.Context) (*Lease, error) {
	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %q: %w", l.key, err)
	}
	if !ok {
		return nil, ErrNotAcquired
	}
	return &Lease{lock: l, token: token}, nil
}

// Release frees the lock if this lease still owns it.
func (le *Lease) Release(ctx context.Context) error {
	err := le.lock.rdb.Eval(ctx, releaseScript, []string{le.lock.key}, le.token).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to release lock %q: %w", le.lock.key, err)
	}
	return nil
}
