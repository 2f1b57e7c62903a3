package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/ports"
)

const (
	lockKeyPrefix  = "inventory:lock:"
	defaultTTL     = 5 * time.Second
	defaultWait    = 2 * time.Second
	retryMin       = 5 * time.Millisecond
	retryMax       = 100 * time.Millisecond
	releaseTimeout = time.Second
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by another replica is never released by us.
var releaseScript = goredis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

var _ ports.Locker = (*Locker)(nil)

// Locker is a per-name mutex shared by every API replica pointing at the same
// Redis. Locks expire after the TTL so a crashed holder cannot wedge a name.
type Locker struct {
	client goredis.UniversalClient
	ttl    time.Duration
	wait   time.Duration
}

type Option func(*Locker)

// WithTTL bounds how long a lock survives without being released.
func WithTTL(ttl time.Duration) Option {
	return func(l *Locker) {
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

// WithWait bounds how long Lock retries before giving up.
func WithWait(wait time.Duration) Option {
	return func(l *Locker) {
		if wait > 0 {
			l.wait = wait
		}
	}
}

func NewLocker(client goredis.UniversalClient, opts ...Option) *Locker {
	l := &Locker{client: client, ttl: defaultTTL, wait: defaultWait}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Lock acquires the lock for key with SET NX, retrying with capped backoff
// until the wait budget or ctx runs out.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	if l == nil || l.client == nil {
		return nil, errors.New("redis locker not configured")
	}
	redisKey := lockKeyPrefix + key
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	backoff := retryMin
	for {
		ok, err := l.client.SetNX(waitCtx, redisKey, token, l.ttl).Result()
		if err != nil && waitCtx.Err() == nil {
			return nil, fmt.Errorf("acquire lock %q: %w", key, err)
		}
		if ok {
			return l.unlocker(redisKey, token), nil
		}

		timer := time.NewTimer(backoff)
		select {
		case <-waitCtx.Done():
			timer.Stop()
			return nil, fmt.Errorf("%w: %q: %w", ports.ErrLockTimeout, key, waitCtx.Err())
		case <-timer.C:
		}
		backoff *= 2
		if backoff > retryMax {
			backoff = retryMax
		}
	}
}

func (l *Locker) unlocker(redisKey, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
			defer cancel()
			// A failed release is left to the TTL.
			_ = releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err()
		})
	}
}
