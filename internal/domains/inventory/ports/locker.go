package ports

import (
	"context"
	"errors"
)

// ErrLockTimeout is returned when a lock could not be acquired before the
// caller's wait budget ran out.
var ErrLockTimeout = errors.New("timed out acquiring item lock")

// Locker serializes mutations that target the same item name.
type Locker interface {
	// Lock blocks until the key is held or ctx is done. The returned function
	// releases the lock and is safe to call once.
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// NoopLocker is the default when the repository already provides atomicity.
var NoopLocker Locker = noopLocker{}

type noopLocker struct{}

func (noopLocker) Lock(_ context.Context, _ string) (func(), error) { return func() {}, nil }
