package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/ports"
)

var _ ports.Locker = (*KeyedLocker)(nil)

const defaultLockWait = 2 * time.Second

// KeyedLocker hands out one in-process lock per key. Entries are dropped once
// no goroutine holds or waits for them.
type KeyedLocker struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
	wait  time.Duration
}

type keyedLock struct {
	ch   chan struct{}
	refs int
}

// NewKeyedLocker bounds each acquisition by wait; a non-positive wait falls
// back to two seconds.
func NewKeyedLocker(wait time.Duration) *KeyedLocker {
	if wait <= 0 {
		wait = defaultLockWait
	}
	return &KeyedLocker{locks: map[string]*keyedLock{}, wait: wait}
}

func (l *KeyedLocker) Lock(ctx context.Context, key string) (func(), error) {
	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &keyedLock{ch: make(chan struct{}, 1)}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	select {
	case entry.ch <- struct{}{}:
	case <-waitCtx.Done():
		l.release(key, entry)
		return nil, fmt.Errorf("%w: %q: %w", ports.ErrLockTimeout, key, waitCtx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.ch
			l.release(key, entry)
		})
	}, nil
}

func (l *KeyedLocker) release(key string, entry *keyedLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, key)
	}
}
