package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/domain"
	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/ports"
)

func TestRepository_CreateFindList(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	created, err := repo.Create(ctx, &domain.Item{Name: "Widget", Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, "Widget", created.Name)

	created.Quantity = 999
	found, err := repo.Find(ctx, "Widget")
	require.NoError(t, err)
	assert.Equal(t, int64(10), found.Quantity, "returned items must not alias stored state")

	_, err = repo.Find(ctx, "widget")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	_, err = repo.Create(ctx, &domain.Item{Name: "Widget", Quantity: 1})
	assert.ErrorIs(t, err, ports.ErrAlreadyExists)

	_, err = repo.Create(ctx, &domain.Item{Name: "", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrMissingName)
}

func TestRepository_SetQuantityAndDelete(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	_, err := repo.SetQuantity(ctx, "Widget", 5)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "Widget"), ports.ErrNotFound)

	_, err = repo.Create(ctx, &domain.Item{Name: "Widget", Quantity: 10})
	require.NoError(t, err)

	updated, err := repo.SetQuantity(ctx, "Widget", 25)
	require.NoError(t, err)
	assert.Equal(t, &domain.Item{Name: "Widget", Quantity: 25}, updated)

	require.NoError(t, repo.Delete(ctx, "Widget"))
	_, err = repo.Find(ctx, "Widget")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ConcurrentCreateSingleWinner(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	const workers = 64
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, &domain.Item{Name: "Widget", Quantity: int64(i)})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if errors.Is(err, ports.ErrAlreadyExists) {
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRepository_ConcurrentDistinctNames(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, &domain.Item{Name: fmt.Sprintf("item-%d", i), Quantity: int64(i)})
			assert.NoError(t, err)
			_, err = repo.List(ctx)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 50)
}

func TestKeyedLocker_SerializesSameKey(t *testing.T) {
	locker := NewKeyedLocker(0)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "Widget")
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		second, err := locker.Lock(ctx, "Widget")
		if err == nil {
			close(acquired)
			second()
		}
	}()

	select {
	case <-acquired:
		t.Fatal("second holder acquired a held key")
	case <-time.After(50 * time.Millisecond):
	}

	other, err := locker.Lock(ctx, "Gadget")
	require.NoError(t, err)
	other()

	unlock()
	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("waiter never acquired the released key")
	}
	require.Eventually(t, func() bool { return heldKeys(locker) == 0 }, time.Second, 5*time.Millisecond)
}

func TestRepository_ListSortedByName(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	for _, name := range []string{"gamma", "Alpha", "beta"} {
		_, err := repo.Create(ctx, &domain.Item{Name: name, Quantity: 1})
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(list))
	for _, item := range list {
		names = append(names, item.Name)
	}
	assert.Equal(t, []string{"Alpha", "beta", "gamma"}, names)
}

func TestKeyedLocker_HonoursContext(t *testing.T) {
	locker := NewKeyedLocker(0)
	unlock, err := locker.Lock(context.Background(), "Widget")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "Widget")
	require.ErrorIs(t, err, ports.ErrLockTimeout)
	assert.Equal(t, 1, heldKeys(locker))
}

func TestKeyedLocker_BoundsWait(t *testing.T) {
	locker := NewKeyedLocker(20 * time.Millisecond)
	unlock, err := locker.Lock(context.Background(), "Widget")
	require.NoError(t, err)
	defer unlock()

	start := time.Now()
	_, err = locker.Lock(context.Background(), "Widget")
	require.ErrorIs(t, err, ports.ErrLockTimeout)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 1, heldKeys(locker))
}

func heldKeys(l *KeyedLocker) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
