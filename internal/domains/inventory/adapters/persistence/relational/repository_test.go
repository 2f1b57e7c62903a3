package relational

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/domain"
	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/ports"
	platformdb "github.com/Apurer/go-gin-inventory-server/internal/platform/db"
	"github.com/Apurer/go-gin-inventory-server/internal/platform/migrations"
	platformsqlite "github.com/Apurer/go-gin-inventory-server/internal/platform/sqlite"
)

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := platformsqlite.Connect(context.Background(), platformsqlite.MemoryPath)
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))
	t.Cleanup(func() { _ = platformdb.Close(db) })
	return db
}

func TestRepository_CreateAndFind(t *testing.T) {
	repo := NewRepository(setupSQLite(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Item{Name: "Widget", Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, &domain.Item{Name: "Widget", Quantity: 10}, created)

	found, err := repo.Find(ctx, "Widget")
	require.NoError(t, err)
	assert.Equal(t, int64(10), found.Quantity)

	_, err = repo.Find(ctx, "widget")
	assert.ErrorIs(t, err, ports.ErrNotFound, "names are case-sensitive")

	_, err = repo.Create(ctx, &domain.Item{Name: "Widget", Quantity: 3})
	assert.ErrorIs(t, err, ports.ErrAlreadyExists)

	_, err = repo.Create(ctx, &domain.Item{Name: "widget", Quantity: 3})
	assert.NoError(t, err)
}

func TestRepository_List(t *testing.T) {
	repo := NewRepository(setupSQLite(t))
	ctx := context.Background()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	for _, item := range []*domain.Item{{Name: "A", Quantity: 1}, {Name: "B", Quantity: 2}} {
		_, err := repo.Create(ctx, item)
		require.NoError(t, err)
	}
	require.NoError(t, repo.Delete(ctx, "A"))

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.Item{Name: "B", Quantity: 2}, *list[0])
}

func TestRepository_SetQuantity(t *testing.T) {
	repo := NewRepository(setupSQLite(t))
	ctx := context.Background()

	_, err := repo.SetQuantity(ctx, "Widget", 1)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	_, err = repo.Create(ctx, &domain.Item{Name: "Widget", Quantity: 10})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		updated, err := repo.SetQuantity(ctx, "Widget", 25)
		require.NoError(t, err)
		assert.Equal(t, &domain.Item{Name: "Widget", Quantity: 25}, updated)
	}

	found, err := repo.Find(ctx, "Widget")
	require.NoError(t, err)
	assert.Equal(t, int64(25), found.Quantity)
}

func TestRepository_Delete(t *testing.T) {
	repo := NewRepository(setupSQLite(t))
	ctx := context.Background()

	assert.ErrorIs(t, repo.Delete(ctx, "Ghost"), ports.ErrNotFound)

	_, err := repo.Create(ctx, &domain.Item{Name: "Widget", Quantity: 10})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, "Widget"))
	assert.ErrorIs(t, repo.Delete(ctx, "Widget"), ports.ErrNotFound)
}

func TestRepository_ConcurrentCreateSingleWinner(t *testing.T) {
	repo := NewRepository(setupSQLite(t))
	ctx := context.Background()

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
		others    []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, &domain.Item{Name: "Widget", Quantity: int64(i)})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ports.ErrAlreadyExists):
				conflicts++
			default:
				others = append(others, err)
			}
		}(i)
	}
	wg.Wait()

	require.Empty(t, others)
	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
}

func TestRepository_StorageErrorsAreTagged(t *testing.T) {
	db := setupSQLite(t)
	repo := NewRepository(db)
	require.NoError(t, db.Migrator().DropTable("inventory"))

	_, err := repo.List(context.Background())
	require.ErrorIs(t, err, ports.ErrStorage)

	var nilRepo *Repository
	_, err = nilRepo.List(context.Background())
	require.ErrorIs(t, err, ports.ErrStorage)
}
