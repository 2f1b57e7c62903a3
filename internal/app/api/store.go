package api

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	inventorymemory "github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/adapters/memory"
	inventoryrelational "github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/adapters/persistence/relational"
	inventoryredis "github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/adapters/redis"
	inventoryports "github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/ports"
	platformdb "github.com/Apurer/go-gin-inventory-server/internal/platform/db"
	"github.com/Apurer/go-gin-inventory-server/internal/platform/migrations"
	platformmysql "github.com/Apurer/go-gin-inventory-server/internal/platform/mysql"
	platformpostgres "github.com/Apurer/go-gin-inventory-server/internal/platform/postgres"
	platformredis "github.com/Apurer/go-gin-inventory-server/internal/platform/redis"
	platformsqlite "github.com/Apurer/go-gin-inventory-server/internal/platform/sqlite"
)

// store is the repository chosen by STORE_DRIVER plus its lifecycle hooks.
type store struct {
	repo  inventoryports.Repository
	ping  func(ctx context.Context) error
	close func() error
}

// openDB connects to the SQL store named by cfg. It returns nil for memory.
func openDB(ctx context.Context, cfg StoreConfig) (*gorm.DB, error) {
	pool := platformdb.Pool{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
	switch cfg.Driver {
	case DriverMemory:
		return nil, nil
	case DriverSQLite:
		return platformsqlite.Connect(ctx, cfg.SQLitePath)
	case DriverPostgres:
		return platformpostgres.Connect(ctx, cfg.PostgresDSN, pool)
	case DriverMySQL:
		return platformmysql.Connect(ctx, cfg.MySQLDSN, pool)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

// openStore builds the repository and applies migrations so the inventory
// table exists before the first request.
func openStore(ctx context.Context, cfg StoreConfig, logger *slog.Logger) (*store, error) {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect %s store: %w", cfg.Driver, err)
	}
	if db == nil {
		logger.Warn("inventory repository is in memory, data is lost on restart")
		return &store{
			repo:  inventorymemory.NewRepository(),
			close: func() error { return nil },
		}, nil
	}
	if err := migrations.Run(db); err != nil {
		_ = platformdb.Close(db)
		return nil, fmt.Errorf("migrate %s store: %w", cfg.Driver, err)
	}
	logger.Info("inventory repository configured", slog.String("driver", cfg.Driver))
	return &store{
		repo: inventoryrelational.NewRepository(db),
		ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		close: func() error { return platformdb.Close(db) },
	}, nil
}

// openLocker returns the Redis lock when REDIS_ADDR is set and an in-process
// lock otherwise.
func openLocker(ctx context.Context, cfg LockConfig, logger *slog.Logger) (inventoryports.Locker, func() error, error) {
	if cfg.RedisAddr == "" {
		return inventorymemory.NewKeyedLocker(cfg.Wait), func() error { return nil }, nil
	}
	client, err := platformredis.Connect(ctx, platformredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	logger.Info("item locks shared through redis", slog.String("addr", cfg.RedisAddr))
	locker := inventoryredis.NewLocker(client,
		inventoryredis.WithTTL(cfg.TTL),
		inventoryredis.WithWait(cfg.Wait),
	)
	return locker, client.Close, nil
}

// Migrate applies the schema to the configured SQL store and exits.
func Migrate(ctx context.Context, cfg Config, logger *slog.Logger) error {
	if cfg.Store.Driver == DriverMemory {
		logger.Info("memory store needs no migration")
		return nil
	}
	db, err := openDB(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("connect %s store: %w", cfg.Store.Driver, err)
	}
	defer func() { _ = platformdb.Close(db) }()
	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("migrate %s store: %w", cfg.Store.Driver, err)
	}
	logger.Info("inventory schema migrated", slog.String("driver", cfg.Store.Driver))
	return nil
}
