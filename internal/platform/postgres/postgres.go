package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	platformdb "github.com/Apurer/go-gin-inventory-server/internal/platform/db"
)

// Connect opens a PostgreSQL connection via GORM and verifies connectivity.
func Connect(ctx context.Context, dsn string, pool platformdb.Pool) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	return platformdb.Open(ctx, postgres.Open(dsn), pool)
}
