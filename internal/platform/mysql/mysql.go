package mysql

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	platformdb "github.com/Apurer/go-gin-inventory-server/internal/platform/db"
)

// Connect opens a MySQL connection via GORM and verifies connectivity.
// parseTime is forced on so timestamps scan into time.Time.
func Connect(ctx context.Context, dsn string, pool platformdb.Pool) (*gorm.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("mysql DSN is empty")
	}
	if !strings.Contains(dsn, "parseTime=") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "parseTime=true"
	}
	return platformdb.Open(ctx, mysql.Open(dsn), pool)
}
