package sqlite

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	platformdb "github.com/Apurer/go-gin-inventory-server/internal/platform/db"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Connect opens a SQLite database file. SQLite allows one writer at a time, so
// the pool is pinned to a single connection; this also keeps an in-memory
// database alive for the lifetime of the handle.
func Connect(ctx context.Context, path string) (*gorm.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	return platformdb.Open(ctx, sqlite.Open(dsn(path)), platformdb.Pool{MaxOpenConns: 1, MaxIdleConns: 1})
}

func dsn(path string) string {
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_busy_timeout=5000"
}
