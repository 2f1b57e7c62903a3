package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the inventory schema. It is idempotent and is called once at
// start-up (or by cmd/migrate) before repositories are handed out.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(&itemRecord{}); err != nil {
		return err
	}
	if db.Dialector.Name() == "mysql" {
		// MySQL collations compare case-insensitively by default; item names
		// are case-sensitive.
		return db.Exec("ALTER TABLE inventory MODIFY name VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL").Error
	}
	return nil
}

// Item schema mirrors the relational inventory adapter.
type itemRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null;uniqueIndex:idx_inventory_name"`
	Quantity  int64     `gorm:"column:quantity;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (itemRecord) TableName() string { return "inventory" }
