package relational

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/domain"
	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists items through GORM. It is dialect agnostic and runs on
// SQLite, PostgreSQL and MySQL. Name uniqueness is enforced by the unique
// index created in platform/migrations. Caller manages DB lifecycle.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// itemRecord maps the item aggregate to the inventory table.
type itemRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null;uniqueIndex:idx_inventory_name"`
	Quantity  int64     `gorm:"column:quantity;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (itemRecord) TableName() string { return "inventory" }

// List returns every item in insertion order.
func (r *Repository) List(ctx context.Context) ([]*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []itemRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, storageError(err)
	}
	items := make([]*domain.Item, 0, len(records))
	for i := range records {
		items = append(items, records[i].toDomain())
	}
	return items, nil
}

// Find fetches an item by exact name.
func (r *Repository) Find(ctx context.Context, name string) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record itemRecord
	if err := r.db.WithContext(ctx).First(&record, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, storageError(err)
	}
	return record.toDomain(), nil
}

// Create inserts the item. The insert carries ON CONFLICT DO NOTHING so the
// existence check and the write are one statement; the loser of a race sees
// zero affected rows.
func (r *Repository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("item is nil")
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(item)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrAlreadyExists
		}
		return nil, storageError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrAlreadyExists
	}
	return record.toDomain(), nil
}

// Delete removes an item by name.
func (r *Repository) Delete(ctx context.Context, name string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("name = ?", name).Delete(&itemRecord{})
	if result.Error != nil {
		return storageError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// SetQuantity overwrites the quantity of an existing item. MySQL reports only
// changed rows as affected, so a zero count is confirmed with a lookup before
// it is treated as a missing item.
func (r *Repository) SetQuantity(ctx context.Context, name string, quantity int64) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&itemRecord{}).Where("name = ?", name).Update("quantity", quantity)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}
		var count int64
		if err := tx.Model(&itemRecord{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ports.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, err
		}
		return nil, storageError(err)
	}
	return &domain.Item{Name: name, Quantity: quantity}, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return fmt.Errorf("%w: relational item repository not configured", ports.ErrStorage)
	}
	return nil
}

func storageError(err error) error {
	return fmt.Errorf("%w: %w", ports.ErrStorage, err)
}

func toRecord(item *domain.Item) itemRecord {
	return itemRecord{
		Name:     item.Name,
		Quantity: item.Quantity,
	}
}

func (r itemRecord) toDomain() *domain.Item {
	return &domain.Item{
		Name:     r.Name,
		Quantity: r.Quantity,
	}
}
