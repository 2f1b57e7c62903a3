package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/domain"
)

var (
	ErrNotFound      = errors.New("item not found")
	ErrAlreadyExists = errors.New("item already exists")
	// ErrStorage wraps failures of the underlying store.
	ErrStorage = errors.New("inventory storage failure")
)

// Repository persists inventory items keyed by name.
//
// Create must be atomic with respect to other mutations on the same name: of
// two racing creates, exactly one succeeds and the other gets ErrAlreadyExists.
// Every mutation is committed before it returns.
type Repository interface {
	List(ctx context.Context) ([]*domain.Item, error)
	Find(ctx context.Context, name string) (*domain.Item, error)
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Delete(ctx context.Context, name string) error
	SetQuantity(ctx context.Context, name string, quantity int64) (*domain.Item, error)
}
