package ports

import (
	"context"

	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/application/types"
	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/domain"
)

// Service exposes inventory use cases to adapters.
type Service interface {
	AddItem(ctx context.Context, input types.AddItemInput) (*domain.Item, error)
	RemoveItem(ctx context.Context, name string) error
	UpdateQuantity(ctx context.Context, input types.UpdateQuantityInput) (*domain.Item, error)
	GetItems(ctx context.Context) ([]*domain.Item, error)
	GetItem(ctx context.Context, name string) (*domain.Item, error)
}
