package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/domain"
	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory item store. A single write lock makes every
// check-then-write sequence atomic.
type Repository struct {
	mu    sync.RWMutex
	items map[string]*domain.Item
}

func NewRepository() *Repository {
	return &Repository{items: map[string]*domain.Item{}}
}

func (r *Repository) List(_ context.Context) ([]*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Item, 0, len(r.items))
	for _, item := range r.items {
		clone := *item
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *Repository) Find(_ context.Context, name string) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[name]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *Repository) Create(_ context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, errors.New("item is nil")
	}
	clone := *item
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[clone.Name]; exists {
		return nil, ports.ErrAlreadyExists
	}
	r.items[clone.Name] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) Delete(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[name]; !ok {
		return ports.ErrNotFound
	}
	delete(r.items, name)
	return nil
}

func (r *Repository) SetQuantity(_ context.Context, name string, quantity int64) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[name]
	if !ok {
		return nil, ports.ErrNotFound
	}
	item.SetQuantity(quantity)
	clone := *item
	return &clone, nil
}
