package application

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/application/types"
	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/domain"
	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/ports"
)

// Service validates inventory requests and delegates to the repository.
type Service struct {
	repo   ports.Repository
	locker ports.Locker
}

// Option configures optional collaborators.
type Option func(*Service)

// WithLocker serializes mutations per item name, e.g. across API replicas.
func WithLocker(locker ports.Locker) Option {
	return func(s *Service) {
		if locker != nil {
			s.locker = locker
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, locker: ports.NoopLocker}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) AddItem(ctx context.Context, input types.AddItemInput) (*domain.Item, error) {
	quantity, err := validateMutation(input.Name, input.Quantity, true)
	if err != nil {
		return nil, err
	}
	item, err := domain.NewItem(input.Name, quantity)
	if err != nil {
		return nil, mapError(err)
	}
	unlock, err := s.locker.Lock(ctx, item.Name)
	if err != nil {
		return nil, mapError(err)
	}
	defer unlock()
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

func (s *Service) RemoveItem(ctx context.Context, name string) error {
	if err := domain.RequireName(name); err != nil {
		return mapError(err)
	}
	unlock, err := s.locker.Lock(ctx, name)
	if err != nil {
		return mapError(err)
	}
	defer unlock()
	return mapError(s.repo.Delete(ctx, name))
}

func (s *Service) UpdateQuantity(ctx context.Context, input types.UpdateQuantityInput) (*domain.Item, error) {
	quantity, err := validateMutation(input.Name, input.Quantity, false)
	if err != nil {
		return nil, err
	}
	unlock, err := s.locker.Lock(ctx, input.Name)
	if err != nil {
		return nil, mapError(err)
	}
	defer unlock()
	updated, err := s.repo.SetQuantity(ctx, input.Name, quantity)
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (s *Service) GetItems(ctx context.Context) ([]*domain.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	if items == nil {
		items = []*domain.Item{}
	}
	return items, nil
}

func (s *Service) GetItem(ctx context.Context, name string) (*domain.Item, error) {
	if err := domain.RequireName(name); err != nil {
		return nil, mapError(err)
	}
	item, err := s.repo.Find(ctx, name)
	if err != nil {
		return nil, mapError(err)
	}
	return item, nil
}

// validateMutation reports missing fields before malformed ones, so a request
// lacking a name is "missing" even when its quantity is also bad. The name
// length limit applies only when a new item is stored.
func validateMutation(name string, raw types.Quantity, checkLength bool) (int64, error) {
	quantity, quantityErr := domain.ParseQuantity(raw)
	nameErr := domain.RequireName(name)
	if nameErr == nil && checkLength {
		nameErr = domain.ValidateName(name)
	}
	switch {
	case errors.Is(nameErr, domain.ErrMissingName):
		return 0, mapError(nameErr)
	case errors.Is(quantityErr, domain.ErrMissingQuantity):
		return 0, mapError(quantityErr)
	case nameErr != nil:
		return 0, mapError(nameErr)
	case quantityErr != nil:
		return 0, mapError(quantityErr)
	}
	return quantity, nil
}

var _ ports.Service = (*Service)(nil)
