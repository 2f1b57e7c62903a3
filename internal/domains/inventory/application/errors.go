package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/domain"
	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid item input")
)

// mapError tags every failure with exactly one taxonomy sentinel: invalid
// input, not found, already exists or storage.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingName) ||
		errors.Is(err, domain.ErrNameTooLong) ||
		errors.Is(err, domain.ErrMissingQuantity) ||
		errors.Is(err, domain.ErrQuantityNotInteger) ||
		errors.Is(err, domain.ErrQuantityOutOfRange) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrNotFound) ||
		errors.Is(err, ports.ErrAlreadyExists) ||
		errors.Is(err, ports.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", ports.ErrStorage, err)
}
