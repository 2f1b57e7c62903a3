package domain

import (
	"errors"
	"unicode/utf8"
)

// MaxNameLength mirrors the width of the persisted name column.
const MaxNameLength = 255

var (
	ErrMissingName = errors.New("item name is required")
	ErrNameTooLong = errors.New("item name must be at most 255 characters")
)

// Item is a named inventory record. The name is its identity and never changes
// once the item exists; only the quantity is mutable.
type Item struct {
	Name     string
	Quantity int64
}

// NewItem validates the name and builds an item.
func NewItem(name string, quantity int64) (*Item, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return &Item{Name: name, Quantity: quantity}, nil
}

// RequireName rejects only the empty name. Lookups and mutations of existing
// items use it; a name too long to be stored simply matches nothing.
func RequireName(name string) error {
	if name == "" {
		return ErrMissingName
	}
	return nil
}

// ValidateName checks the name without normalising it. Names are compared
// byte for byte, so surrounding whitespace is significant.
func ValidateName(name string) error {
	if err := RequireName(name); err != nil {
		return err
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// Validate enforces invariants on the aggregate.
func (i *Item) Validate() error {
	return ValidateName(i.Name)
}

// SetQuantity overwrites the stock count. Negative counts are accepted.
func (i *Item) SetQuantity(quantity int64) {
	i.Quantity = quantity
}
