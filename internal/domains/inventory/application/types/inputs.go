package types

import (
	"encoding/json"
	"strconv"
)

// Quantity carries a quantity exactly as the caller sent it, as a raw JSON
// token. The service decides whether it is an integer.
type Quantity json.RawMessage

// IntQuantity encodes an integer for callers that already hold a typed value.
func IntQuantity(n int64) Quantity {
	return Quantity(strconv.AppendInt(nil, n, 10))
}

// AddItemInput is the unvalidated payload for creating an item.
type AddItemInput struct {
	Name     string
	Quantity Quantity
}

// UpdateQuantityInput is the unvalidated payload for overwriting a quantity.
type UpdateQuantityInput struct {
	Name     string
	Quantity Quantity
}
