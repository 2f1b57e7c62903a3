package mapper

import (
	"encoding/json"

	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/application/types"
	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/domain"
)

// ItemPayload captures add and update bodies. Fields stay raw so presence and
// JSON type can be checked by the service instead of being coerced here.
type ItemPayload struct {
	Name     json.RawMessage `json:"name"`
	Quantity json.RawMessage `json:"quantity"`
}

// NamePayload captures bodies that only identify an item.
type NamePayload struct {
	Name json.RawMessage `json:"name"`
}

// Item is the HTTP representation of an inventory item.
type Item struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// ItemName is returned when only the identity is echoed back.
type ItemName struct {
	Name string `json:"name"`
}

// DecodeName extracts a JSON string. Anything else, including a number or
// null, yields "" and is reported as a missing name.
func DecodeName(raw json.RawMessage) string {
	var name string
	if len(raw) == 0 || json.Unmarshal(raw, &name) != nil {
		return ""
	}
	return name
}

func ToAddItemInput(p ItemPayload) types.AddItemInput {
	return types.AddItemInput{
		Name:     DecodeName(p.Name),
		Quantity: types.Quantity(p.Quantity),
	}
}

func ToUpdateQuantityInput(p ItemPayload) types.UpdateQuantityInput {
	return types.UpdateQuantityInput{
		Name:     DecodeName(p.Name),
		Quantity: types.Quantity(p.Quantity),
	}
}

func FromDomainItem(item *domain.Item) Item {
	if item == nil {
		return Item{}
	}
	return Item{Name: item.Name, Quantity: item.Quantity}
}

// FromDomainList never returns nil so an empty inventory encodes as [].
func FromDomainList(items []*domain.Item) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, FromDomainItem(item))
	}
	return out
}
