package inventoryserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	inventorymapper "github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/adapters/http/mapper"
	inventoryports "github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/ports"
	apierrors "github.com/Apurer/go-gin-inventory-server/internal/shared/errors"
)

// InventoryAPI wires HTTP transport with the inventory service.
type InventoryAPI struct {
	service inventoryports.Service
	errors  errorResponders
}

// NewInventoryAPI creates an InventoryAPI backed by the provided service.
// Server-side failures are logged through responder when it is not nil.
func NewInventoryAPI(service inventoryports.Service, responder *apierrors.Responder) InventoryAPI {
	return InventoryAPI{service: service, errors: newErrorResponders(responder)}
}

// Post /add-item
// Add a new item to the inventory
func (api *InventoryAPI) AddItem(c *gin.Context) {
	var payload inventorymapper.ItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidJSON(c, err)
		return
	}
	item, err := api.service.AddItem(c.Request.Context(), inventorymapper.ToAddItemInput(payload))
	if err != nil {
		api.errors.addItem.RespondError(c, err)
		return
	}
	apierrors.RespondData(c, http.StatusCreated, "Item added successfully", inventorymapper.FromDomainItem(item))
}

// Delete /remove-item
// Remove an item by name
func (api *InventoryAPI) RemoveItem(c *gin.Context) {
	var payload inventorymapper.NamePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidJSON(c, err)
		return
	}
	name := inventorymapper.DecodeName(payload.Name)
	if err := api.service.RemoveItem(c.Request.Context(), name); err != nil {
		api.errors.removeItem.RespondError(c, err)
		return
	}
	apierrors.RespondData(c, http.StatusOK, "Item removed successfully", inventorymapper.ItemName{Name: name})
}

// Put /update-quantity
// Overwrite the quantity of an existing item
func (api *InventoryAPI) UpdateQuantity(c *gin.Context) {
	var payload inventorymapper.ItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidJSON(c, err)
		return
	}
	item, err := api.service.UpdateQuantity(c.Request.Context(), inventorymapper.ToUpdateQuantityInput(payload))
	if err != nil {
		api.errors.updateQuantity.RespondError(c, err)
		return
	}
	apierrors.RespondData(c, http.StatusOK, "Quantity updated successfully", inventorymapper.FromDomainItem(item))
}

// Get /get-items
// List every item
func (api *InventoryAPI) GetItems(c *gin.Context) {
	items, err := api.service.GetItems(c.Request.Context())
	if err != nil {
		api.errors.getItems.RespondError(c, err)
		return
	}
	apierrors.RespondData(c, http.StatusOK, "Items retrieved successfully", inventorymapper.FromDomainList(items))
}

// Get /get-item?name=
// Find a single item by name
func (api *InventoryAPI) GetItem(c *gin.Context) {
	item, err := api.service.GetItem(c.Request.Context(), c.Query("name"))
	if err != nil {
		api.errors.getItem.RespondError(c, err)
		return
	}
	apierrors.RespondData(c, http.StatusOK, "Item retrieved successfully", inventorymapper.FromDomainItem(item))
}
