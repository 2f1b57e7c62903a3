package inventoryserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine. Middleware
// must already be registered on router; gin binds it at route registration.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes whose handler was not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// ApiHandleFunctions groups the handlers the router serves.
type ApiHandleFunctions struct {
	// Routes for the inventory part of the API
	InventoryAPI InventoryAPI
	// Routes for the plugin part of the API
	PluginAPI PluginAPI
	// Routes for the health part of the API
	HealthAPI HealthAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"AddItem",
			http.MethodPost,
			"/add-item",
			handleFunctions.InventoryAPI.AddItem,
		},
		{
			"RemoveItem",
			http.MethodDelete,
			"/remove-item",
			handleFunctions.InventoryAPI.RemoveItem,
		},
		{
			"UpdateQuantity",
			http.MethodPut,
			"/update-quantity",
			handleFunctions.InventoryAPI.UpdateQuantity,
		},
		{
			"GetItems",
			http.MethodGet,
			"/get-items",
			handleFunctions.InventoryAPI.GetItems,
		},
		{
			"GetItem",
			http.MethodGet,
			"/get-item",
			handleFunctions.InventoryAPI.GetItem,
		},
		{
			"FilePath",
			http.MethodGet,
			"/file-path",
			handleFunctions.PluginAPI.FilePath,
		},
		{
			"Transform",
			http.MethodPost,
			"/transform",
			handleFunctions.PluginAPI.Transform,
		},
		{
			"Translation",
			http.MethodPost,
			"/translation",
			handleFunctions.PluginAPI.Translation,
		},
		{
			"Rotation",
			http.MethodPost,
			"/rotation",
			handleFunctions.PluginAPI.Rotation,
		},
		{
			"Scale",
			http.MethodPost,
			"/scale",
			handleFunctions.PluginAPI.Scale,
		},
		{
			"Healthz",
			http.MethodGet,
			"/healthz",
			handleFunctions.HealthAPI.Healthz,
		},
	}
}
