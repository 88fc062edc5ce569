package storeserver

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

// ApiHandleFunctions groups the handlers of every API surface.
type ApiHandleFunctions struct {
	// Routes for the StoreAPI part of the API
	StoreAPI StoreAPI
	// Routes for the ItemAPI part of the API
	ItemAPI ItemAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine. Middleware must be attached before calling it.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes whose handler is not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Index reports liveness.
func Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "API is running"})
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"Index", http.MethodGet, "/", Index},
		{"CreateStore", http.MethodPost, "/store", handleFunctions.StoreAPI.CreateStore},
		{"ListStores", http.MethodGet, "/store", handleFunctions.StoreAPI.ListStores},
		{"GetStore", http.MethodGet, "/store/:storeId", handleFunctions.StoreAPI.GetStore},
		{"DeleteStore", http.MethodDelete, "/store/:storeId", handleFunctions.StoreAPI.DeleteStore},
		{"CreateItem", http.MethodPost, "/item", handleFunctions.ItemAPI.CreateItem},
		{"ListItems", http.MethodGet, "/item", handleFunctions.ItemAPI.ListItems},
		{"GetItem", http.MethodGet, "/item/:itemId", handleFunctions.ItemAPI.GetItem},
		{"UpdateItem", http.MethodPut, "/item/:itemId", handleFunctions.ItemAPI.UpdateItem},
		{"DeleteItem", http.MethodDelete, "/item/:itemId", handleFunctions.ItemAPI.DeleteItem},
	}
}
