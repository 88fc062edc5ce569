package storeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpmapper "github.com/Apurer/go-gin-store-api/internal/domains/catalog/adapters/http/mapper"
	catalogtypes "github.com/Apurer/go-gin-store-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/ports"
)

// StoreAPI wires HTTP transport with the store use cases.
type StoreAPI struct {
	service ports.StoreService
}

// NewStoreAPI creates a StoreAPI backed by the provided service.
func NewStoreAPI(service ports.StoreService) StoreAPI {
	return StoreAPI{service: service}
}

// Post /store
// Create a store
func (api *StoreAPI) CreateStore(c *gin.Context) {
	var payload httpmapper.CreateStoreRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	store, err := api.service.CreateStore(c.Request.Context(), httpmapper.ToCreateStoreInput(payload))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpmapper.FromDomainStore(store))
}

// Get /store
// List stores
func (api *StoreAPI) ListStores(c *gin.Context) {
	stores, err := api.service.ListStores(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpmapper.FromDomainStoreList(stores))
}

// Get /store/:storeId
// Find a store with its items
func (api *StoreAPI) GetStore(c *gin.Context) {
	store, err := api.service.GetStore(c.Request.Context(), catalogtypes.StoreIdentifier{ID: c.Param("storeId")})
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpmapper.FromDomainStoreDetail(store))
}

// Delete /store/:storeId
// Delete a store and every item it owns
func (api *StoreAPI) DeleteStore(c *gin.Context) {
	if err := api.service.DeleteStore(c.Request.Context(), catalogtypes.StoreIdentifier{ID: c.Param("storeId")}); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpmapper.Message{Message: "Store deleted"})
}
