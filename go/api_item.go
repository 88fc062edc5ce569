package storeserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	httpmapper "github.com/Apurer/go-gin-store-api/internal/domains/catalog/adapters/http/mapper"
	catalogtypes "github.com/Apurer/go-gin-store-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/ports"
)

// IdempotencyKeyHeader lets clients retry POST /item safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// ItemAPI wires HTTP transport with the item use cases and workflows.
type ItemAPI struct {
	service   ports.ItemService
	workflows ports.ItemWorkflows
}

// NewItemAPI creates an ItemAPI. workflows may be nil, in which case creation calls the service directly.
func NewItemAPI(service ports.ItemService, workflows ports.ItemWorkflows) ItemAPI {
	return ItemAPI{service: service, workflows: workflows}
}

// Post /item
// Create an item under an existing store
func (api *ItemAPI) CreateItem(c *gin.Context) {
	var payload httpmapper.CreateItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	input := httpmapper.ToCreateItemInput(payload, c.GetHeader(IdempotencyKeyHeader))
	item, err := api.createItem(c.Request.Context(), input)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpmapper.FromDomainItem(item))
}

func (api *ItemAPI) createItem(ctx context.Context, input catalogtypes.CreateItemInput) (*domain.Item, error) {
	if api.workflows != nil {
		return api.workflows.CreateItem(ctx, input)
	}
	return api.service.CreateItem(ctx, input)
}

// Get /item
// List items
func (api *ItemAPI) ListItems(c *gin.Context) {
	items, err := api.service.ListItems(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpmapper.FromDomainItemList(items))
}

// Get /item/:itemId
// Find an item by id
func (api *ItemAPI) GetItem(c *gin.Context) {
	item, err := api.service.GetItem(c.Request.Context(), catalogtypes.ItemIdentifier{ID: c.Param("itemId")})
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpmapper.FromDomainItem(item))
}

// Put /item/:itemId
// Update name and/or price of an item
func (api *ItemAPI) UpdateItem(c *gin.Context) {
	var payload httpmapper.UpdateItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	item, err := api.service.UpdateItem(c.Request.Context(), httpmapper.ToUpdateItemInput(c.Param("itemId"), payload))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpmapper.FromDomainItem(item))
}

// Delete /item/:itemId
// Delete an item
func (api *ItemAPI) DeleteItem(c *gin.Context) {
	if err := api.service.DeleteItem(c.Request.Context(), catalogtypes.ItemIdentifier{ID: c.Param("itemId")}); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpmapper.Message{Message: "Item deleted"})
}
