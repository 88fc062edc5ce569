package mapper

import (
	catalogtypes "github.com/Apurer/go-gin-store-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
)

// CreateItemRequest is the POST /item body.
type CreateItemRequest struct {
	Name    *string  `json:"name"`
	Price   *float64 `json:"price"`
	StoreID *string  `json:"store_id"`
}

// UpdateItemRequest is the PUT /item/{id} body. A supplied store_id is accepted and ignored.
type UpdateItemRequest struct {
	Name    *string  `json:"name"`
	Price   *float64 `json:"price"`
	StoreID *string  `json:"store_id"`
}

// Item is the transport shape of an item.
type Item struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	StoreID string  `json:"store_id"`
}

// ItemList wraps the item collection.
type ItemList struct {
	Items []Item `json:"items"`
}

// ToCreateItemInput converts the transport payload plus the Idempotency-Key header value.
func ToCreateItemInput(req CreateItemRequest, idempotencyKey string) catalogtypes.CreateItemInput {
	return catalogtypes.CreateItemInput{
		Name:           req.Name,
		Price:          req.Price,
		StoreID:        req.StoreID,
		IdempotencyKey: idempotencyKey,
	}
}

// ToUpdateItemInput converts the transport payload, dropping store_id.
func ToUpdateItemInput(id string, req UpdateItemRequest) catalogtypes.UpdateItemInput {
	return catalogtypes.UpdateItemInput{ID: id, Name: req.Name, Price: req.Price}
}

// FromDomainItem converts an item to the transport representation.
func FromDomainItem(item *domain.Item) Item {
	if item == nil {
		return Item{}
	}
	return Item{ID: item.ID, Name: item.Name, Price: item.Price, StoreID: item.StoreID}
}

// FromDomainItemList converts a collection of items.
func FromDomainItemList(items []*domain.Item) ItemList {
	list := ItemList{Items: make([]Item, 0, len(items))}
	for _, item := range items {
		if item == nil {
			continue
		}
		list.Items = append(list.Items, FromDomainItem(item))
	}
	return list
}
