package mapper

import (
	catalogtypes "github.com/Apurer/go-gin-store-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
)

// CreateStoreRequest is the POST /store body. Name stays a pointer so absence can be told from blank.
type CreateStoreRequest struct {
	Name *string `json:"name"`
}

// Store is the summary shape returned by create and list.
type Store struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StoreItem is an item as inlined in a store detail.
type StoreItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// StoreDetail is the GET /store/{id} shape.
type StoreDetail struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Items []StoreItem `json:"items"`
}

// StoreList wraps the store collection.
type StoreList struct {
	Stores []Store `json:"stores"`
}

// Message is the body of acknowledgement responses.
type Message struct {
	Message string `json:"message"`
}

// ToCreateStoreInput converts the transport payload into the application input.
func ToCreateStoreInput(req CreateStoreRequest) catalogtypes.CreateStoreInput {
	return catalogtypes.CreateStoreInput{Name: req.Name}
}

// FromDomainStore converts a store to its summary representation.
func FromDomainStore(store *domain.Store) Store {
	if store == nil {
		return Store{}
	}
	return Store{ID: store.ID, Name: store.Name}
}

// FromDomainStoreDetail converts a store and its items. Items is never null on the wire.
func FromDomainStoreDetail(store *domain.Store) StoreDetail {
	if store == nil {
		return StoreDetail{Items: []StoreItem{}}
	}
	items := make([]StoreItem, 0, len(store.Items))
	for _, item := range store.Items {
		items = append(items, StoreItem{ID: item.ID, Name: item.Name, Price: item.Price})
	}
	return StoreDetail{ID: store.ID, Name: store.Name, Items: items}
}

// FromDomainStoreList converts a collection of stores.
func FromDomainStoreList(stores []*domain.Store) StoreList {
	list := StoreList{Stores: make([]Store, 0, len(stores))}
	for _, store := range stores {
		if store == nil {
			continue
		}
		list.Stores = append(list.Stores, FromDomainStore(store))
	}
	return list
}
