package ports

import (
	"context"

	catalogtypes "github.com/Apurer/go-gin-store-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
)

// StoreService exposes store use cases to adapters (inbound/driving port).
type StoreService interface {
	CreateStore(ctx context.Context, input catalogtypes.CreateStoreInput) (*domain.Store, error)
	ListStores(ctx context.Context) ([]*domain.Store, error)
	GetStore(ctx context.Context, input catalogtypes.StoreIdentifier) (*domain.Store, error)
	DeleteStore(ctx context.Context, input catalogtypes.StoreIdentifier) error
}

// ItemService exposes item use cases to adapters (inbound/driving port).
type ItemService interface {
	CreateItem(ctx context.Context, input catalogtypes.CreateItemInput) (*domain.Item, error)
	ListItems(ctx context.Context) ([]*domain.Item, error)
	GetItem(ctx context.Context, input catalogtypes.ItemIdentifier) (*domain.Item, error)
	UpdateItem(ctx context.Context, input catalogtypes.UpdateItemInput) (*domain.Item, error)
	DeleteItem(ctx context.Context, input catalogtypes.ItemIdentifier) error
}
