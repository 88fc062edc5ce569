package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
)

var (
	// ErrNotFound is matched by every "record does not exist" failure of the catalog.
	ErrNotFound      = errors.New("not found")
	ErrStoreNotFound = fmt.Errorf("store %w", ErrNotFound)
	ErrItemNotFound  = fmt.Errorf("item %w", ErrNotFound)

	ErrDuplicateStoreName = errors.New("store name already exists")
)

// StoreRepository persists stores. Deleting a store removes the items it owns.
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) (*domain.Store, error)
	List(ctx context.Context) ([]*domain.Store, error)
	// GetByID returns the store with its items populated.
	GetByID(ctx context.Context, id string) (*domain.Store, error)
	Delete(ctx context.Context, id string) error
}

// ItemRepository persists items. Create fails with ErrStoreNotFound when the parent store is missing.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	List(ctx context.Context) ([]*domain.Item, error)
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	// Update loads the item, applies mutate and saves the result within a single transaction.
	Update(ctx context.Context, id string, mutate func(*domain.Item) error) (*domain.Item, error)
	Delete(ctx context.Context, id string) error
}
