package ports

import (
	"context"

	catalogtypes "github.com/Apurer/go-gin-store-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
)

// ItemWorkflows exposes durable workflow operations required by the catalog.
type ItemWorkflows interface {
	CreateItem(ctx context.Context, input catalogtypes.CreateItemInput) (*domain.Item, error)
}
