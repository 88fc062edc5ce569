package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	catalogtypes "github.com/Apurer/go-gin-store-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/ports"
)

// ItemService decorates the item use cases with tracing, logging, and metrics.
type ItemService struct {
	inner ports.ItemService
	instrumentation
}

// NewItemService wraps the core item service.
func NewItemService(inner ports.ItemService, opts ...Option) ports.ItemService {
	return &ItemService{inner: inner, instrumentation: newInstrumentation(opts)}
}

func (s *ItemService) CreateItem(ctx context.Context, input catalogtypes.CreateItemInput) (*domain.Item, error) {
	attrs := []attribute.KeyValue{attribute.Bool("item.idempotent", input.IdempotencyKey != "")}
	if input.StoreID != nil {
		attrs = append(attrs, attribute.String("store.id", *input.StoreID))
	}
	ctx, span := s.startSpan(ctx, "ItemService.CreateItem", attrs...)
	defer span.End()

	s.logInfo(ctx, "creating item")
	result, err := s.inner.CreateItem(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create item")
	}
	span.SetAttributes(attribute.String("item.id", result.ID))
	addCounter(ctx, s.metrics.itemsCreated, attribute.String("store.id", result.StoreID))
	s.logInfo(ctx, "item created", slog.String("item.id", result.ID), slog.String("store.id", result.StoreID))
	return result, nil
}

func (s *ItemService) ListItems(ctx context.Context) ([]*domain.Item, error) {
	ctx, span := s.startSpan(ctx, "ItemService.ListItems")
	defer span.End()

	result, err := s.inner.ListItems(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list items")
	}
	span.SetAttributes(attribute.Int("item.result.count", len(result)))
	s.logInfo(ctx, "listed items", slog.Int("count", len(result)))
	return result, nil
}

func (s *ItemService) GetItem(ctx context.Context, input catalogtypes.ItemIdentifier) (*domain.Item, error) {
	ctx, span := s.startSpan(ctx, "ItemService.GetItem", attribute.String("item.id", input.ID))
	defer span.End()

	result, err := s.inner.GetItem(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load item", slog.String("item.id", input.ID))
	}
	s.logInfo(ctx, "item loaded", slog.String("item.id", result.ID))
	return result, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, input catalogtypes.UpdateItemInput) (*domain.Item, error) {
	ctx, span := s.startSpan(ctx, "ItemService.UpdateItem",
		attribute.String("item.id", input.ID),
		attribute.Bool("item.update.name", input.Name != nil),
		attribute.Bool("item.update.price", input.Price != nil),
	)
	defer span.End()

	s.logInfo(ctx, "updating item", slog.String("item.id", input.ID))
	result, err := s.inner.UpdateItem(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update item", slog.String("item.id", input.ID))
	}
	addCounter(ctx, s.metrics.itemsUpdated)
	s.logInfo(ctx, "item updated", slog.String("item.id", result.ID))
	return result, nil
}

func (s *ItemService) DeleteItem(ctx context.Context, input catalogtypes.ItemIdentifier) error {
	ctx, span := s.startSpan(ctx, "ItemService.DeleteItem", attribute.String("item.id", input.ID))
	defer span.End()

	s.logInfo(ctx, "deleting item", slog.String("item.id", input.ID))
	if err := s.inner.DeleteItem(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to delete item", slog.String("item.id", input.ID))
	}
	addCounter(ctx, s.metrics.itemsDeleted)
	s.logInfo(ctx, "item deleted", slog.String("item.id", input.ID))
	return nil
}

var _ ports.ItemService = (*ItemService)(nil)
