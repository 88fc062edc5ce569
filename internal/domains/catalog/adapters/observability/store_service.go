package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	catalogtypes "github.com/Apurer/go-gin-store-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/ports"
)

// StoreService decorates the store use cases with tracing, logging, and metrics.
type StoreService struct {
	inner ports.StoreService
	instrumentation
}

// NewStoreService wraps the core store service.
func NewStoreService(inner ports.StoreService, opts ...Option) ports.StoreService {
	return &StoreService{inner: inner, instrumentation: newInstrumentation(opts)}
}

func (s *StoreService) CreateStore(ctx context.Context, input catalogtypes.CreateStoreInput) (*domain.Store, error) {
	ctx, span := s.startSpan(ctx, "StoreService.CreateStore")
	defer span.End()

	s.logInfo(ctx, "creating store")
	result, err := s.inner.CreateStore(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create store")
	}
	span.SetAttributes(attribute.String("store.id", result.ID))
	addCounter(ctx, s.metrics.storesCreated)
	s.logInfo(ctx, "store created", slog.String("store.id", result.ID), slog.String("store.name", result.Name))
	return result, nil
}

func (s *StoreService) ListStores(ctx context.Context) ([]*domain.Store, error) {
	ctx, span := s.startSpan(ctx, "StoreService.ListStores")
	defer span.End()

	result, err := s.inner.ListStores(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list stores")
	}
	span.SetAttributes(attribute.Int("store.result.count", len(result)))
	s.logInfo(ctx, "listed stores", slog.Int("count", len(result)))
	return result, nil
}

func (s *StoreService) GetStore(ctx context.Context, input catalogtypes.StoreIdentifier) (*domain.Store, error) {
	ctx, span := s.startSpan(ctx, "StoreService.GetStore", attribute.String("store.id", input.ID))
	defer span.End()

	result, err := s.inner.GetStore(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load store", slog.String("store.id", input.ID))
	}
	span.SetAttributes(attribute.Int("store.items.count", len(result.Items)))
	s.logInfo(ctx, "store loaded", slog.String("store.id", result.ID), slog.Int("items", len(result.Items)))
	return result, nil
}

func (s *StoreService) DeleteStore(ctx context.Context, input catalogtypes.StoreIdentifier) error {
	ctx, span := s.startSpan(ctx, "StoreService.DeleteStore", attribute.String("store.id", input.ID))
	defer span.End()

	s.logInfo(ctx, "deleting store", slog.String("store.id", input.ID))
	if err := s.inner.DeleteStore(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to delete store", slog.String("store.id", input.ID))
	}
	addCounter(ctx, s.metrics.storesDeleted)
	s.logInfo(ctx, "store deleted", slog.String("store.id", input.ID))
	return nil
}

var _ ports.StoreService = (*StoreService)(nil)
