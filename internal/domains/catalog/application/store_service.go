package application

import (
	"context"

	catalogtypes "github.com/Apurer/go-gin-store-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/ports"
)

// StoreService orchestrates store use cases.
type StoreService struct {
	repo  ports.StoreRepository
	newID func() string
}

// StoreOption configures a StoreService.
type StoreOption func(*StoreService)

// WithStoreIDGenerator overrides identifier allocation, mainly for deterministic tests.
func WithStoreIDGenerator(fn func() string) StoreOption {
	return func(s *StoreService) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewStoreService wires the store service with its repository.
func NewStoreService(repo ports.StoreRepository, opts ...StoreOption) *StoreService {
	s := &StoreService{repo: repo, newID: NewID}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateStore persists a new store; the repository rejects duplicate names.
func (s *StoreService) CreateStore(ctx context.Context, input catalogtypes.CreateStoreInput) (*domain.Store, error) {
	if input.Name == nil {
		return nil, mapError(&catalogtypes.MissingFieldsError{Fields: []string{"name"}})
	}
	store, err := domain.NewStore(s.newID(), *input.Name)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Create(ctx, store)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// ListStores returns every store without its items.
func (s *StoreService) ListStores(ctx context.Context) ([]*domain.Store, error) {
	stores, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return stores, nil
}

// GetStore loads a store together with the items it owns.
func (s *StoreService) GetStore(ctx context.Context, input catalogtypes.StoreIdentifier) (*domain.Store, error) {
	store, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return store, nil
}

// DeleteStore removes a store and every item referencing it.
func (s *StoreService) DeleteStore(ctx context.Context, input catalogtypes.StoreIdentifier) error {
	if err := s.repo.Delete(ctx, input.ID); err != nil {
		return mapError(err)
	}
	return nil
}

var _ ports.StoreService = (*StoreService)(nil)
