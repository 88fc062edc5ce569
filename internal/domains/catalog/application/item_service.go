package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	catalogtypes "github.com/Apurer/go-gin-store-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/ports"
)

// ItemService orchestrates item use cases.
type ItemService struct {
	repo        ports.ItemRepository
	idempotency ports.IdempotencyStore
	newID       func() string
}

// ItemOption configures an ItemService.
type ItemOption func(*ItemService)

// WithIdempotencyStore enables replay of create requests carrying an idempotency key.
func WithIdempotencyStore(store ports.IdempotencyStore) ItemOption {
	return func(s *ItemService) {
		s.idempotency = store
	}
}

// WithItemIDGenerator overrides identifier allocation, mainly for deterministic tests.
func WithItemIDGenerator(fn func() string) ItemOption {
	return func(s *ItemService) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewItemService wires the item service with its dependencies.
func NewItemService(repo ports.ItemRepository, opts ...ItemOption) *ItemService {
	s := &ItemService{repo: repo, newID: NewID}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateItem persists a new item under an existing store.
func (s *ItemService) CreateItem(ctx context.Context, input catalogtypes.CreateItemInput) (*domain.Item, error) {
	if err := input.Validate(); err != nil {
		return nil, mapError(err)
	}
	key := strings.TrimSpace(input.IdempotencyKey)
	if utf8.RuneCountInString(key) > MaxIdempotencyKeyLength {
		return nil, fmt.Errorf("%w: idempotency key exceeds %d characters", ErrInvalidInput, MaxIdempotencyKeyLength)
	}
	if key == "" || s.idempotency == nil {
		return s.createItem(ctx, input)
	}

	hash, err := FingerprintCreateItem(input)
	if err != nil {
		return nil, err
	}
	existing, err := s.idempotency.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.replay(ctx, existing, hash)
	}

	created, err := s.createItem(ctx, input)
	if err != nil {
		return nil, err
	}
	record, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{Key: key, RequestHash: hash, ItemID: created.ID})
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, ports.ErrIdempotencyConflict) || record == nil {
		return nil, err
	}
	// Another request with the same key committed first; drop our copy.
	if delErr := s.repo.Delete(ctx, created.ID); delErr != nil && !errors.Is(delErr, ports.ErrNotFound) {
		return nil, delErr
	}
	return s.replay(ctx, record, hash)
}

func (s *ItemService) createItem(ctx context.Context, input catalogtypes.CreateItemInput) (*domain.Item, error) {
	// A supplied but blank store_id resolves to no store.
	if strings.TrimSpace(*input.StoreID) == "" {
		return nil, ports.ErrStoreNotFound
	}
	item, err := domain.NewItem(s.newID(), *input.Name, *input.Price, *input.StoreID)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *ItemService) replay(ctx context.Context, record *ports.IdempotencyRecord, hash string) (*domain.Item, error) {
	if record.RequestHash != hash {
		return nil, ports.ErrIdempotencyConflict
	}
	item, err := s.repo.GetByID(ctx, record.ItemID)
	if err != nil {
		return nil, mapError(err)
	}
	return item, nil
}

// ListItems returns every item.
func (s *ItemService) ListItems(ctx context.Context) ([]*domain.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return items, nil
}

// GetItem loads a single item.
func (s *ItemService) GetItem(ctx context.Context, input catalogtypes.ItemIdentifier) (*domain.Item, error) {
	item, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return item, nil
}

// UpdateItem merges the present fields into the stored item. The store reference is never touched.
func (s *ItemService) UpdateItem(ctx context.Context, input catalogtypes.UpdateItemInput) (*domain.Item, error) {
	updated, err := s.repo.Update(ctx, input.ID, func(item *domain.Item) error {
		return applyPartialUpdate(item, input)
	})
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// DeleteItem removes a single item.
func (s *ItemService) DeleteItem(ctx context.Context, input catalogtypes.ItemIdentifier) error {
	if err := s.repo.Delete(ctx, input.ID); err != nil {
		return mapError(err)
	}
	return nil
}

func applyPartialUpdate(target *domain.Item, input catalogtypes.UpdateItemInput) error {
	if input.Name != nil {
		if err := target.Rename(*input.Name); err != nil {
			return err
		}
	}
	if input.Price != nil {
		if err := target.Reprice(*input.Price); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.ItemService = (*ItemService)(nil)
