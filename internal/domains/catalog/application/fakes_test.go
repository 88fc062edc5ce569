package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/ports"
)

// fakeCatalog backs both repository fakes so referential rules hold across them.
type fakeCatalog struct {
	mu     sync.Mutex
	stores map[string]domain.Store
	items  map[string]domain.Item
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{stores: map[string]domain.Store{}, items: map[string]domain.Item{}}
}

type fakeStoreRepo struct{ *fakeCatalog }

type fakeItemRepo struct{ *fakeCatalog }

func (f fakeStoreRepo) Create(_ context.Context, store *domain.Store) (*domain.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.stores {
		if existing.Name == store.Name {
			return nil, ports.ErrDuplicateStoreName
		}
	}
	f.stores[store.ID] = domain.Store{ID: store.ID, Name: store.Name}
	return &domain.Store{ID: store.ID, Name: store.Name}, nil
}

func (f fakeStoreRepo) List(_ context.Context) ([]*domain.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []*domain.Store
	for _, s := range f.stores {
		copy := s
		list = append(list, &copy)
	}
	return list, nil
}

func (f fakeStoreRepo) GetByID(_ context.Context, id string) (*domain.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.stores[id]
	if !ok {
		return nil, ports.ErrStoreNotFound
	}
	for _, item := range f.items {
		if item.StoreID == id {
			s.Items = append(s.Items, item)
		}
	}
	return &s, nil
}

func (f fakeStoreRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.stores[id]; !ok {
		return ports.ErrStoreNotFound
	}
	for itemID, item := range f.items {
		if item.StoreID == id {
			delete(f.items, itemID)
		}
	}
	delete(f.stores, id)
	return nil
}

func (f fakeItemRepo) Create(_ context.Context, item *domain.Item) (*domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.stores[item.StoreID]; !ok {
		return nil, ports.ErrStoreNotFound
	}
	f.items[item.ID] = *item
	copy := *item
	return &copy, nil
}

func (f fakeItemRepo) List(_ context.Context) ([]*domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []*domain.Item
	for _, i := range f.items {
		copy := i
		list = append(list, &copy)
	}
	return list, nil
}

func (f fakeItemRepo) GetByID(_ context.Context, id string) (*domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.items[id]
	if !ok {
		return nil, ports.ErrItemNotFound
	}
	return &i, nil
}

func (f fakeItemRepo) Update(_ context.Context, id string, mutate func(*domain.Item) error) (*domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.items[id]
	if !ok {
		return nil, ports.ErrItemNotFound
	}
	if err := mutate(&i); err != nil {
		return nil, err
	}
	f.items[id] = i
	return &i, nil
}

func (f fakeItemRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return ports.ErrItemNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeIdempotencyStore struct {
	records map[string]ports.IdempotencyRecord
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{records: map[string]ports.IdempotencyRecord{}}
}

func (f *fakeIdempotencyStore) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	record, ok := f.records[key]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (f *fakeIdempotencyStore) Save(_ context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	if existing, ok := f.records[record.Key]; ok {
		if existing.RequestHash != record.RequestHash || existing.ItemID != record.ItemID {
			return &existing, ports.ErrIdempotencyConflict
		}
		return &existing, nil
	}
	f.records[record.Key] = record
	return &record, nil
}

func sequentialIDs(prefix string) func() string {
	var n int
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func ptr[T any](v T) *T { return &v }
