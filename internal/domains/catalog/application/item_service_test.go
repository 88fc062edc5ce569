package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogtypes "github.com/Apurer/go-gin-store-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/ports"
)

type itemFixture struct {
	catalog *fakeCatalog
	stores  *StoreService
	items   *ItemService
	storeID string
}

func newItemFixture(t *testing.T, opts ...ItemOption) itemFixture {
	t.Helper()
	catalog := newFakeCatalog()
	stores := NewStoreService(fakeStoreRepo{catalog}, WithStoreIDGenerator(sequentialIDs("S")))
	opts = append([]ItemOption{WithItemIDGenerator(sequentialIDs("I"))}, opts...)
	items := NewItemService(fakeItemRepo{catalog}, opts...)
	store, err := stores.CreateStore(context.Background(), catalogtypes.CreateStoreInput{Name: ptr("spencer")})
	require.NoError(t, err)
	return itemFixture{catalog: catalog, stores: stores, items: items, storeID: store.ID}
}

func TestCreateItem_RoundTrip(t *testing.T) {
	fx := newItemFixture(t)
	ctx := context.Background()

	created, err := fx.items.CreateItem(ctx, catalogtypes.CreateItemInput{Name: ptr("snacks"), Price: ptr(20.0), StoreID: ptr(fx.storeID)})
	require.NoError(t, err)
	assert.Equal(t, "I1", created.ID)

	fetched, err := fx.items.GetItem(ctx, catalogtypes.ItemIdentifier{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.Item{ID: "I1", Name: "snacks", Price: 20.0, StoreID: fx.storeID}, *fetched)
}

func TestCreateItem_MissingFields(t *testing.T) {
	fx := newItemFixture(t)

	_, err := fx.items.CreateItem(context.Background(), catalogtypes.CreateItemInput{Name: ptr("snacks")})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, catalogtypes.ErrMissingFields)
	assert.Empty(t, fx.catalog.items)
}

func TestCreateItem_UnknownStore(t *testing.T) {
	fx := newItemFixture(t)

	_, err := fx.items.CreateItem(context.Background(), catalogtypes.CreateItemInput{Name: ptr("snacks"), Price: ptr(2.0), StoreID: ptr("missing")})
	require.ErrorIs(t, err, ports.ErrStoreNotFound)
	require.ErrorIs(t, err, ports.ErrNotFound)
	assert.Empty(t, fx.catalog.items)
}

func TestCreateItem_BlankStoreIDIsNotFound(t *testing.T) {
	fx := newItemFixture(t)

	_, err := fx.items.CreateItem(context.Background(), catalogtypes.CreateItemInput{Name: ptr("snacks"), Price: ptr(2.0), StoreID: ptr("  ")})
	require.ErrorIs(t, err, ports.ErrStoreNotFound)
	assert.NotErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, fx.catalog.items)
}

func TestCreateItem_IdempotencyKeyLength(t *testing.T) {
	idem := newFakeIdempotencyStore()
	fx := newItemFixture(t, WithIdempotencyStore(idem))
	ctx := context.Background()

	_, err := fx.items.CreateItem(ctx, catalogtypes.CreateItemInput{
		Name: ptr("snacks"), Price: ptr(2.0), StoreID: ptr(fx.storeID),
		IdempotencyKey: strings.Repeat("k", MaxIdempotencyKeyLength+1),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, fx.catalog.items)
	assert.Empty(t, idem.records)

	created, err := fx.items.CreateItem(ctx, catalogtypes.CreateItemInput{
		Name: ptr("snacks"), Price: ptr(2.0), StoreID: ptr(fx.storeID),
		IdempotencyKey: strings.Repeat("k", MaxIdempotencyKeyLength),
	})
	require.NoError(t, err)
	assert.Equal(t, "I1", created.ID)
}

func TestCreateItem_PriceBounds(t *testing.T) {
	fx := newItemFixture(t)
	ctx := context.Background()

	_, err := fx.items.CreateItem(ctx, catalogtypes.CreateItemInput{Name: ptr("debt"), Price: ptr(-1.0), StoreID: ptr(fx.storeID)})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrNegativePrice)

	free, err := fx.items.CreateItem(ctx, catalogtypes.CreateItemInput{Name: ptr("sample"), Price: ptr(0.0), StoreID: ptr(fx.storeID)})
	require.NoError(t, err)
	assert.Zero(t, free.Price)
}

func TestUpdateItem_PartialName(t *testing.T) {
	fx := newItemFixture(t)
	ctx := context.Background()
	created, err := fx.items.CreateItem(ctx, catalogtypes.CreateItemInput{Name: ptr("snacks"), Price: ptr(20.0), StoreID: ptr(fx.storeID)})
	require.NoError(t, err)

	updated, err := fx.items.UpdateItem(ctx, catalogtypes.UpdateItemInput{ID: created.ID, Name: ptr("X")})
	require.NoError(t, err)
	assert.Equal(t, "X", updated.Name)
	assert.Equal(t, 20.0, updated.Price)
	assert.Equal(t, fx.storeID, updated.StoreID)
}

func TestUpdateItem_PartialPrice(t *testing.T) {
	fx := newItemFixture(t)
	ctx := context.Background()
	created, err := fx.items.CreateItem(ctx, catalogtypes.CreateItemInput{Name: ptr("snacks"), Price: ptr(20.0), StoreID: ptr(fx.storeID)})
	require.NoError(t, err)

	updated, err := fx.items.UpdateItem(ctx, catalogtypes.UpdateItemInput{ID: created.ID, Price: ptr(25.0)})
	require.NoError(t, err)
	assert.Equal(t, domain.Item{ID: created.ID, Name: "snacks", Price: 25.0, StoreID: fx.storeID}, *updated)
}

func TestUpdateItem_EmptyPayloadKeepsRecord(t *testing.T) {
	fx := newItemFixture(t)
	ctx := context.Background()
	created, err := fx.items.CreateItem(ctx, catalogtypes.CreateItemInput{Name: ptr("snacks"), Price: ptr(20.0), StoreID: ptr(fx.storeID)})
	require.NoError(t, err)

	updated, err := fx.items.UpdateItem(ctx, catalogtypes.UpdateItemInput{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, *created, *updated)
}

func TestUpdateItem_RejectsInvalidValues(t *testing.T) {
	fx := newItemFixture(t)
	ctx := context.Background()
	created, err := fx.items.CreateItem(ctx, catalogtypes.CreateItemInput{Name: ptr("snacks"), Price: ptr(20.0), StoreID: ptr(fx.storeID)})
	require.NoError(t, err)

	_, err = fx.items.UpdateItem(ctx, catalogtypes.UpdateItemInput{ID: created.ID, Name: ptr(""), Price: ptr(3.0)})
	require.ErrorIs(t, err, ErrInvalidInput)

	stored, err := fx.items.GetItem(ctx, catalogtypes.ItemIdentifier{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "snacks", stored.Name)
	assert.Equal(t, 20.0, stored.Price)
}

func TestUpdateItem_Missing(t *testing.T) {
	fx := newItemFixture(t)

	_, err := fx.items.UpdateItem(context.Background(), catalogtypes.UpdateItemInput{ID: "nope", Name: ptr("X")})
	require.ErrorIs(t, err, ports.ErrItemNotFound)
}

func TestDeleteItem(t *testing.T) {
	fx := newItemFixture(t)
	ctx := context.Background()
	created, err := fx.items.CreateItem(ctx, catalogtypes.CreateItemInput{Name: ptr("snacks"), Price: ptr(20.0), StoreID: ptr(fx.storeID)})
	require.NoError(t, err)

	require.NoError(t, fx.items.DeleteItem(ctx, catalogtypes.ItemIdentifier{ID: created.ID}))
	err = fx.items.DeleteItem(ctx, catalogtypes.ItemIdentifier{ID: created.ID})
	require.ErrorIs(t, err, ports.ErrItemNotFound)

	store, err := fx.stores.GetStore(ctx, catalogtypes.StoreIdentifier{ID: fx.storeID})
	require.NoError(t, err)
	assert.Empty(t, store.Items)
}

func TestCreateItem_IdempotentReplay(t *testing.T) {
	idem := newFakeIdempotencyStore()
	fx := newItemFixture(t, WithIdempotencyStore(idem))
	ctx := context.Background()
	input := catalogtypes.CreateItemInput{Name: ptr("snacks"), Price: ptr(20.0), StoreID: ptr(fx.storeID), IdempotencyKey: "key-1"}

	first, err := fx.items.CreateItem(ctx, input)
	require.NoError(t, err)
	second, err := fx.items.CreateItem(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, fx.catalog.items, 1)

	changed := input
	changed.Price = ptr(21.0)
	_, err = fx.items.CreateItem(ctx, changed)
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	assert.Len(t, fx.catalog.items, 1)
}

func TestCreateItem_IdempotencyLostRaceDropsDuplicate(t *testing.T) {
	idem := newFakeIdempotencyStore()
	fx := newItemFixture(t, WithIdempotencyStore(idem))
	ctx := context.Background()
	input := catalogtypes.CreateItemInput{Name: ptr("snacks"), Price: ptr(20.0), StoreID: ptr(fx.storeID), IdempotencyKey: "key-1"}

	winner, err := fx.items.CreateItem(ctx, catalogtypes.CreateItemInput{Name: input.Name, Price: input.Price, StoreID: input.StoreID})
	require.NoError(t, err)
	hash, err := FingerprintCreateItem(input)
	require.NoError(t, err)
	// simulate a concurrent request that saved the key between our lookup and our save
	racing := &racingIdempotencyStore{fakeIdempotencyStore: idem, winner: ports.IdempotencyRecord{Key: "key-1", RequestHash: hash, ItemID: winner.ID}}
	fx.items.idempotency = racing

	replayed, err := fx.items.CreateItem(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, winner.ID, replayed.ID)
	assert.Len(t, fx.catalog.items, 1)
}

type racingIdempotencyStore struct {
	*fakeIdempotencyStore
	winner ports.IdempotencyRecord
}

func (r *racingIdempotencyStore) Get(_ context.Context, _ string) (*ports.IdempotencyRecord, error) {
	return nil, nil
}

func (r *racingIdempotencyStore) Save(ctx context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	r.records[r.winner.Key] = r.winner
	return r.fakeIdempotencyStore.Save(ctx, record)
}

func TestFingerprintCreateItem_IgnoresKey(t *testing.T) {
	a, err := FingerprintCreateItem(catalogtypes.CreateItemInput{Name: ptr("x"), Price: ptr(1.0), StoreID: ptr("s"), IdempotencyKey: "a"})
	require.NoError(t, err)
	b, err := FingerprintCreateItem(catalogtypes.CreateItemInput{Name: ptr("x"), Price: ptr(1.0), StoreID: ptr("s"), IdempotencyKey: "b"})
	require.NoError(t, err)
	c, err := FingerprintCreateItem(catalogtypes.CreateItemInput{Name: ptr("x"), Price: ptr(2.0), StoreID: ptr("s")})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestFingerprintCreateItem_UsesWireFieldNames(t *testing.T) {
	input := catalogtypes.CreateItemInput{Name: ptr("x"), Price: ptr(1.0), StoreID: ptr("s"), IdempotencyKey: "a"}

	fingerprint, err := FingerprintCreateItem(input)
	require.NoError(t, err)
	sum := sha256.Sum256([]byte(`{"name":"x","price":1,"store_id":"s"}`))
	assert.Equal(t, hex.EncodeToString(sum[:]), fingerprint)

	encoded, err := json.Marshal(input)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x","price":1,"store_id":"s","idempotency_key":"a"}`, string(encoded))
}
