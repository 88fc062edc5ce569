package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	catalogtypes "github.com/Apurer/go-gin-store-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/ports"
)

type stubStores struct {
	err error
}

func (s stubStores) CreateStore(_ context.Context, input catalogtypes.CreateStoreInput) (*domain.Store, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Store{ID: "s1", Name: *input.Name}, nil
}

func (s stubStores) ListStores(context.Context) ([]*domain.Store, error) {
	return []*domain.Store{{ID: "s1"}}, s.err
}

func (s stubStores) GetStore(_ context.Context, input catalogtypes.StoreIdentifier) (*domain.Store, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Store{ID: input.ID}, nil
}

func (s stubStores) DeleteStore(context.Context, catalogtypes.StoreIdentifier) error {
	return s.err
}

type stubItems struct {
	ports.ItemService
}

func (stubItems) CreateItem(_ context.Context, input catalogtypes.CreateItemInput) (*domain.Item, error) {
	return &domain.Item{ID: "i1", Name: *input.Name, Price: *input.Price, StoreID: *input.StoreID}, nil
}

func (stubItems) DeleteItem(context.Context, catalogtypes.ItemIdentifier) error {
	return nil
}

type harness struct {
	spans  *tracetest.SpanRecorder
	reader *sdkmetric.ManualReader
	logs   *bytes.Buffer
	opts   []Option
}

func newHarness() harness {
	spans := tracetest.NewSpanRecorder()
	reader := sdkmetric.NewManualReader()
	logs := &bytes.Buffer{}
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	return harness{
		spans:  spans,
		reader: reader,
		logs:   logs,
		opts: []Option{
			WithTracer(tp.Tracer("test")),
			WithMeter(mp.Meter("test")),
			WithLogger(slog.New(slog.NewJSONHandler(logs, nil))),
		},
	}
}

func (h harness) counter(t *testing.T, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, h.reader.Collect(context.Background(), &rm))
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func TestStoreService_RecordsSuccess(t *testing.T) {
	h := newHarness()
	svc := NewStoreService(stubStores{}, h.opts...)
	name := "spencer"

	store, err := svc.CreateStore(context.Background(), catalogtypes.CreateStoreInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "s1", store.ID)
	require.NoError(t, svc.DeleteStore(context.Background(), catalogtypes.StoreIdentifier{ID: "s1"}))

	assert.EqualValues(t, 1, h.counter(t, "catalog.stores.created"))
	assert.EqualValues(t, 1, h.counter(t, "catalog.stores.deleted"))
	ended := h.spans.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "StoreService.CreateStore", ended[0].Name())
	assert.Contains(t, h.logs.String(), "store created")
}

func TestStoreService_RecordsFailure(t *testing.T) {
	h := newHarness()
	boom := errors.New("boom")
	svc := NewStoreService(stubStores{err: boom}, h.opts...)

	_, err := svc.GetStore(context.Background(), catalogtypes.StoreIdentifier{ID: "s1"})
	require.ErrorIs(t, err, boom)

	ended := h.spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Contains(t, h.logs.String(), "failed to load store")
	assert.Zero(t, h.counter(t, "catalog.stores.created"))
}

func TestItemService_CountsCreatesAndDeletes(t *testing.T) {
	h := newHarness()
	svc := NewItemService(stubItems{}, h.opts...)
	name, price, storeID := "snacks", 20.0, "s1"

	item, err := svc.CreateItem(context.Background(), catalogtypes.CreateItemInput{Name: &name, Price: &price, StoreID: &storeID})
	require.NoError(t, err)
	assert.Equal(t, "i1", item.ID)
	require.NoError(t, svc.DeleteItem(context.Background(), catalogtypes.ItemIdentifier{ID: "i1"}))

	assert.EqualValues(t, 1, h.counter(t, "catalog.items.created"))
	assert.EqualValues(t, 1, h.counter(t, "catalog.items.deleted"))
}

func TestDecorators_DefaultsAreSilent(t *testing.T) {
	svc := NewStoreService(stubStores{}, WithLogger(nil), WithTracer(nil))
	_, err := svc.ListStores(context.Background())
	require.NoError(t, err)
}
