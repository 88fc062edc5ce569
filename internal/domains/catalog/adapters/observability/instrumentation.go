package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/Apurer/go-gin-store-api/internal/domains/catalog/adapters/observability"

// Option configures the catalog decorators.
type Option func(*instrumentation)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *instrumentation) {
		i.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(i *instrumentation) {
		i.tracer = tr
	}
}

// WithMeter injects the meter used to create catalog counters.
func WithMeter(m metric.Meter) Option {
	return func(i *instrumentation) {
		i.metrics = newCatalogMetrics(m)
	}
}

type instrumentation struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics catalogMetrics
}

func newInstrumentation(opts []Option) instrumentation {
	i := instrumentation{
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newCatalogMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&i)
		}
	}
	if i.tracer == nil {
		i.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if i.logger == nil {
		i.logger = defaultLogger()
	}
	return i
}

func (i instrumentation) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return i.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (i instrumentation) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	i.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (i instrumentation) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	i.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type catalogMetrics struct {
	storesCreated metric.Int64Counter
	storesDeleted metric.Int64Counter
	itemsCreated  metric.Int64Counter
	itemsUpdated  metric.Int64Counter
	itemsDeleted  metric.Int64Counter
}

func newCatalogMetrics(m metric.Meter) catalogMetrics {
	if m == nil {
		return catalogMetrics{}
	}
	storesCreated, _ := m.Int64Counter("catalog.stores.created", metric.WithDescription("Number of stores created"))
	storesDeleted, _ := m.Int64Counter("catalog.stores.deleted", metric.WithDescription("Number of stores deleted"))
	itemsCreated, _ := m.Int64Counter("catalog.items.created", metric.WithDescription("Number of items created"))
	itemsUpdated, _ := m.Int64Counter("catalog.items.updated", metric.WithDescription("Number of items updated"))
	itemsDeleted, _ := m.Int64Counter("catalog.items.deleted", metric.WithDescription("Number of items deleted"))
	return catalogMetrics{
		storesCreated: storesCreated,
		storesDeleted: storesDeleted,
		itemsCreated:  itemsCreated,
		itemsUpdated:  itemsUpdated,
		itemsDeleted:  itemsDeleted,
	}
}

func addCounter(ctx context.Context, counter metric.Int64Counter, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}
