package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/application"
	catalogtypes "github.com/Apurer/go-gin-store-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/ports"
	catalogactivities "github.com/Apurer/go-gin-store-api/internal/platform/temporal/activities/catalog"
	catalogworkflows "github.com/Apurer/go-gin-store-api/internal/platform/temporal/workflows/catalog"
)

var (
	_ ports.ItemWorkflows = (*TemporalItemWorkflows)(nil)
	_ ports.ItemWorkflows = (*InlineItemWorkflows)(nil)
)

// TemporalItemWorkflows starts item workflows on a Temporal cluster.
type TemporalItemWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalItemWorkflows wires a Temporal client into the orchestrator.
func NewTemporalItemWorkflows(c client.Client) *TemporalItemWorkflows {
	return &TemporalItemWorkflows{client: c, taskQueue: catalogworkflows.ItemCreationTaskQueue}
}

// CreateItem starts the Temporal workflow that persists an item and waits for its result.
func (o *TemporalItemWorkflows) CreateItem(ctx context.Context, input catalogtypes.CreateItemInput) (*domain.Item, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal item workflows not configured")
	}
	// Reject incomplete payloads before a workflow is ever scheduled.
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", application.ErrInvalidInput, err)
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID, err := buildItemCreationWorkflowID(input, traceComponent)
	if err != nil {
		return nil, err
	}
	// Same key and payload while a run is open attaches to it; a different
	// payload gets its own run and the item service reports the conflict.
	options := client.StartWorkflowOptions{
		ID:                                       workflowID,
		TaskQueue:                                o.taskQueue,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		catalogworkflows.ItemCreationWorkflowName,
		catalogworkflows.ItemCreationWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(input.IdempotencyKey) != "" {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var item domain.Item
			if err := existingRun.Get(ctx, &item); err != nil {
				return nil, FromWorkflowError(err)
			}
			return &item, nil
		}
		return nil, err
	}
	var item domain.Item
	if err := run.Get(ctx, &item); err != nil {
		return nil, FromWorkflowError(err)
	}
	return &item, nil
}

// InlineItemWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineItemWorkflows struct {
	service ports.ItemService
}

// NewInlineItemWorkflows wraps the item service for synchronous execution.
func NewInlineItemWorkflows(service ports.ItemService) *InlineItemWorkflows {
	return &InlineItemWorkflows{service: service}
}

// CreateItem delegates to the application service without durable orchestration.
func (o *InlineItemWorkflows) CreateItem(ctx context.Context, input catalogtypes.CreateItemInput) (*domain.Item, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline item workflows not configured")
	}
	return o.service.CreateItem(ctx, input)
}

// FromWorkflowError restores catalog sentinels from Temporal application errors so callers can match them.
func FromWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case catalogactivities.ErrorTypeValidation:
		var fields []string
		if appErr.HasDetails() {
			_ = appErr.Details(&fields)
		}
		if len(fields) > 0 {
			return fmt.Errorf("%w: %w", application.ErrInvalidInput, &catalogtypes.MissingFieldsError{Fields: fields})
		}
		return &remoteError{sentinel: application.ErrInvalidInput, msg: appErr.Message()}
	case catalogactivities.ErrorTypeNotFound:
		return &remoteError{sentinel: ports.ErrStoreNotFound, msg: appErr.Message()}
	case catalogactivities.ErrorTypeDuplicateName:
		return &remoteError{sentinel: ports.ErrDuplicateStoreName, msg: appErr.Message()}
	case catalogactivities.ErrorTypeIdempotencyConflict:
		return &remoteError{sentinel: ports.ErrIdempotencyConflict, msg: appErr.Message()}
	}
	return err
}

// remoteError keeps the activity's message while matching the local sentinel.
type remoteError struct {
	sentinel error
	msg      string
}

func (e *remoteError) Error() string { return e.msg }

func (e *remoteError) Unwrap() error { return e.sentinel }

func buildItemCreationWorkflowID(input catalogtypes.CreateItemInput, traceComponent string) (string, error) {
	key := strings.TrimSpace(input.IdempotencyKey)
	if key == "" {
		return fmt.Sprintf("item-creation-%d-%s", time.Now().UnixNano(), traceComponent), nil
	}
	fingerprint, err := application.FingerprintCreateItem(input)
	if err != nil {
		return "", fmt.Errorf("%w: %w", application.ErrInvalidInput, err)
	}
	return fmt.Sprintf("item-creation-idem-%s-%s", hashIdempotencyKey(key), fingerprint[:16]), nil
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	// First 16 hex chars keep workflow IDs readable.
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	if traceComponent := workflowTraceID(ctx); traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
