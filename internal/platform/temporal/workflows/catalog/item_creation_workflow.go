package catalog

import (
	"go.temporal.io/sdk/workflow"

	catalogtypes "github.com/Apurer/go-gin-store-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-store-api/internal/platform/temporal/sequences"
)

const (
	// ItemCreationWorkflowName is the public identifier for registering the workflow.
	ItemCreationWorkflowName = "catalog.workflows.ItemCreation"
	// ItemCreationTaskQueue is the queue consumed by the worker processing item workflows.
	ItemCreationTaskQueue = "ITEM_CREATION"
)

// ItemCreationWorkflowInput captures the payload required to create an item.
type ItemCreationWorkflowInput struct {
	Command catalogtypes.CreateItemInput
	TraceID string
}

// ItemCreationWorkflow orchestrates the activities needed to persist an item.
func ItemCreationWorkflow(ctx workflow.Context, input ItemCreationWorkflowInput) (*domain.Item, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("ItemCreationWorkflow started", withTraceID(input.TraceID)...)
	item, err := sequences.RunItemPersistenceSequence(ctx, input.Command)
	if err != nil {
		logger.Error("ItemCreationWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	logger.Info("ItemCreationWorkflow completed", withTraceID(input.TraceID, "itemId", item.ID)...)
	return item, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
