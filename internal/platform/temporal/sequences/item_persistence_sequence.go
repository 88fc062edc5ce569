package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	catalogtypes "github.com/Apurer/go-gin-store-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
	catalogactivities "github.com/Apurer/go-gin-store-api/internal/platform/temporal/activities/catalog"
)

// RunItemPersistenceSequence executes the ordered set of activities needed to persist an item.
func RunItemPersistenceSequence(ctx workflow.Context, input catalogtypes.CreateItemInput) (*domain.Item, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("item persistence sequence started")
	persistOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        10 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: catalogactivities.NonRetryableErrorTypes,
		},
	}

	var item domain.Item
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, persistOptions), catalogactivities.PersistItemActivityName, input).Get(ctx, &item)
	if err != nil {
		logger.Error("item persistence sequence failed", "error", err)
		return nil, err
	}
	logger.Info("item persistence sequence persisted", "itemId", item.ID)
	return &item, nil
}
