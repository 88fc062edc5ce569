package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	catalogtypes "github.com/Apurer/go-gin-store-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/ports"
	catalogactivities "github.com/Apurer/go-gin-store-api/internal/platform/temporal/activities/catalog"
)

func TestItemCreationWorkflow_PersistsItem(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterActivityWithOptions(func(_ context.Context, input catalogtypes.CreateItemInput) (*domain.Item, error) {
		return &domain.Item{ID: "i1", Name: *input.Name, Price: *input.Price, StoreID: *input.StoreID}, nil
	}, activity.RegisterOptions{Name: catalogactivities.PersistItemActivityName})

	name, price, storeID := "snacks", 20.0, "s1"
	env.ExecuteWorkflow(ItemCreationWorkflow, ItemCreationWorkflowInput{
		Command: catalogtypes.CreateItemInput{Name: &name, Price: &price, StoreID: &storeID},
		TraceID: "trace",
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var item domain.Item
	require.NoError(t, env.GetWorkflowResult(&item))
	assert.Equal(t, domain.Item{ID: "i1", Name: "snacks", Price: 20, StoreID: "s1"}, item)
}

func TestItemCreationWorkflow_BusinessErrorIsNotRetried(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	attempts := 0
	env.RegisterActivityWithOptions(func(context.Context, catalogtypes.CreateItemInput) (*domain.Item, error) {
		attempts++
		return nil, catalogactivities.ToApplicationError(ports.ErrStoreNotFound)
	}, activity.RegisterOptions{Name: catalogactivities.PersistItemActivityName})

	name, price, storeID := "snacks", 20.0, "missing"
	env.ExecuteWorkflow(ItemCreationWorkflow, ItemCreationWorkflowInput{
		Command: catalogtypes.CreateItemInput{Name: &name, Price: &price, StoreID: &storeID},
	})

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, catalogactivities.ErrorTypeNotFound, appErr.Type())
	assert.Equal(t, 1, attempts)
}
