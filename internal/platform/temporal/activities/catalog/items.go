package catalog

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/application"
	catalogtypes "github.com/Apurer/go-gin-store-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/ports"
)

const (
	// PersistItemActivityName persists a new item under an existing store.
	PersistItemActivityName = "catalog.activities.PersistItem"
)

// Application error types used to carry catalog failures across the workflow boundary.
const (
	ErrorTypeValidation          = "Validation"
	ErrorTypeNotFound            = "NotFound"
	ErrorTypeDuplicateName       = "DuplicateName"
	ErrorTypeIdempotencyConflict = "IdempotencyConflict"
)

// NonRetryableErrorTypes lists the failures that retrying cannot fix.
var NonRetryableErrorTypes = []string{
	ErrorTypeValidation,
	ErrorTypeNotFound,
	ErrorTypeDuplicateName,
	ErrorTypeIdempotencyConflict,
}

// Activities groups activities that operate on the catalog bounded context.
type Activities struct {
	items ports.ItemService
}

// NewActivities wires the catalog item service into the Temporal activities bundle.
func NewActivities(items ports.ItemService) *Activities {
	return &Activities{items: items}
}

// PersistItem stores a new item and returns it.
func (a *Activities) PersistItem(ctx context.Context, input catalogtypes.CreateItemInput) (*domain.Item, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.items == nil {
		logger.Error("item persist activity not initialized")
		return nil, errors.New("item persist activity not initialized")
	}
	logger.Info("PersistItem activity started", "store.id", deref(input.StoreID))
	item, err := a.items.CreateItem(ctx, input)
	if err != nil {
		logger.Error("PersistItem activity failed", "store.id", deref(input.StoreID), "error", err)
		return nil, ToApplicationError(err)
	}
	logger.Info("PersistItem activity completed", "itemId", item.ID)
	return item, nil
}

// ToApplicationError marks catalog business failures as non-retryable. Other errors pass through for retry.
func ToApplicationError(err error) error {
	if err == nil {
		return nil
	}
	var missing *catalogtypes.MissingFieldsError
	switch {
	case errors.As(err, &missing):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeValidation, err, missing.Fields)
	case errors.Is(err, application.ErrInvalidInput):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeValidation, err)
	case errors.Is(err, ports.ErrNotFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeNotFound, err)
	case errors.Is(err, ports.ErrDuplicateStoreName):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeDuplicateName, err)
	case errors.Is(err, ports.ErrIdempotencyConflict):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeIdempotencyConflict, err)
	}
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
