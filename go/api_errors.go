package storeserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/application"
	catalogtypes "github.com/Apurer/go-gin-store-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/ports"
	apierrors "github.com/Apurer/go-gin-store-api/internal/shared/errors"
)

var catalogResponder = apierrors.NewResponder("", apierrors.WithMappers(CatalogErrorMapper))

// respondBadRequest is used for bodies that never reached the service, such as malformed JSON.
func respondBadRequest(c *gin.Context, err error) {
	catalogResponder.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

func respondCatalogError(c *gin.Context, err error) {
	catalogResponder.RespondError(c, err)
}

// CatalogErrorMapper translates catalog sentinels into RFC 7807 problems.
func CatalogErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrInvalidInput), errors.Is(err, catalogtypes.ErrMissingFields):
		return apierrors.NewValidationProblem(err.Error(), invalidFields(err)), true
	case errors.Is(err, ports.ErrStoreNotFound):
		return apierrors.NewNotFoundProblem("store", err.Error()), true
	case errors.Is(err, ports.ErrItemNotFound):
		return apierrors.NewNotFoundProblem("item", err.Error()), true
	case errors.Is(err, ports.ErrNotFound):
		return apierrors.NewNotFoundProblem("", err.Error()), true
	case errors.Is(err, ports.ErrDuplicateStoreName), errors.Is(err, ports.ErrIdempotencyConflict):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func invalidFields(err error) []string {
	var missing *catalogtypes.MissingFieldsError
	if errors.As(err, &missing) {
		return missing.Fields
	}
	switch {
	case errors.Is(err, domain.ErrEmptyStoreName), errors.Is(err, domain.ErrEmptyItemName):
		return []string{"name"}
	case errors.Is(err, domain.ErrNegativePrice), errors.Is(err, domain.ErrInvalidPrice):
		return []string{"price"}
	case errors.Is(err, domain.ErrEmptyStoreID):
		return []string{"store_id"}
	}
	return nil
}
