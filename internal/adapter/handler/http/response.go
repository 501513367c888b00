package http

import (
	"errors"
	"net/http"

	"github.com/motohub/dealership_service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Message string `json:"message"`
}

func newErrorResponse(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Message: message})
}

func getAuthPayload(c *gin.Context, key string) (*domain.TokenPayload, bool) {
	value, exists := c.Get(key)
	if !exists {
		return nil, false
	}
	payload, ok := value.(*domain.TokenPayload)
	return payload, ok
}

// branchScope resolves which branch a listing query covers. Head office may
// ask for any branch (or all of them with an empty filter); everyone else
// is pinned to their own filial.
func branchScope(payload *domain.TokenPayload, requested string) string {
	if payload.SeesAllBranches() {
		return requested
	}
	return payload.Branch
}

// saleErrorStatus maps the sale transaction error taxonomy onto HTTP
// statuses: data-level rejections are 400, everything else is 500.
func saleErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidCustomer),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrRevisionFieldsMissing),
		errors.Is(err, domain.ErrPartNotFound),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrMotorcycleUnavailable):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// saleErrorMessage keeps the wire message short and human-readable; the
// presentation layer surfaces it verbatim.
func saleErrorMessage(err error) string {
	for _, known := range []error{
		domain.ErrInvalidCustomer,
		domain.ErrEmptyCart,
		domain.ErrRevisionFieldsMissing,
		domain.ErrPartNotFound,
		domain.ErrInsufficientStock,
		domain.ErrMotorcycleUnavailable,
		domain.ErrFinalizeSale,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "failed to finalize sale"
}
