package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard/internal/constants"
	apierrors "github.com/yukikurage/taskboard/internal/errors"
)

// PaginationParams holds the offset/limit window of a list request
type PaginationParams struct {
	Skip  int
	Limit int
}

// DefaultPagination returns the window used when the caller supplies none
func DefaultPagination() PaginationParams {
	return PaginationParams{Skip: constants.DefaultSkip, Limit: constants.DefaultLimit}
}

// GetPaginationParams extracts and validates skip/limit from the query string.
// Both must be non-negative integers; limit is capped at constants.MaxLimit.
func GetPaginationParams(c *gin.Context) (PaginationParams, error) {
	params := DefaultPagination()
	errs := &apierrors.ValidationError{}

	if raw, ok := c.GetQuery("skip"); ok {
		params.Skip = parseNonNegative(errs, "skip", raw)
	}
	if raw, ok := c.GetQuery("limit"); ok {
		params.Limit = parseNonNegative(errs, "limit", raw)
	}
	if err := errs.OrNil(); err != nil {
		return PaginationParams{}, err
	}

	if params.Limit > constants.MaxLimit {
		params.Limit = constants.MaxLimit
	}
	return params, nil
}

func parseNonNegative(errs *apierrors.ValidationError, field, raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		errs.Add(field, "must be an integer")
		return 0
	}
	if n < 0 {
		errs.Add(field, "must be greater than or equal to 0")
		return 0
	}
	return n
}
