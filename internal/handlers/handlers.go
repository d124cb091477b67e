package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard/internal/dto"
	apierrors "github.com/yukikurage/taskboard/internal/errors"
	"github.com/yukikurage/taskboard/internal/metrics"
	"github.com/yukikurage/taskboard/internal/middleware"
)

// Operation labels recorded in the resource_operations_total counter.
const (
	opList   = "list"
	opGet    = "get"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

func outcome(err error) string {
	var verr *apierrors.ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &verr):
		return "validation"
	case errors.Is(err, apierrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apierrors.ErrInvalidReference):
		return "invalid_reference"
	case errors.Is(err, apierrors.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}

// fail counts a failed operation and writes the error response.
func fail(c *gin.Context, resource, op string, err error) {
	metrics.IncrementResourceOperation(resource, op, outcome(err))
	apierrors.Respond(c, err)
}

func succeed(resource, op string) {
	metrics.IncrementResourceOperation(resource, op, outcome(nil))
}

// bindJSON decodes the request body and reports binding failures as
// validation errors.
func bindJSON(c *gin.Context, resource, op string, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		fail(c, resource, op, apierrors.FromBindingError(err))
		return false
	}
	return true
}

// pathID reads the id parsed by middleware.RequireResourceID.
func pathID(c *gin.Context, resource, op string) (uint64, bool) {
	id, ok := middleware.GetResourceID(c)
	if !ok {
		fail(c, resource, op, apierrors.NewValidationError("id", "must be a positive integer"))
		return 0, false
	}
	return id, true
}

func parseExpand(c *gin.Context, resource, op string, allowed []string) (dto.Expand, bool) {
	expand, err := dto.ParseExpand(c.QueryArray("expand"), allowed)
	if err != nil {
		fail(c, resource, op, err)
		return nil, false
	}
	return expand, true
}
