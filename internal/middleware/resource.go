package middleware

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard/internal/constants"
	apierrors "github.com/yukikurage/taskboard/internal/errors"
)

// RequireResourceID parses the :id path parameter and stores it in the
// context. Non-numeric ids are rejected before the handler runs, and ids past
// the storable range answer 404 since no row can carry them.
func RequireResourceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			apierrors.Respond(c, apierrors.NewValidationError("id", "must be a positive integer"))
			c.Abort()
			return
		}
		if id > math.MaxInt64 {
			apierrors.NotFound(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyResourceID, id)
		c.Next()
	}
}

// GetResourceID retrieves the parsed path id from context
func GetResourceID(c *gin.Context) (uint64, bool) {
	id, exists := c.Get(constants.ContextKeyResourceID)
	if !exists {
		return 0, false
	}

	switch v := id.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
