package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskboard/internal/constants"
	apierrors "github.com/yukikurage/taskboard/internal/errors"
)

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/tasks?"+query, nil)
	return c
}

func TestGetPaginationParams_Defaults(t *testing.T) {
	params, err := GetPaginationParams(contextWithQuery(""))
	require.NoError(t, err)
	assert.Equal(t, 0, params.Skip)
	assert.Equal(t, 100, params.Limit)
}

func TestGetPaginationParams_Explicit(t *testing.T) {
	params, err := GetPaginationParams(contextWithQuery("skip=20&limit=0"))
	require.NoError(t, err)
	assert.Equal(t, 20, params.Skip)
	assert.Equal(t, 0, params.Limit)
}

func TestGetPaginationParams_CapsLimit(t *testing.T) {
	params, err := GetPaginationParams(contextWithQuery("limit=50000"))
	require.NoError(t, err)
	assert.Equal(t, constants.MaxLimit, params.Limit)
}

func TestGetPaginationParams_Invalid(t *testing.T) {
	_, err := GetPaginationParams(contextWithQuery("skip=-1&limit=ten"))

	var verr *apierrors.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "skip", verr.Fields[0].Field)
	assert.Equal(t, "limit", verr.Fields[1].Field)
}
