package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/taskboard/internal/errors"
	"github.com/yukikurage/taskboard/internal/metrics"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRecovery_NoPanic(t *testing.T) {
	router := gin.New()
	router.Use(Recovery(zap.NewNop()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	w := serve(router, http.MethodGet, "/test")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecovery_WithPanic(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := serve(router, http.MethodGet, "/panic")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, apierrors.ErrCodeInternalError, body.Code)
	assert.Equal(t, "Internal server error", body.Detail)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestRequireResourceID(t *testing.T) {
	router := gin.New()
	router.GET("/users/:id", RequireResourceID(), func(c *gin.Context) {
		id, ok := GetResourceID(c)
		assert.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	w := serve(router, http.MethodGet, "/users/42")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":42}`, w.Body.String())

	for _, bad := range []string{"/users/abc", "/users/-1", "/users/0"} {
		w := serve(router, http.MethodGet, bad)
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)

		var body apierrors.APIError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, apierrors.ErrCodeInvalidInput, body.Code)
	}
}

func TestRequireResourceID_BeyondStorableRange(t *testing.T) {
	router := gin.New()
	router.GET("/users/:id", RequireResourceID(), func(c *gin.Context) {
		t.Fatal("handler must not run")
	})

	w := serve(router, http.MethodGet, "/users/9223372036854775808")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, apierrors.ErrCodeNotFound, body.Code)

	w = serve(router, http.MethodGet, "/users/18446744073709551616")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetResourceID_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetResourceID(c)
	assert.False(t, ok)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	router := gin.New()
	router.Use(RequestLogger(zap.New(core)))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/fail", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusInternalServerError)
	})

	serve(router, http.MethodGet, "/ok?skip=1")
	serve(router, http.MethodGet, "/fail")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, "skip=1", entries[0].ContextMap()["query"])
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.Contains(t, entries[1].ContextMap()["errors"], assert.AnError.Error())
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	router := gin.New()
	router.Use(Metrics())
	router.GET("/projects/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.CollectAndCount(metrics.HTTPRequestDuration)
	serve(router, http.MethodGet, "/projects/1")
	serve(router, http.MethodGet, "/projects/2")

	assert.Equal(t, before+1, testutil.CollectAndCount(metrics.HTTPRequestDuration))
}
