package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard/internal/constants"
	apierrors "github.com/yukikurage/taskboard/internal/errors"
	"go.uber.org/zap"
)

// Pinger reports whether the backing database is reachable.
type Pinger func(ctx context.Context) error

type SystemHandler struct {
	ping Pinger
	log  *zap.Logger
}

func NewSystemHandler(ping Pinger, log *zap.Logger) *SystemHandler {
	return &SystemHandler{ping: ping, log: log}
}

// Root returns the static welcome payload
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to " + constants.APIName,
		"version": constants.APIVersion,
		"endpoints": gin.H{
			"users":    "/users",
			"projects": "/projects",
			"tasks":    "/tasks",
			"health":   "/health",
			"metrics":  "/metrics",
		},
	})
}

// Health reports liveness without touching the database
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Ready pings the database
func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		h.log.Warn("readiness check failed", zap.Error(err))
		apierrors.ServiceUnavailable(c, "Database not ready")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
