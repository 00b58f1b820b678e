package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/timmy/newsdeck/internal/api/middleware"
)

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db HealthCheck
}

// NewHealthHandler creates a health handler. db may be nil.
func NewHealthHandler(db HealthCheck) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health returns 200 {"status":"ok"} or 503 when the database is unreachable.
func (h *HealthHandler) Health(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db(ctx); err != nil {
			middleware.GetLogger(c).WithError(err).Warn("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
