package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReadinessProbe reports whether a dependency needed to serve requests is usable.
type ReadinessProbe interface {
	Available() error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	ocr ReadinessProbe
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(ocr ReadinessProbe) *HealthHandler {
	return &HealthHandler{ocr: ocr}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.ocr.Available(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "ocr engine not available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
