package handler

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/philipeduarte001/licitacao/internal/config"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	cfg *config.TemplateConfig
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cfg *config.TemplateConfig) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. The service is ready when both workbook
// templates are present on disk.
func (h *HealthHandler) Readiness(c *gin.Context) {
	for _, path := range []string{h.cfg.CoverPath, h.cfg.ResultPath} {
		if _, err := os.Stat(path); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "template not readable: " + path})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
