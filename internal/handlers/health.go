package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tunesage/internal/cache"
	"tunesage/internal/services"
)

// HealthHandler reports service liveness and collaborator reachability
type HealthHandler struct {
	catalog services.CatalogService
	cache   cache.Cache
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(catalog services.CatalogService, cacheClient cache.Cache) *HealthHandler {
	return &HealthHandler{catalog: catalog, cache: cacheClient}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	status := http.StatusOK
	checks := gin.H{}

	if h.catalog != nil {
		if err := h.catalog.Health(ctx); err != nil {
			checks["catalog"] = "unhealthy: " + err.Error()
			status = http.StatusServiceUnavailable
		} else {
			checks["catalog"] = "healthy"
		}
	}

	if h.cache != nil {
		if err := h.cache.Health(ctx); err != nil {
			checks["cache"] = "unhealthy: " + err.Error()
			status = http.StatusServiceUnavailable
		} else {
			checks["cache"] = "healthy"
		}
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	c.JSON(status, gin.H{
		"status": overall,
		"checks": checks,
	})
}
