package handlers

import (
	"net/http"

	"tripdesk/services/aggregator"
	"tripdesk/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves the liveness endpoint with partner counts and the
// latest dependency health snapshot.
type HealthHandler struct {
	Service aggregator.AggregationService
}

// NewHealthHandler creates the handler.
func NewHealthHandler(service aggregator.AggregationService) *HealthHandler {
	return &HealthHandler{Service: service}
}

// GetHealth handles GET /health.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	active, total := h.Service.PartnerCounts()

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"status":         "ok",
		"service":        "tripdesk",
		"activeWebsites": active,
		"totalWebsites":  total,
		"dependencies":   utils.GetHealthStatus(),
	})
}
