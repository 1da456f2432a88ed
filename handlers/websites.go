package handlers

import (
	"errors"
	"net/http"

	"tripdesk/services/aggregator"
	"tripdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebsitesHandler serves the partner registry configuration endpoints.
type WebsitesHandler struct {
	Service aggregator.AggregationService
}

// NewWebsitesHandler creates the handler.
func NewWebsitesHandler(service aggregator.AggregationService) *WebsitesHandler {
	return &WebsitesHandler{Service: service}
}

// GetWebsitesConfig handles GET /websites/config. Unlike the data endpoints,
// this lists inactive partners too.
func (h *WebsitesHandler) GetWebsitesConfig(c *gin.Context) {
	websites := h.Service.Partners()
	active, total := h.Service.PartnerCounts()

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"totalWebsites":  total,
		"activeWebsites": active,
		"websites":       websites,
	})
}

// UpdateWebsiteStatus handles PATCH /websites/:partnerId/status with body
// {active: boolean}.
func (h *WebsitesHandler) UpdateWebsiteStatus(c *gin.Context) {
	logger := utils.GetLogger()
	partnerID := c.Param("partnerId")

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Field 'active' must be a boolean",
		})
		return
	}

	website, err := h.Service.SetPartnerActive(c.Request.Context(), partnerID, *req.Active)
	if err != nil {
		if errors.Is(err, aggregator.ErrPartnerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Website not found",
			})
			return
		}
		logger.Error("website status update failed", zap.String("partner", partnerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to update website status",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Website status updated",
		"website": gin.H{
			"id":     website.ID,
			"name":   website.Name,
			"active": website.Active,
		},
	})
}
