package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"tripdesk/services/aggregator"
	"tripdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FlightUsersHandler serves the aggregated partner booking endpoints.
type FlightUsersHandler struct {
	Service aggregator.AggregationService
}

// NewFlightUsersHandler creates the handler.
func NewFlightUsersHandler(service aggregator.AggregationService) *FlightUsersHandler {
	return &FlightUsersHandler{Service: service}
}

// GetAllFlightUsers handles GET /flight-users/all. Partial partner failure is
// still a 200; callers inspect websiteSummary for degraded completeness.
func (h *FlightUsersHandler) GetAllFlightUsers(c *gin.Context) {
	logger := utils.GetLogger()

	resp, err := h.Service.AggregateAll(c.Request.Context())
	if err != nil {
		logger.Error("aggregation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to aggregate flight users",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetFlightUsersByPartner handles GET /flight-users/:partnerId. Unknown and
// inactive partners are one 404 case.
func (h *FlightUsersHandler) GetFlightUsersByPartner(c *gin.Context) {
	logger := utils.GetLogger()
	partnerID := c.Param("partnerId")

	outcome, err := h.Service.AggregateOne(c.Request.Context(), partnerID)
	if err != nil {
		if errors.Is(err, aggregator.ErrPartnerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Website not found or inactive",
			})
			return
		}
		logger.Error("partner aggregation failed", zap.String("partner", partnerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch partner bookings",
			"error":   err.Error(),
		})
		return
	}

	if !outcome.Success {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":    false,
			"website":    outcome.PartnerName,
			"websiteId":  outcome.PartnerID,
			"error":      outcome.Error,
			"statusHint": outcome.StatusHint,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"website":   outcome.PartnerName,
		"websiteId": outcome.PartnerID,
		"count":     outcome.Count,
		"data":      outcome.Data,
	})
}

// DeleteFlightUserBooking handles DELETE /flight-users/:partnerId/:bookingId.
// The upstream status code is propagated on failure, defaulting to 500.
func (h *FlightUsersHandler) DeleteFlightUserBooking(c *gin.Context) {
	logger := utils.GetLogger()
	partnerID := c.Param("partnerId")
	bookingID := c.Param("bookingId")

	err := h.Service.DeleteBooking(c.Request.Context(), partnerID, bookingID)
	if err != nil {
		if errors.Is(err, aggregator.ErrPartnerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Website not found or inactive",
			})
			return
		}

		status := http.StatusInternalServerError
		var upstream *aggregator.UpstreamError
		if errors.As(err, &upstream) && upstream.Status > 0 {
			status = upstream.Status
		}
		logger.Warn("booking delete failed",
			zap.String("partner", partnerID),
			zap.String("bookingId", bookingID),
			zap.Int("status", status),
			zap.Error(err))
		c.JSON(status, gin.H{
			"success": false,
			"error":   err.Error(),
			"status":  strconv.Itoa(status),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Booking deleted successfully",
		"websiteId": partnerID,
		"bookingId": bookingID,
	})
}
