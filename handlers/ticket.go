package handlers

import (
	"errors"
	"net/http"

	"tripdesk/models"
	"tripdesk/services/payment"
	"tripdesk/services/ticket"
	"tripdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TicketHandler serves ticket request CRM endpoints.
type TicketHandler struct {
	TicketService ticket.TicketService
}

// NewTicketHandler creates the handler.
func NewTicketHandler(ticketService ticket.TicketService) *TicketHandler {
	return &TicketHandler{TicketService: ticketService}
}

// CreateTicketRequestHandler handles POST /api/ticket-requests. The
// authenticated consultant becomes the owner.
func (h *TicketHandler) CreateTicketRequestHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if userID, ok := c.Get("userID"); ok {
		if id, isStr := userID.(string); isStr {
			req.ConsultantID = id
		}
	}

	created, err := h.TicketService.CreateRequest(req)
	if err != nil {
		if errors.Is(err, ticket.ErrUnknownItem) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		logger.Error("ticket request create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "request": created})
}

// GetTicketRequestHandler handles GET /api/ticket-requests/:id.
func (h *TicketHandler) GetTicketRequestHandler(c *gin.Context) {
	id := c.Param("id")

	req, err := h.TicketService.GetRequestByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "request": req})
}

// GetAllTicketRequestsHandler handles GET /api/ticket-requests. The optional
// ?consultant=<id> query filters to one consultant's requests.
func (h *TicketHandler) GetAllTicketRequestsHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var (
		reqs []models.TicketRequest
		err  error
	)
	if consultant := c.Query("consultant"); consultant != "" {
		reqs, err = h.TicketService.GetRequestsByConsultant(consultant)
	} else {
		reqs, err = h.TicketService.GetAllRequests()
	}
	if err != nil {
		logger.Error("ticket request list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(reqs), "requests": reqs})
}

// UpdateTicketRequestHandler handles PUT /api/ticket-requests/:id.
func (h *TicketHandler) UpdateTicketRequestHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	var req models.TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	req.ID = id

	updated, err := h.TicketService.UpdateRequest(req)
	if err != nil {
		logger.Error("ticket request update failed", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "request": updated})
}

// DeleteTicketRequestHandler handles DELETE /api/ticket-requests/:id.
func (h *TicketHandler) DeleteTicketRequestHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	if err := h.TicketService.DeleteRequest(id); err != nil {
		logger.Error("ticket request delete failed", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Ticket request deleted"})
}

// ListTicketStatusesHandler handles GET /api/ticket-requests/:id/statuses.
func (h *TicketHandler) ListTicketStatusesHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	statuses, err := h.TicketService.ListStatuses(id)
	if err != nil {
		logger.Error("status history list failed", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(statuses), "statuses": statuses})
}

// ChargeTicketRequestHandler handles POST /api/ticket-requests/:id/charge.
// Body names the gateway and carries either a Stripe payment method token or
// raw card fields for Authorize.Net.
func (h *TicketHandler) ChargeTicketRequestHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	var charge models.ChargeRequest
	if err := c.ShouldBindJSON(&charge); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := h.TicketService.Charge(c.Request.Context(), id, charge)
	if err != nil {
		if errors.Is(err, payment.ErrUnsupportedGateway) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		logger.Error("charge failed", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}
