package handlers

import (
	"net/http"

	"tripdesk/models"
	"tripdesk/services/item"
	"tripdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ItemHandler serves the billable item catalogue endpoints.
type ItemHandler struct {
	ItemService item.ItemService
}

// NewItemHandler creates the handler.
func NewItemHandler(itemService item.ItemService) *ItemHandler {
	return &ItemHandler{ItemService: itemService}
}

// CreateItemHandler handles POST /api/items.
func (h *ItemHandler) CreateItemHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var it models.Item
	if err := c.ShouldBindJSON(&it); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	created, err := h.ItemService.CreateItem(it)
	if err != nil {
		logger.Error("item create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "item": created})
}

// GetItemHandler handles GET /api/items/:id.
func (h *ItemHandler) GetItemHandler(c *gin.Context) {
	id := c.Param("id")

	it, err := h.ItemService.GetItemByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "item": it})
}

// GetAllItemsHandler handles GET /api/items.
func (h *ItemHandler) GetAllItemsHandler(c *gin.Context) {
	logger := utils.GetLogger()

	items, err := h.ItemService.GetAllItems()
	if err != nil {
		logger.Error("item list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(items), "items": items})
}

// UpdateItemHandler handles PUT /api/items/:id.
func (h *ItemHandler) UpdateItemHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	var it models.Item
	if err := c.ShouldBindJSON(&it); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	it.ID = id

	updated, err := h.ItemService.UpdateItem(it)
	if err != nil {
		logger.Error("item update failed", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "item": updated})
}

// DeleteItemHandler handles DELETE /api/items/:id.
func (h *ItemHandler) DeleteItemHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	if err := h.ItemService.DeleteItem(id); err != nil {
		logger.Error("item delete failed", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item deleted"})
}
