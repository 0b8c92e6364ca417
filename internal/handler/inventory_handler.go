package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"inventory-api/internal/response"
	"inventory-api/internal/service"
)

// InventoryHandler serves the inventory-wide reporting endpoints
type InventoryHandler struct {
	inventoryService service.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// GetStats handles GET /api/inventory/stats/
func (h *InventoryHandler) GetStats(c *gin.Context) {
	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, "Invalid category ID")
			return
		}
		categoryID = &id
	}

	stats, err := h.inventoryService.GetStats(c.Request.Context(), categoryID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, stats)
}
