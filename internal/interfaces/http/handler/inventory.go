package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/stockops/backend/internal/application/inventory"
)

// InventoryHandler handles stock level and adjustment read endpoints
type InventoryHandler struct {
	BaseHandler
	service *inventoryapp.Service
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service *inventoryapp.Service) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// RegisterRoutes registers the inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inv := rg.Group("/inventory")
	inv.GET("/stock-levels", h.GetLevel)
	inv.GET("/locations/:id/stock-levels", h.ListLevelsByLocation)
	inv.GET("/items/:id/stock-levels", h.ListLevelsByItem)
	rg.GET("/stock-counts/:id/adjustments", h.ListAdjustmentsByStockCount)
}

// GetLevel returns the stock level for an item at a location,
// optionally scoped to a bin
func (h *InventoryHandler) GetLevel(c *gin.Context) {
	itemID, err := uuid.Parse(c.Query("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	locationID, err := uuid.Parse(c.Query("location_id"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	var binID *uuid.UUID
	if binIDStr := c.Query("bin_id"); binIDStr != "" {
		parsed, err := uuid.Parse(binIDStr)
		if err != nil {
			h.BadRequest(c, "Invalid bin ID format")
			return
		}
		binID = &parsed
	}

	result, err := h.service.GetLevel(c.Request.Context(), itemID, locationID, binID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ListLevelsByLocation returns stock levels at a location
func (h *InventoryHandler) ListLevelsByLocation(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	var filter inventoryapp.StockLevelListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	items, total, err := h.service.ListLevelsByLocation(c.Request.Context(), locationID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// ListLevelsByItem returns stock levels of an item across locations
func (h *InventoryHandler) ListLevelsByItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var filter inventoryapp.StockLevelListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, err := h.service.ListLevelsByItem(c.Request.Context(), itemID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, items)
}

// ListAdjustmentsByStockCount returns the adjustments applied by a
// stock count approval
func (h *InventoryHandler) ListAdjustmentsByStockCount(c *gin.Context) {
	stockCountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock count ID format")
		return
	}

	items, err := h.service.ListAdjustmentsByStockCount(c.Request.Context(), stockCountID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, items)
}
