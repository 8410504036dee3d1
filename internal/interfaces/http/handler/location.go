package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	locationapp "github.com/stockops/backend/internal/application/location"
)

// LocationHandler handles location API endpoints
type LocationHandler struct {
	BaseHandler
	service *locationapp.Service
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(service *locationapp.Service) *LocationHandler {
	return &LocationHandler{service: service}
}

// RegisterRoutes registers the location routes
func (h *LocationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/locations", h.Create)
	rg.GET("/locations", h.List)
	rg.GET("/locations/:id", h.GetByID)
	rg.GET("/locations/:id/bins", h.ListBins)
	rg.POST("/locations/:id/bins", h.AddBin)
	rg.POST("/locations/:id/deactivate", h.Deactivate)
}

// Create creates a new location
func (h *LocationHandler) Create(c *gin.Context) {
	var req locationapp.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns a paginated list of locations
func (h *LocationHandler) List(c *gin.Context) {
	var filter locationapp.LocationListFilter
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

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// GetByID returns a location with its bins
func (h *LocationHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ListBins returns the bins of a location
func (h *LocationHandler) ListBins(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result.Bins)
}

// AddBin adds a bin to a location
func (h *LocationHandler) AddBin(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	var req locationapp.AddBinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddBin(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Deactivate deactivates a location
func (h *LocationHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	result, err := h.service.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
