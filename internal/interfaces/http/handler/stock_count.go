package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	stockcountapp "github.com/stockops/backend/internal/application/stockcount"
	"github.com/stockops/backend/internal/domain/stockcount"
)

// StockCountHandler handles stock count API endpoints
type StockCountHandler struct {
	BaseHandler
	service *stockcountapp.Service
}

// NewStockCountHandler creates a new StockCountHandler
func NewStockCountHandler(service *stockcountapp.Service) *StockCountHandler {
	return &StockCountHandler{service: service}
}

// RegisterRoutes registers the stock count routes
func (h *StockCountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/stock-counts", h.Create)
	rg.GET("/stock-counts", h.List)
	rg.GET("/stock-counts/pending-approval", h.ListPendingApproval)
	rg.GET("/stock-counts/by-number/:count_number", h.GetByCountNumber)
	rg.GET("/stock-counts/:id", h.GetByID)
	rg.GET("/stock-counts/:id/progress", h.GetProgress)
	rg.DELETE("/stock-counts/:id", h.Delete)
	rg.POST("/stock-counts/:id/lines", h.AddLine)
	rg.POST("/stock-counts/:id/lines/bulk", h.AddLines)
	rg.DELETE("/stock-counts/:id/lines/:line_id", h.RemoveLine)
	rg.POST("/stock-counts/:id/start", h.Start)
	rg.POST("/stock-counts/:id/counts", h.SaveCounts)
	rg.POST("/stock-counts/:id/submit", h.Submit)
	rg.POST("/stock-counts/:id/approve", h.Approve)
	rg.POST("/stock-counts/:id/reject", h.Reject)
	rg.POST("/stock-counts/:id/recount", h.Recount)
}

// Create creates a new stock count in draft status
func (h *StockCountHandler) Create(c *gin.Context) {
	var req stockcountapp.CreateStockCountRequest
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

// GetByID returns a stock count with its lines
func (h *StockCountHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock count ID format")
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// GetByCountNumber returns a stock count by its number
func (h *StockCountHandler) GetByCountNumber(c *gin.Context) {
	countNumber := c.Param("count_number")
	if countNumber == "" {
		h.BadRequest(c, "Count number is required")
		return
	}

	result, err := h.service.GetByCountNumber(c.Request.Context(), countNumber)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns a paginated list of stock counts
func (h *StockCountHandler) List(c *gin.Context) {
	var filter stockcountapp.StockCountListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := stockcount.Status(statusStr)
		if !status.IsValid() {
			h.BadRequest(c, "Invalid status value")
			return
		}
		filter.Status = &status
	}

	if locIDStr := c.Query("location_id"); locIDStr != "" {
		locID, err := uuid.Parse(locIDStr)
		if err != nil {
			h.BadRequest(c, "Invalid location ID format")
			return
		}
		filter.LocationID = &locID
	}

	if assigneeIDStr := c.Query("assigned_to_id"); assigneeIDStr != "" {
		assigneeID, err := uuid.Parse(assigneeIDStr)
		if err != nil {
			h.BadRequest(c, "Invalid assignee ID format")
			return
		}
		filter.AssignedToID = &assigneeID
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

// ListPendingApproval returns stock counts awaiting approval
func (h *StockCountHandler) ListPendingApproval(c *gin.Context) {
	var filter stockcountapp.StockCountListFilter
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

	items, total, err := h.service.ListPendingApproval(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// GetProgress returns the counting progress of a stock count
func (h *StockCountHandler) GetProgress(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock count ID format")
		return
	}

	result, err := h.service.GetProgress(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// AddLine adds one line to a draft stock count
func (h *StockCountHandler) AddLine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock count ID format")
		return
	}

	var req stockcountapp.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddLine(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// AddLines adds multiple lines to a draft stock count
func (h *StockCountHandler) AddLines(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock count ID format")
		return
	}

	var req stockcountapp.AddLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddLines(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// RemoveLine removes a line from a draft stock count
func (h *StockCountHandler) RemoveLine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock count ID format")
		return
	}

	lineID, err := uuid.Parse(c.Param("line_id"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	result, err := h.service.RemoveLine(c.Request.Context(), id, lineID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Start moves a draft stock count to in progress
func (h *StockCountHandler) Start(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock count ID format")
		return
	}

	result, err := h.service.Start(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// SaveCounts records a batch of counted quantities
func (h *StockCountHandler) SaveCounts(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock count ID format")
		return
	}

	var req stockcountapp.SaveCountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SaveCounts(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Submit submits a stock count for approval
func (h *StockCountHandler) Submit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock count ID format")
		return
	}

	result, err := h.service.Submit(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Approve approves a submitted stock count and applies its variances
// to inventory
func (h *StockCountHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock count ID format")
		return
	}

	var req stockcountapp.ApproveStockCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Approve(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Reject rejects a submitted stock count
func (h *StockCountHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock count ID format")
		return
	}

	var req stockcountapp.RejectStockCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Reject(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Recount moves a rejected stock count back to in progress
func (h *StockCountHandler) Recount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock count ID format")
		return
	}

	result, err := h.service.Recount(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete deletes a draft stock count
func (h *StockCountHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock count ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
