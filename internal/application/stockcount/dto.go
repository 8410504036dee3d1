package stockcount

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockops/backend/internal/domain/stockcount"
)

// ===================== Request DTOs =====================

// CreateStockCountRequest represents a request to create a stock count
type CreateStockCountRequest struct {
	LocationID     uuid.UUID `json:"location_id" binding:"required"`
	AssignedToID   uuid.UUID `json:"assigned_to_id" binding:"required"`
	AssignedToName string    `json:"assigned_to_name" binding:"required"`
	Notes          string    `json:"notes" binding:"max=500"`
}

// AddLineRequest represents a request to add a line to a stock count
type AddLineRequest struct {
	ItemID uuid.UUID  `json:"item_id" binding:"required"`
	BinID  *uuid.UUID `json:"bin_id"`
}

// AddLinesRequest represents a bulk request to add lines
type AddLinesRequest struct {
	Lines []AddLineRequest `json:"lines" binding:"required,min=1"`
}

// LineCountRequest represents one counted quantity in a save-counts batch
type LineCountRequest struct {
	LineID   uuid.UUID       `json:"line_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// SaveCountsRequest represents a batch of counted quantities
type SaveCountsRequest struct {
	Counts []LineCountRequest `json:"counts" binding:"required,min=1"`
}

// ApproveStockCountRequest represents a request to approve a stock count
type ApproveStockCountRequest struct {
	ApproverID   uuid.UUID `json:"approver_id" binding:"required"`
	ApproverName string    `json:"approver_name" binding:"required"`
	Note         string    `json:"note" binding:"max=500"`
}

// RejectStockCountRequest represents a request to reject a stock count
type RejectStockCountRequest struct {
	RejectorID   uuid.UUID `json:"rejector_id" binding:"required"`
	RejectorName string    `json:"rejector_name" binding:"required"`
	Reason       string    `json:"reason" binding:"required,min=1,max=500"`
}

// StockCountListFilter represents filter options for the stock count list
type StockCountListFilter struct {
	Search       string             `form:"search"`
	LocationID   *uuid.UUID         `form:"location_id"`
	AssignedToID *uuid.UUID         `form:"assigned_to_id"`
	Status       *stockcount.Status `form:"status"`
	Page         int                `form:"page" binding:"omitempty,min=1"`
	PageSize     int                `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string             `form:"order_by"`
	OrderDir     string             `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ===================== Response DTOs =====================

// LineResponse represents a stock count line in API responses
type LineResponse struct {
	ID               uuid.UUID       `json:"id"`
	StockCountID     uuid.UUID       `json:"stock_count_id"`
	ItemID           uuid.UUID       `json:"item_id"`
	ItemName         string          `json:"item_name"`
	SKU              string          `json:"sku"`
	BinID            *uuid.UUID      `json:"bin_id,omitempty"`
	BinCode          string          `json:"bin_code,omitempty"`
	ExpectedQuantity decimal.Decimal `json:"expected_quantity"`
	CountedQuantity  decimal.Decimal `json:"counted_quantity"`
	Variance         decimal.Decimal `json:"variance"`
	Counted          bool            `json:"counted"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// StockCountResponse represents a full stock count in API responses
type StockCountResponse struct {
	ID             uuid.UUID      `json:"id"`
	CountNumber    string         `json:"count_number"`
	LocationID     uuid.UUID      `json:"location_id"`
	LocationName   string         `json:"location_name"`
	Status         string         `json:"status"`
	AssignedToID   uuid.UUID      `json:"assigned_to_id"`
	AssignedToName string         `json:"assigned_to_name"`
	Notes          string         `json:"notes,omitempty"`
	ApprovedByID   *uuid.UUID     `json:"approved_by_id,omitempty"`
	ApprovedByName string         `json:"approved_by_name,omitempty"`
	ApprovedAt     *time.Time     `json:"approved_at,omitempty"`
	Lines          []LineResponse `json:"lines"`
	LineCount      int            `json:"line_count"`
	CountedLines   int            `json:"counted_lines"`
	VarianceLines  int            `json:"variance_lines"`
	Version        int            `json:"version"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// StockCountListResponse represents a stock count in list responses
type StockCountListResponse struct {
	ID             uuid.UUID  `json:"id"`
	CountNumber    string     `json:"count_number"`
	LocationID     uuid.UUID  `json:"location_id"`
	LocationName   string     `json:"location_name"`
	Status         string     `json:"status"`
	AssignedToName string     `json:"assigned_to_name"`
	LineCount      int        `json:"line_count"`
	CountedLines   int        `json:"counted_lines"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ProgressResponse reports counting progress for a stock count
type ProgressResponse struct {
	StockCountID    uuid.UUID `json:"stock_count_id"`
	Status          string    `json:"status"`
	TotalLines      int       `json:"total_lines"`
	CountedLines    int       `json:"counted_lines"`
	UncountedLines  int       `json:"uncounted_lines"`
	VarianceLines   int       `json:"variance_lines"`
	ProgressPercent float64   `json:"progress_percent"`
}

// SubmitResponse wraps the submitted count with a coverage warning when
// some lines were never counted
type SubmitResponse struct {
	StockCount StockCountResponse `json:"stock_count"`
	Warning    string             `json:"warning,omitempty"`
}

// ===================== Converters =====================

// ToLineResponse converts a domain line to a response DTO
func ToLineResponse(l *stockcount.Line) LineResponse {
	return LineResponse{
		ID:               l.ID,
		StockCountID:     l.StockCountID,
		ItemID:           l.ItemID,
		ItemName:         l.ItemName,
		SKU:              l.SKU,
		BinID:            l.BinID,
		BinCode:          l.BinCode,
		ExpectedQuantity: l.ExpectedQuantity,
		CountedQuantity:  l.CountedQuantity,
		Variance:         l.Variance,
		Counted:          l.Counted,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

// ToStockCountResponse converts a domain stock count to a response DTO
func ToStockCountResponse(sc *stockcount.StockCount) StockCountResponse {
	lines := make([]LineResponse, len(sc.Lines))
	for i := range sc.Lines {
		lines[i] = ToLineResponse(&sc.Lines[i])
	}

	return StockCountResponse{
		ID:             sc.ID,
		CountNumber:    sc.CountNumber,
		LocationID:     sc.LocationID,
		LocationName:   sc.LocationName,
		Status:         sc.Status.String(),
		AssignedToID:   sc.AssignedToID,
		AssignedToName: sc.AssignedToName,
		Notes:          sc.Notes,
		ApprovedByID:   sc.ApprovedByID,
		ApprovedByName: sc.ApprovedByName,
		ApprovedAt:     sc.ApprovedAt,
		Lines:          lines,
		LineCount:      len(sc.Lines),
		CountedLines:   sc.CountedLines(),
		VarianceLines:  len(sc.VarianceLines()),
		Version:        sc.GetVersion(),
		CreatedAt:      sc.CreatedAt,
		UpdatedAt:      sc.UpdatedAt,
	}
}

// ToStockCountListResponse converts a domain stock count to a list DTO
func ToStockCountListResponse(sc *stockcount.StockCount) StockCountListResponse {
	return StockCountListResponse{
		ID:             sc.ID,
		CountNumber:    sc.CountNumber,
		LocationID:     sc.LocationID,
		LocationName:   sc.LocationName,
		Status:         sc.Status.String(),
		AssignedToName: sc.AssignedToName,
		LineCount:      len(sc.Lines),
		CountedLines:   sc.CountedLines(),
		ApprovedAt:     sc.ApprovedAt,
		CreatedAt:      sc.CreatedAt,
		UpdatedAt:      sc.UpdatedAt,
	}
}

// ToStockCountListResponses converts a slice of stock counts to list DTOs
func ToStockCountListResponses(scs []stockcount.StockCount) []StockCountListResponse {
	responses := make([]StockCountListResponse, len(scs))
	for i := range scs {
		responses[i] = ToStockCountListResponse(&scs[i])
	}
	return responses
}

// ToProgressResponse builds a progress report for a stock count
func ToProgressResponse(sc *stockcount.StockCount) ProgressResponse {
	return ProgressResponse{
		StockCountID:    sc.ID,
		Status:          sc.Status.String(),
		TotalLines:      len(sc.Lines),
		CountedLines:    sc.CountedLines(),
		UncountedLines:  len(sc.UncountedLines()),
		VarianceLines:   len(sc.VarianceLines()),
		ProgressPercent: sc.Progress(),
	}
}
