package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockops/backend/internal/domain/shared"
	"github.com/stockops/backend/internal/domain/stockcount"
)

// StockCountModel is the persistence model for the StockCount aggregate root
type StockCountModel struct {
	AggregateModel
	CountNumber    string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	LocationID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	LocationName   string                `gorm:"type:varchar(200);not null"`
	Status         stockcount.Status     `gorm:"type:varchar(20);not null;default:'draft';index"`
	AssignedToID   uuid.UUID             `gorm:"type:uuid;not null"`
	AssignedToName string                `gorm:"type:varchar(100)"`
	Notes          string                `gorm:"type:varchar(500)"`
	ApprovedByID   *uuid.UUID            `gorm:"type:uuid"`
	ApprovedByName string                `gorm:"type:varchar(100)"`
	ApprovedAt     *time.Time            `gorm:""`
	Lines          []StockCountLineModel `gorm:"foreignKey:StockCountID;references:ID"`
}

// TableName returns the table name for GORM
func (StockCountModel) TableName() string {
	return "stock_counts"
}

// ToDomain converts the persistence model to a domain StockCount
func (m *StockCountModel) ToDomain() *stockcount.StockCount {
	sc := &stockcount.StockCount{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		CountNumber:    m.CountNumber,
		LocationID:     m.LocationID,
		LocationName:   m.LocationName,
		Status:         m.Status,
		AssignedToID:   m.AssignedToID,
		AssignedToName: m.AssignedToName,
		Notes:          m.Notes,
		ApprovedByID:   m.ApprovedByID,
		ApprovedByName: m.ApprovedByName,
		ApprovedAt:     m.ApprovedAt,
		Lines:          make([]stockcount.Line, len(m.Lines)),
	}
	for i, line := range m.Lines {
		sc.Lines[i] = *line.ToDomain()
	}
	sc.MarkLoaded()
	return sc
}

// FromDomain populates the persistence model from a domain StockCount
func (m *StockCountModel) FromDomain(sc *stockcount.StockCount) {
	m.FromDomainAggregateRoot(sc.BaseAggregateRoot)
	m.CountNumber = sc.CountNumber
	m.LocationID = sc.LocationID
	m.LocationName = sc.LocationName
	m.Status = sc.Status
	m.AssignedToID = sc.AssignedToID
	m.AssignedToName = sc.AssignedToName
	m.Notes = sc.Notes
	m.ApprovedByID = sc.ApprovedByID
	m.ApprovedByName = sc.ApprovedByName
	m.ApprovedAt = sc.ApprovedAt

	m.Lines = make([]StockCountLineModel, len(sc.Lines))
	for i := range sc.Lines {
		m.Lines[i] = *StockCountLineModelFromDomain(&sc.Lines[i])
	}
}

// StockCountModelFromDomain creates a persistence model from a domain StockCount
func StockCountModelFromDomain(sc *stockcount.StockCount) *StockCountModel {
	m := &StockCountModel{}
	m.FromDomain(sc)
	return m
}

// StockCountLineModel is the persistence model for a stock count line
type StockCountLineModel struct {
	BaseModel
	StockCountID     uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_line_count_item_bin,priority:1"`
	ItemID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_line_count_item_bin,priority:2"`
	ItemName         string          `gorm:"type:varchar(200);not null"`
	SKU              string          `gorm:"type:varchar(50);not null"`
	BinID            *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_line_count_item_bin,priority:3"`
	BinCode          string          `gorm:"type:varchar(50)"`
	ExpectedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CountedQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Variance         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Counted          bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (StockCountLineModel) TableName() string {
	return "stock_count_lines"
}

// ToDomain converts the persistence model to a domain Line
func (m *StockCountLineModel) ToDomain() *stockcount.Line {
	return &stockcount.Line{
		ID:               m.ID,
		StockCountID:     m.StockCountID,
		ItemID:           m.ItemID,
		ItemName:         m.ItemName,
		SKU:              m.SKU,
		BinID:            m.BinID,
		BinCode:          m.BinCode,
		ExpectedQuantity: m.ExpectedQuantity,
		CountedQuantity:  m.CountedQuantity,
		Variance:         m.Variance,
		Counted:          m.Counted,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// StockCountLineModelFromDomain creates a persistence model from a domain Line
func StockCountLineModelFromDomain(l *stockcount.Line) *StockCountLineModel {
	return &StockCountLineModel{
		BaseModel: BaseModel{
			ID:        l.ID,
			CreatedAt: l.CreatedAt,
			UpdatedAt: l.UpdatedAt,
		},
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
	}
}
