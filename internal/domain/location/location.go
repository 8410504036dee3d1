package location

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockops/backend/internal/domain/shared"
)

// Location represents a physical place stock is counted at, such as a
// warehouse, store room or retail floor.
type Location struct {
	shared.BaseAggregateRoot
	Code   string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name   string `gorm:"type:varchar(200);not null"`
	Active bool   `gorm:"not null;default:true"`
	Bins   []Bin  `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Location) TableName() string {
	return "locations"
}

// Bin is an optional sub-division of a location (shelf, aisle slot).
// Count lines may target a bin to pinpoint where the count happened.
type Bin struct {
	shared.BaseEntity
	LocationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bin_location_code,priority:1"`
	Code       string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_bin_location_code,priority:2"`
}

// TableName returns the table name for GORM
func (Bin) TableName() string {
	return "bins"
}

// NewLocation creates a new active location
func NewLocation(code, name string) (*Location, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Location code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Location name cannot be empty")
	}

	return &Location{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Active:            true,
		Bins:              make([]Bin, 0),
	}, nil
}

// AddBin adds a bin with a code unique within the location
func (l *Location) AddBin(code string) (*Bin, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Bin code cannot be empty")
	}
	for _, b := range l.Bins {
		if b.Code == code {
			return nil, shared.ErrAlreadyExists
		}
	}

	bin := Bin{
		BaseEntity: shared.NewBaseEntity(),
		LocationID: l.ID,
		Code:       code,
	}
	l.Bins = append(l.Bins, bin)
	l.UpdatedAt = time.Now()
	return &l.Bins[len(l.Bins)-1], nil
}

// FindBin returns the bin with the given ID, if present
func (l *Location) FindBin(binID uuid.UUID) (*Bin, bool) {
	for i := range l.Bins {
		if l.Bins[i].ID == binID {
			return &l.Bins[i], true
		}
	}
	return nil, false
}

// Deactivate marks the location inactive. New counts should not target
// inactive locations; existing counts are unaffected.
func (l *Location) Deactivate() {
	l.Active = false
	l.UpdatedAt = time.Now()
}

// Activate marks the location active
func (l *Location) Activate() {
	l.Active = true
	l.UpdatedAt = time.Now()
}
