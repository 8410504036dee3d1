package location

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stockops/backend/internal/domain/location"
	"github.com/stockops/backend/internal/domain/shared"
)

// ===================== DTOs =====================

// CreateLocationRequest represents a request to create a location
type CreateLocationRequest struct {
	Code string `json:"code" binding:"required,max=50"`
	Name string `json:"name" binding:"required,max=200"`
}

// AddBinRequest represents a request to add a bin to a location
type AddBinRequest struct {
	Code string `json:"code" binding:"required,max=50"`
}

// LocationListFilter represents filter options for the location list
type LocationListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// BinResponse represents a bin in API responses
type BinResponse struct {
	ID         uuid.UUID `json:"id"`
	LocationID uuid.UUID `json:"location_id"`
	Code       string    `json:"code"`
	CreatedAt  time.Time `json:"created_at"`
}

// LocationResponse represents a location in API responses
type LocationResponse struct {
	ID        uuid.UUID     `json:"id"`
	Code      string        `json:"code"`
	Name      string        `json:"name"`
	Active    bool          `json:"active"`
	Bins      []BinResponse `json:"bins"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ToBinResponse converts a domain bin to a response DTO
func ToBinResponse(bin *location.Bin) BinResponse {
	return BinResponse{
		ID:         bin.ID,
		LocationID: bin.LocationID,
		Code:       bin.Code,
		CreatedAt:  bin.CreatedAt,
	}
}

// ToLocationResponse converts a domain location to a response DTO
func ToLocationResponse(loc *location.Location) LocationResponse {
	bins := make([]BinResponse, len(loc.Bins))
	for i := range loc.Bins {
		bins[i] = ToBinResponse(&loc.Bins[i])
	}

	return LocationResponse{
		ID:        loc.ID,
		Code:      loc.Code,
		Name:      loc.Name,
		Active:    loc.Active,
		Bins:      bins,
		CreatedAt: loc.CreatedAt,
		UpdatedAt: loc.UpdatedAt,
	}
}

// ToLocationResponses converts a slice of locations to response DTOs
func ToLocationResponses(locs []location.Location) []LocationResponse {
	responses := make([]LocationResponse, len(locs))
	for i := range locs {
		responses[i] = ToLocationResponse(&locs[i])
	}
	return responses
}

// ===================== Service =====================

// Service provides application services for locations and bins
type Service struct {
	locationRepo location.Repository
}

// NewService creates a new location Service
func NewService(locationRepo location.Repository) *Service {
	return &Service{locationRepo: locationRepo}
}

// Create creates a new location with a unique code
func (s *Service) Create(ctx context.Context, req CreateLocationRequest) (*LocationResponse, error) {
	if existing, err := s.locationRepo.FindByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	loc, err := location.NewLocation(req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.locationRepo.Save(ctx, loc); err != nil {
		return nil, err
	}

	response := ToLocationResponse(loc)
	return &response, nil
}

// AddBin adds a bin to a location
func (s *Service) AddBin(ctx context.Context, locationID uuid.UUID, req AddBinRequest) (*LocationResponse, error) {
	loc, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return nil, err
	}

	if _, err := loc.AddBin(req.Code); err != nil {
		return nil, err
	}

	if err := s.locationRepo.Save(ctx, loc); err != nil {
		return nil, err
	}

	response := ToLocationResponse(loc)
	return &response, nil
}

// GetByID retrieves a location with its bins
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*LocationResponse, error) {
	loc, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToLocationResponse(loc)
	return &response, nil
}

// List retrieves a paginated list of locations
func (s *Service) List(ctx context.Context, filter LocationListFilter) ([]LocationResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}

	locs, err := s.locationRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.locationRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToLocationResponses(locs), total, nil
}

// Deactivate marks a location inactive
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) (*LocationResponse, error) {
	loc, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	loc.Deactivate()
	if err := s.locationRepo.Save(ctx, loc); err != nil {
		return nil, err
	}

	response := ToLocationResponse(loc)
	return &response, nil
}
