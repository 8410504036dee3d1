package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stockops/backend/internal/domain/catalog"
	"github.com/stockops/backend/internal/domain/shared"
)

// ===================== DTOs =====================

// CreateItemRequest represents a request to create a catalog item
type CreateItemRequest struct {
	SKU     string `json:"sku" binding:"required,max=50"`
	Name    string `json:"name" binding:"required,max=200"`
	Barcode string `json:"barcode" binding:"max=50"`
	Unit    string `json:"unit" binding:"required,max=20"`
}

// UpdateItemRequest represents a request to update a catalog item
type UpdateItemRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Barcode string `json:"barcode" binding:"max=50"`
}

// ItemListFilter represents filter options for the item list
type ItemListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ItemResponse represents a catalog item in API responses
type ItemResponse struct {
	ID        uuid.UUID `json:"id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Barcode   string    `json:"barcode,omitempty"`
	Unit      string    `json:"unit"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToItemResponse converts a domain item to a response DTO
func ToItemResponse(item *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:        item.ID,
		SKU:       item.SKU,
		Name:      item.Name,
		Barcode:   item.Barcode,
		Unit:      item.Unit,
		Status:    string(item.Status),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

// ToItemResponses converts a slice of items to response DTOs
func ToItemResponses(items []catalog.Item) []ItemResponse {
	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}
	return responses
}

// ===================== Service =====================

// Service provides application services for the item catalog
type Service struct {
	itemRepo catalog.ItemRepository
}

// NewService creates a new catalog Service
func NewService(itemRepo catalog.ItemRepository) *Service {
	return &Service{itemRepo: itemRepo}
}

// Create creates a new catalog item with a unique SKU
func (s *Service) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	exists, err := s.itemRepo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	item, err := catalog.NewItem(req.SKU, req.Name, req.Unit)
	if err != nil {
		return nil, err
	}
	item.Barcode = req.Barcode

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// Update updates an item's name and barcode
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := item.Update(req.Name, req.Barcode); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// GetByID retrieves an item by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// GetByBarcode resolves an item by its barcode, the lookup count screens
// use while scanning
func (s *Service) GetByBarcode(ctx context.Context, barcode string) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// List retrieves a paginated list of items
func (s *Service) List(ctx context.Context, filter ItemListFilter) ([]ItemResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}

	items, err := s.itemRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.itemRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToItemResponses(items), total, nil
}

// Deactivate marks an item inactive
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Deactivate()
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}
