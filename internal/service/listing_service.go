package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"campusmarket/internal/apperr"
	"campusmarket/internal/cache"
	"campusmarket/internal/model"
	"campusmarket/internal/repository"
)

const listingCacheTTL = 5 * time.Minute

// CreateListingInput carries the fields of a new listing.
type CreateListingInput struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Condition   model.Condition
	Category    model.Category
	Images      []string
	SellerID    uint
}

// UpdateListingInput carries a partial listing patch; nil pointers mean
// "leave unchanged".
type UpdateListingInput struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Condition   *model.Condition
	Category    *model.Category
	Images      *[]string
	IsAvailable *bool
}

// ListingService exposes listing operations.
type ListingService interface {
	GetAllListings(ctx context.Context, filter repository.ListingFilter) ([]model.Listing, error)
	GetListingByID(ctx context.Context, id uint) (*model.Listing, error)
	CreateListing(ctx context.Context, input CreateListingInput) (*model.Listing, error)
	UpdateListing(ctx context.Context, id uint, input UpdateListingInput) (*model.Listing, error)
	DeleteListing(ctx context.Context, id uint) error
}

type listingService struct {
	listings repository.ListingRepository
	cache    *cache.Client
}

// NewListingService builds a ListingService with repository and cache.
func NewListingService(listings repository.ListingRepository, cache *cache.Client) ListingService {
	return &listingService{listings: listings, cache: cache}
}

func (s *listingService) cacheKey(id uint) string {
	return fmt.Sprintf("listing:%d", id)
}

func (s *listingService) GetAllListings(ctx context.Context, filter repository.ListingFilter) ([]model.Listing, error) {
	return s.listings.List(ctx, filter)
}

// GetListingByID serves the detail view through the read cache. The ownership
// gate also resolves listings here, so a hot listing is authorized without a
// second store round trip.
func (s *listingService) GetListingByID(ctx context.Context, id uint) (*model.Listing, error) {
	var cached model.Listing
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Listing not found with id %d", id)
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), listing, listingCacheTTL)
	return listing, nil
}

func (s *listingService) CreateListing(ctx context.Context, input CreateListingInput) (*model.Listing, error) {
	images := input.Images
	if images == nil {
		images = []string{}
	}

	listing := &model.Listing{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Condition:   input.Condition,
		Category:    input.Category,
		Images:      datatypes.NewJSONSlice(images),
		IsAvailable: true,
		SellerID:    input.SellerID,
	}

	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return listing, nil
}

func (s *listingService) UpdateListing(ctx context.Context, id uint, input UpdateListingInput) (*model.Listing, error) {
	updates := map[string]interface{}{}

	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.Condition != nil {
		updates["condition"] = *input.Condition
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Images != nil {
		updates["images"] = datatypes.NewJSONSlice(*input.Images)
	}
	if input.IsAvailable != nil {
		updates["is_available"] = *input.IsAvailable
	}

	if len(updates) == 0 {
		return s.GetListingByID(ctx, id)
	}

	listing, err := s.listings.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Listing not found with id %d", id)
		}
		return nil, fmt.Errorf("update listing: %w", err)
	}

	s.cache.Delete(ctx, s.cacheKey(id))
	return listing, nil
}

func (s *listingService) DeleteListing(ctx context.Context, id uint) error {
	if err := s.listings.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("Listing not found with id %d", id)
		}
		return fmt.Errorf("delete listing: %w", err)
	}

	s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
