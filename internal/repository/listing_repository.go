package repository

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"campusmarket/internal/model"
)

// ListingFilter narrows and orders the public browse query.
type ListingFilter struct {
	Search    string
	Category  string
	Condition string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// sortColumns whitelists API sort fields against their columns.
var sortColumns = map[string]string{
	"id":        "id",
	"title":     "title",
	"price":     "price",
	"createdAt": "created_at",
}

// ListingRepository defines persistence operations for listings.
type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	FindByID(ctx context.Context, id uint) (*model.Listing, error)
	List(ctx context.Context, filter ListingFilter) ([]model.Listing, error)
	ListBySeller(ctx context.Context, sellerID uint) ([]model.Listing, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.Listing, error)
	Delete(ctx context.Context, id uint) error
}

type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository builds a GORM-backed listing repository.
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

// sellerSummary preloads the reduced seller projection used by list views.
func sellerSummary(tx *gorm.DB) *gorm.DB {
	return tx.Select("id", "email", "first_name", "last_name")
}

func (r *listingRepository) Create(ctx context.Context, listing *model.Listing) error {
	if err := r.db.WithContext(ctx).Create(listing).Error; err != nil {
		return err
	}
	// Reload with the seller projection attached.
	return r.db.WithContext(ctx).
		Preload("Seller", sellerSummary).
		First(listing, listing.ID).Error
}

// FindByID returns the listing with the full seller projection, phone
// included.
func (r *listingRepository) FindByID(ctx context.Context, id uint) (*model.Listing, error) {
	var listing model.Listing
	err := r.db.WithContext(ctx).
		Preload("Seller").
		First(&listing, id).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) List(ctx context.Context, filter ListingFilter) ([]model.Listing, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Listing{}).
		Where("is_available = ?", true)

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Condition != "" {
		q = q.Where("`condition` = ?", filter.Condition)
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		order = "ASC"
	}

	var listings []model.Listing
	err := q.Preload("Seller", sellerSummary).
		Order(column + " " + order).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) ListBySeller(ctx context.Context, sellerID uint) ([]model.Listing, error) {
	var listings []model.Listing
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

// Update applies a partial patch and returns the fresh row with the seller
// projection. A missing target surfaces as gorm.ErrRecordNotFound.
func (r *listingRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.Listing, error) {
	if err := r.db.WithContext(ctx).
		Model(&model.Listing{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, err
	}

	var listing model.Listing
	err := r.db.WithContext(ctx).
		Preload("Seller", sellerSummary).
		First(&listing, id).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Listing{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
