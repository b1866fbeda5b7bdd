package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Condition describes the physical state of a listed item.
type Condition string

const (
	ConditionNew     Condition = "NEW"
	ConditionLikeNew Condition = "LIKE_NEW"
	ConditionGood    Condition = "GOOD"
	ConditionFair    Condition = "FAIR"
	ConditionUsed    Condition = "USED"
)

// Category groups listings for browsing.
type Category string

const (
	CategoryTextbooks      Category = "TEXTBOOKS"
	CategoryElectronics    Category = "ELECTRONICS"
	CategoryFurniture      Category = "FURNITURE"
	CategoryClothing       Category = "CLOTHING"
	CategorySchoolSupplies Category = "SCHOOL_SUPPLIES"
	CategoryOther          Category = "OTHER"
)

// MaxListingImages caps the image URLs per listing.
const MaxListingImages = 5

// Listing represents an item for sale.
type Listing struct {
	ID          uint                        `json:"id" gorm:"primaryKey"`
	Title       string                      `json:"title" gorm:"size:200;not null"`
	Description string                      `json:"description" gorm:"type:text;not null"`
	Price       decimal.Decimal             `json:"price" gorm:"type:decimal(10,2);not null"`
	Condition   Condition                   `json:"condition" gorm:"type:varchar(20);not null"`
	Category    Category                    `json:"category" gorm:"type:varchar(20);not null;index"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	IsAvailable bool                        `json:"isAvailable" gorm:"not null;default:true"`
	SellerID    uint                        `json:"sellerId" gorm:"not null;index"`
	Seller      *Seller                     `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}
