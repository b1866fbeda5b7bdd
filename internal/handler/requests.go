package handler

import (
	"encoding/json"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"campusmarket/internal/apperr"
	"campusmarket/internal/model"
	"campusmarket/internal/repository"
	"campusmarket/internal/service"
)

// SignupRequest represents a signup payload.
type SignupRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8,max=64"`
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	Phone     *string `json:"phone" validate:"omitempty,phone"`
}

// ToInput converts the request to a service input, treating an empty phone as
// absent.
func (r SignupRequest) ToInput() service.SignUpInput {
	phone := r.Phone
	if phone != nil && *phone == "" {
		phone = nil
	}
	return service.SignUpInput{
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     phone,
	}
}

// LoginRequest represents a login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest represents a partial profile patch. An explicit
// "phone": null clears the number, so unmarshalling records key presence
// separately from the value.
type UpdateUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=8,max=64"`
	FirstName *string `json:"firstName" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1"`
	Phone     *string `json:"phone" validate:"omitempty,phone"`

	phoneSet bool
}

// UnmarshalJSON decodes the patch and records whether the phone key was
// present at all.
func (r *UpdateUserRequest) UnmarshalJSON(data []byte) error {
	type alias UpdateUserRequest
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*r = UpdateUserRequest(a)
	_, r.phoneSet = keys["phone"]
	return nil
}

// Empty reports whether the patch carries no recognized field.
func (r UpdateUserRequest) Empty() bool {
	return r.Email == nil && r.Password == nil && r.FirstName == nil &&
		r.LastName == nil && !r.phoneSet
}

// ToInput converts the request to a service input, treating an empty phone
// string like an explicit null.
func (r UpdateUserRequest) ToInput() service.UpdateUserInput {
	phone := r.Phone
	if phone != nil && *phone == "" {
		phone = nil
	}
	return service.UpdateUserInput{
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     phone,
		PhoneSet:  r.phoneSet,
	}
}

// UpdateRoleRequest represents an admin role change.
type UpdateRoleRequest struct {
	Role model.Role `json:"role" validate:"required,oneof=USER ADMIN"`
}

// CreateListingRequest represents a new listing payload.
type CreateListingRequest struct {
	Title       string           `json:"title" validate:"required,min=3,max=200"`
	Description string           `json:"description" validate:"required,min=10,max=2000"`
	Price       *decimal.Decimal `json:"price" validate:"required,gte=0"`
	Condition   model.Condition  `json:"condition" validate:"required,oneof=NEW LIKE_NEW GOOD FAIR USED"`
	Category    model.Category   `json:"category" validate:"required,oneof=TEXTBOOKS ELECTRONICS FURNITURE CLOTHING SCHOOL_SUPPLIES OTHER"`
	Images      []string         `json:"images" validate:"omitempty,max=5,dive,url"`
}

// ToInput converts the request to a service input for the given seller.
func (r CreateListingRequest) ToInput(sellerID uint) service.CreateListingInput {
	return service.CreateListingInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       *r.Price,
		Condition:   r.Condition,
		Category:    r.Category,
		Images:      r.Images,
		SellerID:    sellerID,
	}
}

// UpdateListingRequest represents a partial listing patch.
type UpdateListingRequest struct {
	Title       *string          `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string          `json:"description" validate:"omitempty,min=10,max=2000"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	Condition   *model.Condition `json:"condition" validate:"omitempty,oneof=NEW LIKE_NEW GOOD FAIR USED"`
	Category    *model.Category  `json:"category" validate:"omitempty,oneof=TEXTBOOKS ELECTRONICS FURNITURE CLOTHING SCHOOL_SUPPLIES OTHER"`
	Images      *[]string        `json:"images" validate:"omitempty,max=5,dive,url"`
	IsAvailable *bool            `json:"isAvailable"`
}

// Empty reports whether the patch carries no recognized field.
func (r UpdateListingRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Price == nil &&
		r.Condition == nil && r.Category == nil && r.Images == nil &&
		r.IsAvailable == nil
}

// ToInput converts the request to a service input.
func (r UpdateListingRequest) ToInput() service.UpdateListingInput {
	return service.UpdateListingInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Condition:   r.Condition,
		Category:    r.Category,
		Images:      r.Images,
		IsAvailable: r.IsAvailable,
	}
}

// ListListingsQuery represents the browse filter.
type ListListingsQuery struct {
	Search    string           `query:"search"`
	Category  string           `query:"category" validate:"omitempty,oneof=TEXTBOOKS ELECTRONICS FURNITURE CLOTHING SCHOOL_SUPPLIES OTHER"`
	Condition string           `query:"condition" validate:"omitempty,oneof=NEW LIKE_NEW GOOD FAIR USED"`
	MinPrice  *decimal.Decimal `query:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice  *decimal.Decimal `query:"maxPrice" validate:"omitempty,gte=0"`
	SortBy    string           `query:"sortBy" validate:"omitempty,oneof=id title price createdAt"`
	SortOrder string           `query:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Limit     int              `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset    int              `query:"offset" validate:"omitempty,min=0"`
}

// ToFilter applies defaults and converts to a repository filter.
func (q ListListingsQuery) ToFilter() repository.ListingFilter {
	filter := repository.ListingFilter{
		Search:    q.Search,
		Category:  q.Category,
		Condition: q.Condition,
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Limit:     q.Limit,
		Offset:    q.Offset,
	}
	if filter.SortBy == "" {
		filter.SortBy = "createdAt"
	}
	if filter.SortOrder == "" {
		filter.SortOrder = "desc"
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	return filter
}

// bindBody decodes the JSON body into dst, mapping malformed payloads to a
// validation error.
func bindBody(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return apperr.Validation([]apperr.FieldError{{
			Field:   "body",
			Message: "Invalid request body",
		}})
	}
	return nil
}

// pathID parses the :id route parameter as a positive integer.
func pathID(c echo.Context, entity string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Validation([]apperr.FieldError{{
			Field:   "id",
			Message: entity + " id must be a positive integer",
			Value:   c.Param("id"),
		}})
	}
	return uint(id), nil
}

// respond writes the success envelope.
func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

// emptyPatchError rejects an update payload with no recognized field.
func emptyPatchError() error {
	return apperr.Validation([]apperr.FieldError{{
		Field:   "body",
		Message: "At least one field must be provided for update",
	}})
}
