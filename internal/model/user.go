package model

import "time"

// Role is the closed set of user roles.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User represents a marketplace account. The password hash is never
// serialized in any response.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex:uni_users_email;size:255;not null"`
	Password  string    `json:"-" gorm:"size:255;not null"`
	FirstName string    `json:"firstName" gorm:"size:100;not null"`
	LastName  string    `json:"lastName" gorm:"size:100;not null"`
	Phone     *string   `json:"phone" gorm:"uniqueIndex:uni_users_phone;size:32"`
	Role      Role      `json:"role" gorm:"type:varchar(10);not null;default:'USER'"`
	IsActive  bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Seller is the reduced owner projection embedded in listing responses. Phone
// is only selected for the detail view.
type Seller struct {
	ID        uint    `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     *string `json:"phone,omitempty"`
}

// TableName maps the seller projection onto the users table.
func (Seller) TableName() string {
	return "users"
}
