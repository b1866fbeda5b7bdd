package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"campusmarket/internal/apperr"
	"campusmarket/internal/model"
	"campusmarket/internal/repository"
)

// UpdateUserInput carries a partial profile patch. Nil pointers mean "leave
// unchanged"; PhoneSet distinguishes an absent phone key from an explicit
// null that clears the number.
type UpdateUserInput struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
	Phone     *string
	PhoneSet  bool
}

// UserService exposes profile and admin operations.
type UserService interface {
	GetAllUsers(ctx context.Context) ([]model.User, error)
	GetCurrentUser(ctx context.Context, id uint) (*model.User, error)
	UpdateCurrentUser(ctx context.Context, id uint, input UpdateUserInput) (*model.User, error)
	DeleteCurrentUser(ctx context.Context, id uint) error
	GetCurrentUserListings(ctx context.Context, id uint) ([]model.Listing, error)
	UpdateUserRole(ctx context.Context, targetID uint, role model.Role) (*model.User, error)
}

type userService struct {
	users    repository.UserRepository
	listings repository.ListingRepository
}

// NewUserService builds a UserService over the user and listing repositories.
func NewUserService(users repository.UserRepository, listings repository.ListingRepository) UserService {
	return &userService{users: users, listings: listings}
}

func (s *userService) GetAllUsers(ctx context.Context) ([]model.User, error) {
	return s.users.ListActive(ctx)
}

func (s *userService) GetCurrentUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateCurrentUser applies only the provided fields. An email owned by a
// different account fails the friendly pre-check with a 409; duplicates the
// pre-check races past are translated from the store's constraint violation.
func (s *userService) UpdateCurrentUser(ctx context.Context, id uint, input UpdateUserInput) (*model.User, error) {
	updates := map[string]interface{}{}

	if input.Email != nil {
		email := strings.ToLower(*input.Email)
		existing, err := s.users.FindByEmail(ctx, email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check email owner: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, apperr.Conflict("Email already in use")
		}
		updates["email"] = email
	}

	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updates["password"] = string(hashed)
	}

	if input.FirstName != nil {
		updates["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		updates["last_name"] = *input.LastName
	}
	if input.PhoneSet {
		updates["phone"] = input.Phone
	}

	if len(updates) == 0 {
		return s.GetCurrentUser(ctx, id)
	}

	user, err := s.users.Update(ctx, id, updates)
	if err != nil {
		if conflict := translateDuplicate(err); conflict != nil {
			return nil, conflict
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// DeleteCurrentUser deactivates the account. The row is retained so listings
// keep a valid seller reference; the email and phone stay reserved.
func (s *userService) DeleteCurrentUser(ctx context.Context, id uint) error {
	if err := s.users.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found")
		}
		return fmt.Errorf("deactivate user: %w", err)
	}
	return nil
}

func (s *userService) GetCurrentUserListings(ctx context.Context, id uint) ([]model.Listing, error) {
	return s.listings.ListBySeller(ctx, id)
}

// UpdateUserRole applies a role change to the target account. Admin access is
// enforced by the role gate upstream, not here.
func (s *userService) UpdateUserRole(ctx context.Context, targetID uint, role model.Role) (*model.User, error) {
	if _, err := s.GetCurrentUser(ctx, targetID); err != nil {
		return nil, err
	}

	user, err := s.users.Update(ctx, targetID, map[string]interface{}{"role": role})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("update role: %w", err)
	}
	return user, nil
}
