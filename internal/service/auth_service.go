package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"campusmarket/internal/apperr"
	"campusmarket/internal/auth"
	"campusmarket/internal/model"
	"campusmarket/internal/repository"
)

const bcryptCost = 10

// SignUpInput carries the fields of a signup request.
type SignUpInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     *string
}

// AuthResult bundles the authenticated user with a fresh access token.
type AuthResult struct {
	User        *model.User `json:"user"`
	AccessToken string      `json:"accessToken"`
}

// AuthService handles signup and login.
type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*AuthResult, error)
	LogIn(ctx context.Context, email, password string) (*AuthResult, error)
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{users: users, jwtService: jwtService}
}

// SignUp hashes the password, persists the new user and issues a token.
// Store-level uniqueness violations are translated to field-specific
// conflicts; anything else propagates unchanged.
func (s *authService) SignUp(ctx context.Context, input SignUpInput) (*AuthResult, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:     strings.ToLower(input.Email),
		Password:  string(hashed),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Role:      model.RoleUser,
		IsActive:  true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if conflict := translateDuplicate(err); conflict != nil {
			return nil, conflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &AuthResult{User: user, AccessToken: accessToken}, nil
}

// LogIn verifies the credentials and issues a token. Unknown email, inactive
// account and wrong password all yield the same 401 so callers cannot
// enumerate accounts.
func (s *authService) LogIn(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("Invalid credentials")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &AuthResult{User: user, AccessToken: accessToken}, nil
}
