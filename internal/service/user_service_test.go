package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"campusmarket/internal/apperr"
	"campusmarket/internal/model"
)

func TestUserService_GetCurrentUser(t *testing.T) {
	tests := []struct {
		name            string
		id              uint
		setupMock       func(*MockUserRepository)
		expectedMessage string
	}{
		{
			name: "found",
			id:   3,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(3)).
					Return(&model.User{ID: 3, Email: "jane@student.edu"}, nil)
			},
		},
		{
			name: "deactivated or missing account",
			id:   99,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(99)).
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedMessage: "User not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			tt.setupMock(mockUsers)

			service := NewUserService(mockUsers, new(MockListingRepository))
			user, err := service.GetCurrentUser(context.Background(), tt.id)

			if tt.expectedMessage != "" {
				assert.Nil(t, user)
				appErr := apperr.FromError(err)
				assert.Equal(t, apperr.KindNotFound, appErr.Kind)
				assert.Equal(t, tt.expectedMessage, appErr.Message)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.id, user.ID)
			}

			mockUsers.AssertExpectations(t)
		})
	}
}

func TestUserService_UpdateCurrentUser(t *testing.T) {
	t.Run("email held by another account", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByEmail", mock.Anything, "taken@student.edu").
			Return(&model.User{ID: 8, Email: "taken@student.edu"}, nil)

		service := NewUserService(mockUsers, new(MockListingRepository))
		user, err := service.UpdateCurrentUser(context.Background(), 3, UpdateUserInput{
			Email: strPtr("Taken@student.edu"),
		})

		assert.Nil(t, user)
		appErr := apperr.FromError(err)
		assert.Equal(t, apperr.KindConflict, appErr.Kind)
		assert.Equal(t, "Email already in use", appErr.Message)
		mockUsers.AssertExpectations(t)
	})

	t.Run("keeping your own email is not a conflict", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByEmail", mock.Anything, "jane@student.edu").
			Return(&model.User{ID: 3, Email: "jane@student.edu"}, nil)
		mockUsers.On("Update", mock.Anything, uint(3), map[string]interface{}{
			"email": "jane@student.edu",
		}).Return(&model.User{ID: 3, Email: "jane@student.edu"}, nil)

		service := NewUserService(mockUsers, new(MockListingRepository))
		user, err := service.UpdateCurrentUser(context.Background(), 3, UpdateUserInput{
			Email: strPtr("Jane@student.edu"),
		})

		assert.NoError(t, err)
		assert.Equal(t, "jane@student.edu", user.Email)
		mockUsers.AssertExpectations(t)
	})

	t.Run("password is stored hashed", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("Update", mock.Anything, uint(3), mock.MatchedBy(func(updates map[string]interface{}) bool {
			hashed, ok := updates["password"].(string)
			if !ok {
				return false
			}
			return bcrypt.CompareHashAndPassword([]byte(hashed), []byte("newpassword")) == nil
		})).Return(&model.User{ID: 3}, nil)

		service := NewUserService(mockUsers, new(MockListingRepository))
		_, err := service.UpdateCurrentUser(context.Background(), 3, UpdateUserInput{
			Password: strPtr("newpassword"),
		})

		assert.NoError(t, err)
		mockUsers.AssertExpectations(t)
	})

	t.Run("explicit null clears the phone", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("Update", mock.Anything, uint(3), map[string]interface{}{
			"phone": (*string)(nil),
		}).Return(&model.User{ID: 3}, nil)

		service := NewUserService(mockUsers, new(MockListingRepository))
		_, err := service.UpdateCurrentUser(context.Background(), 3, UpdateUserInput{
			Phone:    nil,
			PhoneSet: true,
		})

		assert.NoError(t, err)
		mockUsers.AssertExpectations(t)
	})

	t.Run("empty patch returns the current profile", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, uint(3)).
			Return(&model.User{ID: 3, Email: "jane@student.edu"}, nil)

		service := NewUserService(mockUsers, new(MockListingRepository))
		user, err := service.UpdateCurrentUser(context.Background(), 3, UpdateUserInput{})

		assert.NoError(t, err)
		assert.Equal(t, uint(3), user.ID)
		mockUsers.AssertExpectations(t)
	})
}

func TestUserService_DeleteCurrentUser(t *testing.T) {
	t.Run("deactivates", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("Deactivate", mock.Anything, uint(3)).Return(nil)

		service := NewUserService(mockUsers, new(MockListingRepository))
		assert.NoError(t, service.DeleteCurrentUser(context.Background(), 3))
		mockUsers.AssertExpectations(t)
	})

	t.Run("already deactivated", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("Deactivate", mock.Anything, uint(3)).
			Return(gorm.ErrRecordNotFound)

		service := NewUserService(mockUsers, new(MockListingRepository))
		err := service.DeleteCurrentUser(context.Background(), 3)

		appErr := apperr.FromError(err)
		assert.Equal(t, apperr.KindNotFound, appErr.Kind)
		assert.Equal(t, "User not found", appErr.Message)
		mockUsers.AssertExpectations(t)
	})
}

func TestUserService_GetCurrentUserListings(t *testing.T) {
	mockListings := new(MockListingRepository)
	mockListings.On("ListBySeller", mock.Anything, uint(3)).
		Return([]model.Listing{{ID: 1, SellerID: 3}, {ID: 2, SellerID: 3}}, nil)

	service := NewUserService(new(MockUserRepository), mockListings)
	listings, err := service.GetCurrentUserListings(context.Background(), 3)

	assert.NoError(t, err)
	assert.Len(t, listings, 2)
	mockListings.AssertExpectations(t)
}

func TestUserService_UpdateUserRole(t *testing.T) {
	t.Run("promotes to admin", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, uint(5)).
			Return(&model.User{ID: 5, Role: model.RoleUser}, nil)
		mockUsers.On("Update", mock.Anything, uint(5), map[string]interface{}{
			"role": model.RoleAdmin,
		}).Return(&model.User{ID: 5, Role: model.RoleAdmin}, nil)

		service := NewUserService(mockUsers, new(MockListingRepository))
		user, err := service.UpdateUserRole(context.Background(), 5, model.RoleAdmin)

		assert.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, user.Role)
		mockUsers.AssertExpectations(t)
	})

	t.Run("missing target", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, uint(99)).
			Return(nil, gorm.ErrRecordNotFound)

		service := NewUserService(mockUsers, new(MockListingRepository))
		user, err := service.UpdateUserRole(context.Background(), 99, model.RoleAdmin)

		assert.Nil(t, user)
		appErr := apperr.FromError(err)
		assert.Equal(t, apperr.KindNotFound, appErr.Kind)
		assert.Equal(t, "User not found", appErr.Message)
		mockUsers.AssertExpectations(t)
	})
}
