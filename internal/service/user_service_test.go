package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "examer/internal/errors"
	"examer/internal/model"
)

func TestUserService_UpdateProfile(t *testing.T) {
	current := func() *model.User {
		return &model.User{ID: 1, Username: "User1", Email: "a@x.com", Role: model.RoleStudent}
	}

	tests := []struct {
		name          string
		username      string
		email         string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful update rehashes password",
			username: "User1renamed",
			email:    "new@x.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(current(), nil)
				m.On("FindByUsername", mock.Anything, "User1renamed").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "new@x.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "username collides with another user",
			username: "User9",
			email:    "new@x.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(current(), nil)
				m.On("FindByUsername", mock.Anything, "User9").Return(&model.User{ID: 9, Username: "User9"}, nil)
			},
			expectedError: apperrors.ErrUsernameTaken,
		},
		{
			name:     "email collides with another user",
			username: "User1renamed",
			email:    "taken@x.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(current(), nil)
				m.On("FindByUsername", mock.Anything, "User1renamed").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "taken@x.com").Return(&model.User{ID: 9, Email: "taken@x.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:     "keeping own username and email is not a conflict",
			username: "User1",
			email:    "a@x.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(current(), nil)
				m.On("FindByUsername", mock.Anything, "User1").Return(current(), nil)
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(current(), nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "missing user",
			username: "User1",
			email:    "a@x.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewUserService(mockRepo, nil, t.TempDir())
			user, err := service.UpdateProfile(context.Background(), 1, tt.username, tt.email, model.RoleTeacher, "newpassword1")

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
				mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.username, user.Username)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, model.RoleTeacher, user.Role)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpassword1")))
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_GetProfile(t *testing.T) {
	t.Run("missing user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

		service := NewUserService(mockRepo, nil, t.TempDir())
		user, err := service.GetProfile(context.Background(), 42)

		assert.Equal(t, apperrors.ErrUserNotFound, err)
		assert.Nil(t, user)
	})
}

func TestUserService_SaveProfileImage(t *testing.T) {
	service := NewUserService(new(MockUserRepository), nil, t.TempDir())
	user := &model.User{ID: 1, Username: "User1"}

	path, err := service.SaveProfileImage(user, strings.NewReader("fake-jpeg-bytes"))

	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "User1.jpg"))
}
