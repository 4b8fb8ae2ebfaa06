package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "examer/internal/errors"
	"examer/internal/model"
)

// MockAssessmentRepository is a mock implementation of AssessmentRepository.
type MockAssessmentRepository struct {
	mock.Mock
}

func (m *MockAssessmentRepository) Create(ctx context.Context, assessment *model.Assessment) error {
	args := m.Called(ctx, assessment)
	return args.Error(0)
}

func (m *MockAssessmentRepository) Update(ctx context.Context, assessment *model.Assessment) error {
	args := m.Called(ctx, assessment)
	return args.Error(0)
}

func (m *MockAssessmentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssessmentRepository) FindByID(ctx context.Context, id uint) (*model.Assessment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) SearchBySubject(ctx context.Context, query string, page, limit int) ([]model.Assessment, error) {
	args := m.Called(ctx, query, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Assessment), args.Error(1)
}

func teacherUser() *model.User {
	return &model.User{ID: 1, Username: "User1", Role: model.RoleTeacher}
}

func studentUser() *model.User {
	return &model.User{ID: 2, Username: "User2", Role: model.RoleStudent}
}

func mathAssessment() *model.Assessment {
	return &model.Assessment{
		ID:          10,
		SubjectName: "Math",
		Date:        "2026-09-15",
		StartTime:   "09:30",
		Questions: datatypes.JSONMap{
			"q1": "2+2?",
			"q2": "capital of France?",
		},
		CreatorID: 1,
	}
}

func sampleInput() AssessmentInput {
	return AssessmentInput{
		SubjectName: "Math",
		Date:        "2026-09-15",
		StartTime:   "09:30",
		Questions:   map[string]interface{}{"q1": "2+2?"},
	}
}

func TestAssessmentService_Create(t *testing.T) {
	t.Run("teacher creates and becomes creator", func(t *testing.T) {
		mockRepo := new(MockAssessmentRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Assessment")).Return(nil)

		service := NewAssessmentService(mockRepo, nil)
		assessment, err := service.Create(context.Background(), teacherUser(), sampleInput())

		assert.NoError(t, err)
		assert.Equal(t, uint(1), assessment.CreatorID)
		assert.Equal(t, "Math", assessment.SubjectName)
		mockRepo.AssertExpectations(t)
	})

	t.Run("student is forbidden and nothing is persisted", func(t *testing.T) {
		mockRepo := new(MockAssessmentRepository)

		service := NewAssessmentService(mockRepo, nil)
		assessment, err := service.Create(context.Background(), studentUser(), sampleInput())

		assert.Equal(t, apperrors.ErrForbidden, err)
		assert.Nil(t, assessment)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAssessmentService_GetDetail(t *testing.T) {
	t.Run("teacher and student see identical key sets", func(t *testing.T) {
		mockRepo := new(MockAssessmentRepository)
		mockRepo.On("FindByID", mock.Anything, uint(10)).Return(mathAssessment(), nil)

		service := NewAssessmentService(mockRepo, nil)

		teacherDetail, err := service.GetDetail(context.Background(), teacherUser(), 10)
		assert.NoError(t, err)
		studentDetail, err := service.GetDetail(context.Background(), studentUser(), 10)
		assert.NoError(t, err)

		assert.Len(t, studentDetail.Questions, len(teacherDetail.Questions))
		for key := range teacherDetail.Questions {
			assert.Contains(t, studentDetail.Questions, key)
		}

		assert.Equal(t, "2+2?", teacherDetail.Questions["q1"])
		assert.Equal(t, "hide", studentDetail.Questions["q1"])
		assert.Equal(t, "hide", studentDetail.Questions["q2"])
	})

	t.Run("missing assessment", func(t *testing.T) {
		mockRepo := new(MockAssessmentRepository)
		mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := NewAssessmentService(mockRepo, nil)
		detail, err := service.GetDetail(context.Background(), teacherUser(), 99)

		assert.Equal(t, apperrors.ErrAssessmentNotFound, err)
		assert.Nil(t, detail)
	})
}

func TestAssessmentService_Update(t *testing.T) {
	tests := []struct {
		name          string
		actor         *model.User
		setupMock     func(*MockAssessmentRepository)
		expectedError error
	}{
		{
			name:  "creator updates",
			actor: teacherUser(),
			setupMock: func(m *MockAssessmentRepository) {
				m.On("FindByID", mock.Anything, uint(10)).Return(mathAssessment(), nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Assessment")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "student is forbidden",
			actor:         studentUser(),
			setupMock:     func(m *MockAssessmentRepository) {},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:  "non-creator teacher is forbidden",
			actor: &model.User{ID: 5, Username: "User5", Role: model.RoleTeacher},
			setupMock: func(m *MockAssessmentRepository) {
				m.On("FindByID", mock.Anything, uint(10)).Return(mathAssessment(), nil)
			},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:  "missing assessment",
			actor: teacherUser(),
			setupMock: func(m *MockAssessmentRepository) {
				m.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrAssessmentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAssessmentRepository)
			tt.setupMock(mockRepo)

			service := NewAssessmentService(mockRepo, nil)
			in := sampleInput()
			in.SubjectName = "Advanced Math"
			assessment, err := service.Update(context.Background(), tt.actor, 10, in)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, assessment)
				mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "Advanced Math", assessment.SubjectName)
				assert.Equal(t, uint(1), assessment.CreatorID)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAssessmentService_Delete(t *testing.T) {
	t.Run("creator deletes", func(t *testing.T) {
		mockRepo := new(MockAssessmentRepository)
		mockRepo.On("FindByID", mock.Anything, uint(10)).Return(mathAssessment(), nil)
		mockRepo.On("Delete", mock.Anything, uint(10)).Return(nil)

		service := NewAssessmentService(mockRepo, nil)
		assert.NoError(t, service.Delete(context.Background(), teacherUser(), 10))
		mockRepo.AssertExpectations(t)
	})

	t.Run("student is forbidden", func(t *testing.T) {
		mockRepo := new(MockAssessmentRepository)

		service := NewAssessmentService(mockRepo, nil)
		assert.Equal(t, apperrors.ErrForbidden, service.Delete(context.Background(), studentUser(), 10))
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deleted assessment is gone on next read", func(t *testing.T) {
		mockRepo := new(MockAssessmentRepository)
		mockRepo.On("FindByID", mock.Anything, uint(10)).Return(mathAssessment(), nil).Once()
		mockRepo.On("Delete", mock.Anything, uint(10)).Return(nil)
		mockRepo.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)

		service := NewAssessmentService(mockRepo, nil)
		assert.NoError(t, service.Delete(context.Background(), teacherUser(), 10))

		detail, err := service.GetDetail(context.Background(), teacherUser(), 10)
		assert.Equal(t, apperrors.ErrAssessmentNotFound, err)
		assert.Nil(t, detail)
	})
}

func TestAssessmentService_Search(t *testing.T) {
	t.Run("passes normalized pagination to the repository", func(t *testing.T) {
		mockRepo := new(MockAssessmentRepository)
		mockRepo.On("SearchBySubject", mock.Anything, "Math", 0, 10).Return([]model.Assessment{*mathAssessment()}, nil)

		service := NewAssessmentService(mockRepo, nil)
		results, err := service.Search(context.Background(), "Math", -3, 0)

		assert.NoError(t, err)
		assert.Len(t, results, 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("out-of-range page is an empty result, not an error", func(t *testing.T) {
		mockRepo := new(MockAssessmentRepository)
		mockRepo.On("SearchBySubject", mock.Anything, "Math", 50, 5).Return([]model.Assessment{}, nil)

		service := NewAssessmentService(mockRepo, nil)
		results, err := service.Search(context.Background(), "Math", 50, 5)

		assert.NoError(t, err)
		assert.Empty(t, results)
	})
}
