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

// MockSubmissionRepository is a mock implementation of SubmissionRepository.
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, submission *model.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) FindByStudentAndAssessment(ctx context.Context, studentID, assessmentID uint) (*model.Submission, error) {
	args := m.Called(ctx, studentID, assessmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) ListByAssessment(ctx context.Context, assessmentID uint) ([]model.Submission, error) {
	args := m.Called(ctx, assessmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Submission), args.Error(1)
}

func TestSubmissionService_Submit(t *testing.T) {
	answers := map[string]interface{}{"q1": "4"}

	t.Run("student submission persists with correct ids", func(t *testing.T) {
		mockRepo := new(MockSubmissionRepository)
		mockAssessmentRepo := new(MockAssessmentRepository)
		mockAssessmentRepo.On("FindByID", mock.Anything, uint(10)).Return(mathAssessment(), nil)
		mockRepo.On("FindByStudentAndAssessment", mock.Anything, uint(2), uint(10)).Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Submission")).Return(nil)

		service := NewSubmissionService(mockRepo, mockAssessmentRepo)
		submission, err := service.Submit(context.Background(), studentUser(), 10, answers)

		assert.NoError(t, err)
		assert.Equal(t, uint(2), submission.StudentID)
		assert.Equal(t, uint(10), submission.AssessmentID)
		assert.Equal(t, "4", submission.Answers["q1"])
		mockRepo.AssertExpectations(t)
	})

	t.Run("teacher is forbidden and nothing is persisted", func(t *testing.T) {
		mockRepo := new(MockSubmissionRepository)
		mockAssessmentRepo := new(MockAssessmentRepository)

		service := NewSubmissionService(mockRepo, mockAssessmentRepo)
		submission, err := service.Submit(context.Background(), teacherUser(), 10, answers)

		assert.Equal(t, apperrors.ErrForbidden, err)
		assert.Nil(t, submission)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing assessment", func(t *testing.T) {
		mockRepo := new(MockSubmissionRepository)
		mockAssessmentRepo := new(MockAssessmentRepository)
		mockAssessmentRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := NewSubmissionService(mockRepo, mockAssessmentRepo)
		submission, err := service.Submit(context.Background(), studentUser(), 99, answers)

		assert.Equal(t, apperrors.ErrAssessmentNotFound, err)
		assert.Nil(t, submission)
	})

	t.Run("second attempt is rejected", func(t *testing.T) {
		mockRepo := new(MockSubmissionRepository)
		mockAssessmentRepo := new(MockAssessmentRepository)
		mockAssessmentRepo.On("FindByID", mock.Anything, uint(10)).Return(mathAssessment(), nil)
		mockRepo.On("FindByStudentAndAssessment", mock.Anything, uint(2), uint(10)).Return(&model.Submission{
			ID:           1,
			StudentID:    2,
			AssessmentID: 10,
		}, nil)

		service := NewSubmissionService(mockRepo, mockAssessmentRepo)
		submission, err := service.Submit(context.Background(), studentUser(), 10, answers)

		assert.Equal(t, apperrors.ErrDuplicateSubmission, err)
		assert.Nil(t, submission)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestSubmissionService_ListByAssessment(t *testing.T) {
	all := []model.Submission{
		{ID: 1, StudentID: 2, AssessmentID: 10, Answers: datatypes.JSONMap{"q1": "4"}},
		{ID: 2, StudentID: 3, AssessmentID: 10, Answers: datatypes.JSONMap{"q1": "5"}},
	}

	t.Run("teacher sees every submission", func(t *testing.T) {
		mockRepo := new(MockSubmissionRepository)
		mockAssessmentRepo := new(MockAssessmentRepository)
		mockAssessmentRepo.On("FindByID", mock.Anything, uint(10)).Return(mathAssessment(), nil)
		mockRepo.On("ListByAssessment", mock.Anything, uint(10)).Return(all, nil)

		service := NewSubmissionService(mockRepo, mockAssessmentRepo)
		submissions, err := service.ListByAssessment(context.Background(), teacherUser(), 10)

		assert.NoError(t, err)
		assert.Len(t, submissions, 2)
	})

	t.Run("student sees only their own", func(t *testing.T) {
		mockRepo := new(MockSubmissionRepository)
		mockAssessmentRepo := new(MockAssessmentRepository)
		mockAssessmentRepo.On("FindByID", mock.Anything, uint(10)).Return(mathAssessment(), nil)
		mockRepo.On("FindByStudentAndAssessment", mock.Anything, uint(2), uint(10)).Return(&all[0], nil)

		service := NewSubmissionService(mockRepo, mockAssessmentRepo)
		submissions, err := service.ListByAssessment(context.Background(), studentUser(), 10)

		assert.NoError(t, err)
		assert.Len(t, submissions, 1)
		assert.Equal(t, uint(2), submissions[0].StudentID)
		mockRepo.AssertNotCalled(t, "ListByAssessment", mock.Anything, mock.Anything)
	})

	t.Run("student with no submission gets an empty list", func(t *testing.T) {
		mockRepo := new(MockSubmissionRepository)
		mockAssessmentRepo := new(MockAssessmentRepository)
		mockAssessmentRepo.On("FindByID", mock.Anything, uint(10)).Return(mathAssessment(), nil)
		mockRepo.On("FindByStudentAndAssessment", mock.Anything, uint(2), uint(10)).Return(nil, gorm.ErrRecordNotFound)

		service := NewSubmissionService(mockRepo, mockAssessmentRepo)
		submissions, err := service.ListByAssessment(context.Background(), studentUser(), 10)

		assert.NoError(t, err)
		assert.Empty(t, submissions)
	})
}
