package service

import (
	"context"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "examer/internal/errors"
	"examer/internal/model"
	"examer/internal/repository"
)

// SubmissionService exposes answer submission operations.
type SubmissionService interface {
	// Submit persists one answer set for the acting student. Teachers are
	// rejected, missing assessments are rejected, and a student may submit
	// at most once per assessment.
	Submit(ctx context.Context, actor *model.User, assessmentID uint, answers map[string]interface{}) (*model.Submission, error)
	// ListByAssessment returns the submissions the acting user may read:
	// every submission for a teacher, only their own for a student.
	ListByAssessment(ctx context.Context, actor *model.User, assessmentID uint) ([]model.Submission, error)
}

type submissionService struct {
	repo           repository.SubmissionRepository
	assessmentRepo repository.AssessmentRepository
}

// NewSubmissionService builds a SubmissionService.
func NewSubmissionService(repo repository.SubmissionRepository, assessmentRepo repository.AssessmentRepository) SubmissionService {
	return &submissionService{repo: repo, assessmentRepo: assessmentRepo}
}

func (s *submissionService) Submit(ctx context.Context, actor *model.User, assessmentID uint, answers map[string]interface{}) (*model.Submission, error) {
	if actor.IsTeacher() {
		return nil, apperrors.ErrForbidden
	}

	if _, err := s.assessmentRepo.FindByID(ctx, assessmentID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("load assessment: %w", err)
	}

	if _, err := s.repo.FindByStudentAndAssessment(ctx, actor.ID, assessmentID); err == nil {
		return nil, apperrors.ErrDuplicateSubmission
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check existing submission: %w", err)
	}

	submission := &model.Submission{
		Answers:      datatypes.JSONMap(answers),
		StudentID:    actor.ID,
		AssessmentID: assessmentID,
	}
	if err := s.repo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	return submission, nil
}

func (s *submissionService) ListByAssessment(ctx context.Context, actor *model.User, assessmentID uint) ([]model.Submission, error) {
	if _, err := s.assessmentRepo.FindByID(ctx, assessmentID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("load assessment: %w", err)
	}

	if actor.IsTeacher() {
		return s.repo.ListByAssessment(ctx, assessmentID)
	}

	submission, err := s.repo.FindByStudentAndAssessment(ctx, actor.ID, assessmentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return []model.Submission{}, nil
		}
		return nil, fmt.Errorf("load submission: %w", err)
	}
	return []model.Submission{*submission}, nil
}
