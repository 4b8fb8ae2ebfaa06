package repository

import (
	"context"

	"gorm.io/gorm"

	"examer/internal/model"
)

// SubmissionRepository defines submission persistence operations.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *model.Submission) error
	FindByStudentAndAssessment(ctx context.Context, studentID, assessmentID uint) (*model.Submission, error)
	ListByAssessment(ctx context.Context, assessmentID uint) ([]model.Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new submission repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) FindByStudentAndAssessment(ctx context.Context, studentID, assessmentID uint) (*model.Submission, error) {
	var submission model.Submission
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND assessment_id = ?", studentID, assessmentID).
		First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) ListByAssessment(ctx context.Context, assessmentID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	if err := r.db.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}
