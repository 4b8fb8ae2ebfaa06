package repository

import (
	"context"

	"gorm.io/gorm"

	"examer/internal/model"
)

// AssessmentRepository defines assessment persistence operations.
type AssessmentRepository interface {
	Create(ctx context.Context, assessment *model.Assessment) error
	Update(ctx context.Context, assessment *model.Assessment) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Assessment, error)
	// SearchBySubject returns at most limit assessments whose subject name
	// contains query, skipping page*limit records. An out-of-range page
	// yields an empty slice, not an error.
	SearchBySubject(ctx context.Context, query string, page, limit int) ([]model.Assessment, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

// NewAssessmentRepository creates a new assessment repository.
func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.Assessment) error {
	return r.db.WithContext(ctx).Create(assessment).Error
}

func (r *assessmentRepository) Update(ctx context.Context, assessment *model.Assessment) error {
	return r.db.WithContext(ctx).Save(assessment).Error
}

func (r *assessmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Assessment{}, id).Error
}

func (r *assessmentRepository) FindByID(ctx context.Context, id uint) (*model.Assessment, error) {
	var assessment model.Assessment
	if err := r.db.WithContext(ctx).First(&assessment, id).Error; err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepository) SearchBySubject(ctx context.Context, query string, page, limit int) ([]model.Assessment, error) {
	var assessments []model.Assessment
	if err := r.db.WithContext(ctx).
		Where("subject_name LIKE ?", "%"+query+"%").
		Offset(page * limit).
		Limit(limit).
		Find(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}
