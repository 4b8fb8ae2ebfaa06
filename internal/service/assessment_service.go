package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"examer/internal/cache"
	apperrors "examer/internal/errors"
	"examer/internal/model"
	"examer/internal/repository"
)

const assessmentCacheTTL = 5 * time.Minute

// AssessmentInput carries the writable fields of an assessment.
type AssessmentInput struct {
	SubjectName string
	Date        string // YYYY-MM-DD
	StartTime   string // HH:MM
	Questions   map[string]interface{}
}

// AssessmentService exposes assessment operations with role checks applied
// against the acting user resolved by the caller.
type AssessmentService interface {
	Create(ctx context.Context, actor *model.User, in AssessmentInput) (*model.Assessment, error)
	Search(ctx context.Context, query string, page, limit int) ([]model.Assessment, error)
	GetDetail(ctx context.Context, actor *model.User, id uint) (*AssessmentDetail, error)
	Update(ctx context.Context, actor *model.User, id uint, in AssessmentInput) (*model.Assessment, error)
	Delete(ctx context.Context, actor *model.User, id uint) error
}

type assessmentService struct {
	repo  repository.AssessmentRepository
	cache *cache.Client
}

// NewAssessmentService builds an AssessmentService with repository and cache.
func NewAssessmentService(repo repository.AssessmentRepository, cache *cache.Client) AssessmentService {
	return &assessmentService{repo: repo, cache: cache}
}

func (s *assessmentService) cacheKey(id uint) string {
	return fmt.Sprintf("assessment:%d", id)
}

// Create persists a new assessment owned by the acting teacher.
func (s *assessmentService) Create(ctx context.Context, actor *model.User, in AssessmentInput) (*model.Assessment, error) {
	if !actor.IsTeacher() {
		return nil, apperrors.ErrForbidden
	}

	assessment := &model.Assessment{
		SubjectName: in.SubjectName,
		Date:        in.Date,
		StartTime:   in.StartTime,
		Questions:   datatypes.JSONMap(in.Questions),
		CreatorID:   actor.ID,
	}
	if err := s.repo.Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("create assessment: %w", err)
	}
	return assessment, nil
}

// Search returns a page of assessments whose subject contains the query.
func (s *assessmentService) Search(ctx context.Context, query string, page, limit int) ([]model.Assessment, error) {
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.SearchBySubject(ctx, query, page, limit)
}

// GetDetail returns the role-redacted view of an assessment. The raw row is
// cached; redaction always happens per request, after the cache read.
func (s *assessmentService) GetDetail(ctx context.Context, actor *model.User, id uint) (*AssessmentDetail, error) {
	assessment, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := BuildAssessmentDetail(actor.Role, assessment)
	return &detail, nil
}

// Update overwrites the assessment's writable fields. Only the creating
// teacher may modify it; CreatorID never changes.
func (s *assessmentService) Update(ctx context.Context, actor *model.User, id uint, in AssessmentInput) (*model.Assessment, error) {
	if !actor.IsTeacher() {
		return nil, apperrors.ErrForbidden
	}

	assessment, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if assessment.CreatorID != actor.ID {
		return nil, apperrors.ErrForbidden
	}

	assessment.SubjectName = in.SubjectName
	assessment.Date = in.Date
	assessment.StartTime = in.StartTime
	assessment.Questions = datatypes.JSONMap(in.Questions)

	if err := s.repo.Update(ctx, assessment); err != nil {
		return nil, fmt.Errorf("update assessment: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return assessment, nil
}

// Delete removes the assessment. Only the creating teacher may delete it.
func (s *assessmentService) Delete(ctx context.Context, actor *model.User, id uint) error {
	if !actor.IsTeacher() {
		return apperrors.ErrForbidden
	}

	assessment, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if assessment.CreatorID != actor.ID {
		return apperrors.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete assessment: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

func (s *assessmentService) fetch(ctx context.Context, id uint) (*model.Assessment, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Assessment
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	assessment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrAssessmentNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(assessment); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, assessmentCacheTTL)
	}
	return assessment, nil
}
