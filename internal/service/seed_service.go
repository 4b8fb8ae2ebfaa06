package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"examer/internal/model"
	"examer/internal/repository"
)

// SeedService inserts demo users and assessments for local development.
type SeedService interface {
	// SeedDemo is idempotent: records already present are left alone.
	SeedDemo(ctx context.Context) (created int, err error)
}

type seedService struct {
	userRepo       repository.UserRepository
	assessmentRepo repository.AssessmentRepository
}

// NewSeedService builds a SeedService.
func NewSeedService(userRepo repository.UserRepository, assessmentRepo repository.AssessmentRepository) SeedService {
	return &seedService{userRepo: userRepo, assessmentRepo: assessmentRepo}
}

type seedUser struct {
	email    string
	role     model.Role
	password string
}

var demoUsers = []seedUser{
	{email: "teacher@examer.local", role: model.RoleTeacher, password: "teachpass1"},
	{email: "student@examer.local", role: model.RoleStudent, password: "studpass1"},
}

func (s *seedService) SeedDemo(ctx context.Context) (int, error) {
	created := 0
	var teacher *model.User

	for _, seed := range demoUsers {
		existing, err := s.userRepo.FindByEmail(ctx, seed.email)
		if err == nil {
			if existing.Role == model.RoleTeacher {
				teacher = existing
			}
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return created, fmt.Errorf("check seed user: %w", err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcryptCost)
		if err != nil {
			return created, fmt.Errorf("hash seed password: %w", err)
		}
		user := &model.User{
			Email:        seed.email,
			Role:         seed.role,
			PasswordHash: string(hashed),
		}
		if err := s.userRepo.CreateWithUsername(ctx, user); err != nil {
			return created, fmt.Errorf("create seed user: %w", err)
		}
		created++
		if user.Role == model.RoleTeacher {
			teacher = user
		}
	}

	if teacher == nil {
		return created, nil
	}

	existing, err := s.assessmentRepo.SearchBySubject(ctx, "Mathematics", 0, 1)
	if err != nil {
		return created, fmt.Errorf("check seed assessment: %w", err)
	}
	if len(existing) == 0 {
		assessment := &model.Assessment{
			SubjectName: "Mathematics",
			Date:        "2026-09-15",
			StartTime:   "09:30",
			Questions: datatypes.JSONMap{
				"q1": "What is 12 x 8?",
				"q2": "Solve for x: 2x + 6 = 20",
			},
			CreatorID: teacher.ID,
		}
		if err := s.assessmentRepo.Create(ctx, assessment); err != nil {
			return created, fmt.Errorf("create seed assessment: %w", err)
		}
		created++
	}

	return created, nil
}
