package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"examer/internal/cache"
	apperrors "examer/internal/errors"
	"examer/internal/model"
	"examer/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes profile operations.
type UserService interface {
	GetProfile(ctx context.Context, id uint) (*model.User, error)
	// UpdateProfile overwrites all mutable fields. The password is re-hashed
	// so the profile path stores credentials the same way registration does.
	UpdateProfile(ctx context.Context, id uint, username, email string, role model.Role, password string) (*model.User, error)
	Delete(ctx context.Context, id uint) error
	// SaveProfileImage stores the uploaded image under a path keyed by the
	// user's username and returns that path.
	SaveProfileImage(user *model.User, src io.Reader) (string, error)
}

type userService struct {
	repo     repository.UserRepository
	cache    *cache.Client
	mediaDir string
}

// NewUserService builds a UserService with repository, cache and media directory.
func NewUserService(repo repository.UserRepository, cache *cache.Client, mediaDir string) UserService {
	return &userService{repo: repo, cache: cache, mediaDir: mediaDir}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) GetProfile(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id uint, username, email string, role model.Role, password string) (*model.User, error) {
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	// Collisions only matter against a different user.
	if existing, err := s.repo.FindByUsername(ctx, username); err == nil && existing.ID != id {
		return nil, apperrors.ErrUsernameTaken
	}
	if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing.ID != id {
		return nil, apperrors.ErrEmailTaken
	}

	if len(password) < minPasswordLength {
		return nil, apperrors.ErrPasswordTooShort
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user.Username = username
	user.Email = email
	user.Role = role
	user.PasswordHash = string(hashedPassword)

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

func (s *userService) SaveProfileImage(user *model.User, src io.Reader) (string, error) {
	if err := os.MkdirAll(s.mediaDir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	path := filepath.Join(s.mediaDir, user.Username+".jpg")
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path, nil
}
