package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"examer/internal/auth"
	apperrors "examer/internal/errors"
	"examer/internal/model"
	"examer/internal/repository"
)

const (
	bcryptCost        = 10
	minPasswordLength = 8
)

// ErrInvalidCredentials is returned when email or password is incorrect.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService handles registration, login and token resolution.
type AuthService interface {
	Register(ctx context.Context, email string, role model.Role, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	// Logout revokes the token and returns a replacement signed with a
	// negative expiry, so the credential handed back is already dead.
	Logout(ctx context.Context, rawToken string) (expiredToken string, err error)
	ChangePassword(ctx context.Context, rawToken, newPassword, confirmPassword string) (*model.User, error)
	// Resolve maps a bearer token to the acting user. Expired, revoked and
	// malformed tokens are all reported as ErrInvalidToken.
	Resolve(ctx context.Context, rawToken string) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a new user with a hashed password and a server-assigned
// username.
func (s *authService) Register(ctx context.Context, email string, role model.Role, password string) (*model.User, error) {
	if len(password) < minPasswordLength {
		return nil, apperrors.ErrPasswordTooShort
	}
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		Role:         role,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.CreateWithUsername(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user by email and returns a signed access token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.Username, user.Role, auth.AccessTokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *authService) Logout(ctx context.Context, rawToken string) (string, error) {
	user, err := s.Resolve(ctx, rawToken)
	if err != nil {
		return "", err
	}

	claims, err := s.jwtService.ValidateToken(rawToken)
	if err != nil {
		return "", apperrors.ErrInvalidToken
	}
	if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
		if err := s.tokenStore.RevokeToken(ctx, claims.ID, remaining); err != nil {
			return "", fmt.Errorf("revoke token: %w", err)
		}
	}

	return s.jwtService.GenerateToken(user.Username, user.Role, -time.Minute)
}

// ChangePassword rehashes and persists the new password for the token's user.
func (s *authService) ChangePassword(ctx context.Context, rawToken, newPassword, confirmPassword string) (*model.User, error) {
	user, err := s.Resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	if newPassword != confirmPassword {
		return nil, apperrors.ErrPasswordMismatch
	}
	if len(newPassword) < minPasswordLength {
		return nil, apperrors.ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashedPassword)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update password: %w", err)
	}
	return user, nil
}

// Resolve validates the token, checks revocation and loads the subject user.
func (s *authService) Resolve(ctx context.Context, rawToken string) (*model.User, error) {
	claims, err := s.jwtService.ValidateToken(rawToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	revoked, _ := s.tokenStore.IsRevoked(ctx, claims.ID)
	if revoked {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByUsername(ctx, claims.Username)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	return user, nil
}
