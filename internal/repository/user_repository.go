package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"examer/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	// CreateWithUsername inserts the user and assigns a username derived from
	// the row's own primary key, inside a single transaction.
	CreateWithUsername(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateWithUsername inserts the row with a placeholder username, then renames
// it to "User<id>" once the primary key is known. Deriving the handle from the
// key sequence keeps it unique under concurrent registration; reading the last
// row's id would not.
func (r *userRepository) CreateWithUsername(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user.Username = fmt.Sprintf("pending-%s", user.Email)
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		user.Username = fmt.Sprintf("User%d", user.ID)
		return tx.Model(user).Update("username", user.Username).Error
	})
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, id).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
