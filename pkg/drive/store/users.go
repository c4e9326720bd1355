package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/skydrive/skydrive/pkg/drive/models"
)

// ============================================
// USER OPERATIONS
// ============================================

func (s *GORMStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return getByField[models.User](s.db, ctx, "email", email, models.ErrUserNotFound)
}

func (s *GORMStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return getByField[models.User](s.db, ctx, "id", id, models.ErrUserNotFound)
}

func (s *GORMStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := s.db.WithContext(ctx).Order("email asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GORMStore) CreateUser(ctx context.Context, user *models.User) (string, error) {
	if err := user.Validate(); err != nil {
		return "", err
	}
	return createWithID(s.db, ctx, user, func(u *models.User, id string) { u.ID = id }, user.ID, models.ErrDuplicateUser)
}

// DeleteUser removes a user and, via the foreign-key cascade, every folder
// and file the user owns.
func (s *GORMStore) DeleteUser(ctx context.Context, email string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
			return convertNotFoundError(err, models.ErrUserNotFound)
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.File{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Folder{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

func (s *GORMStore) ValidateCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if !models.VerifyPassword(password, user.PasswordHash) {
		return nil, models.ErrInvalidCredentials
	}

	return user, nil
}
