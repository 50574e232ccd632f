package repository

import (
	"context"
	"errors"

	"github.com/zenithtask/zenithtask/internal/auth"
	"github.com/zenithtask/zenithtask/pkg/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserUpdate is a partial-field patch for a user profile. Only fields present
// in the payload are applied; the password has its own path.
type UserUpdate struct {
	Username    *string         `json:"username"`
	Email       *string         `json:"email"`
	IsActive    *bool           `json:"is_active"`
	Preferences *datatypes.JSON `json:"preferences"`
}

// GetUser retrieves a user by ID, or nil if no such user exists.
func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers returns a page of users.
func (s *Store) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Offset(skip).Limit(limit).Find(&users).Error
	return users, err
}

// CreateUser registers a new user with a hashed credential.
func (s *Store) CreateUser(ctx context.Context, username, email, password string) (*models.User, error) {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username:       username,
		Email:          email,
		HashedPassword: hashed,
		IsActive:       true,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial profile patch to the given user.
func (s *Store) UpdateUser(ctx context.Context, user *models.User, update UserUpdate) (*models.User, error) {
	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	if update.Preferences != nil {
		user.Preferences = *update.Preferences
	}
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword verifies the current password before storing a hash of the
// new one. A mismatch returns nil without error so the caller can map it to
// an authorization-style failure.
func (s *Store) UpdatePassword(ctx context.Context, user *models.User, currentPassword, newPassword string) (*models.User, error) {
	if !auth.CheckPassword(currentPassword, user.HashedPassword) {
		return nil, nil
	}
	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = hashed
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePreferences replaces the user's preferences blob.
func (s *Store) UpdatePreferences(ctx context.Context, user *models.User, prefs datatypes.JSON) (*models.User, error) {
	user.Preferences = prefs
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user and, through cascades, their projects and tags.
// Returns the deleted user, or nil if no such user exists.
func (s *Store) DeleteUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
