package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/example/skwermkt/internal/models"
	"github.com/example/skwermkt/internal/services"
)

// GormUserStore implements services.UserStore over Postgres.
type GormUserStore struct {
	db *gorm.DB
}

// NewGormUserStore constructs a GormUserStore.
func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

// ByEmail loads a user by exact email match.
func (s *GormUserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create persists a new user record.
func (s *GormUserStore) Create(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

// MarkVerified flips email_verified and clears the OTP challenge as a single update.
func (s *GormUserStore) MarkVerified(ctx context.Context, email string) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"email_verified": true,
			"otp":            nil,
			"otp_expires":    nil,
		}).Error
}

// SetChallenge overwrites the OTP challenge fields.
func (s *GormUserStore) SetChallenge(ctx context.Context, email, code string, expires time.Time) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"otp":         code,
			"otp_expires": expires,
		}).Error
}

// UpdatePassword stores a new hash and clears the OTP challenge as a single update.
func (s *GormUserStore) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"otp":           nil,
			"otp_expires":   nil,
		}).Error
}
