package repositories

import (
	"errors"
	"time"

	"vibenet_backend/internal/models"

	"gorm.io/gorm"
)

type OTPRepository interface {
	// Create stores a new unused code. ErrActiveOTPExists if the user already
	// holds an unused one.
	Create(db *gorm.DB, otp *models.OneTimePassword) error
	// FindActive returns the newest unused, unexpired code or nil.
	FindActive(db *gorm.DB, userID string, now time.Time) (*models.OneTimePassword, error)
	// ExpireStale marks unused codes whose expiry has passed as used.
	ExpireStale(db *gorm.DB, userID string, now time.Time) (int64, error)
	// Consume atomically marks a matching live code as used.
	Consume(db *gorm.DB, userID, code string, now time.Time) (bool, error)
	// PurgeConsumed hard-deletes used codes created before the cutoff.
	PurgeConsumed(db *gorm.DB, before time.Time) (int64, error)
}

type otpRepository struct{}

func NewOTPRepository() OTPRepository {
	return &otpRepository{}
}

func (r *otpRepository) Create(db *gorm.DB, otp *models.OneTimePassword) error {
	if err := db.Create(otp).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrActiveOTPExists
		}
		return err
	}
	return nil
}

func (r *otpRepository) FindActive(db *gorm.DB, userID string, now time.Time) (*models.OneTimePassword, error) {
	var otp models.OneTimePassword
	err := db.Where("user_id = ? AND is_used = ? AND expires_at > ?", userID, false, now).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &otp, nil
}

func (r *otpRepository) ExpireStale(db *gorm.DB, userID string, now time.Time) (int64, error) {
	result := db.Model(&models.OneTimePassword{}).
		Where("user_id = ? AND is_used = ? AND expires_at <= ?", userID, false, now).
		UpdateColumn("is_used", true)
	return result.RowsAffected, result.Error
}

func (r *otpRepository) Consume(db *gorm.DB, userID, code string, now time.Time) (bool, error) {
	result := db.Model(&models.OneTimePassword{}).
		Where("user_id = ? AND code = ? AND is_used = ? AND expires_at > ?", userID, code, false, now).
		UpdateColumn("is_used", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *otpRepository) PurgeConsumed(db *gorm.DB, before time.Time) (int64, error) {
	result := db.Where("is_used = ? AND created_at < ?", true, before).
		Delete(&models.OneTimePassword{})
	return result.RowsAffected, result.Error
}
