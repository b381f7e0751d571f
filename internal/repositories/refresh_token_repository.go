package repositories

import (
	"errors"

	"vibenet_backend/internal/models"

	"gorm.io/gorm"
)

// RefreshTokenRepository persists opaque refresh tokens.
type RefreshTokenRepository interface {
	Create(db *gorm.DB, token *models.RefreshToken) error

	// FindByToken returns the stored token regardless of its state.
	FindByToken(db *gorm.DB, tokenString string) (*models.RefreshToken, error)

	// RevokeAllByUserID flags every token of the user as revoked.
	RevokeAllByUserID(db *gorm.DB, userID string) (int64, error)

	// CountActiveByUserID counts tokens that are neither revoked nor expired.
	CountActiveByUserID(db *gorm.DB, userID string) (int64, error)
}

type refreshTokenRepository struct{}

func NewRefreshTokenRepository() RefreshTokenRepository {
	return &refreshTokenRepository{}
}

func (r *refreshTokenRepository) Create(db *gorm.DB, token *models.RefreshToken) error {
	return db.Create(token).Error
}

func (r *refreshTokenRepository) FindByToken(db *gorm.DB, tokenString string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := db.Where("token = ?", tokenString).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *refreshTokenRepository) RevokeAllByUserID(db *gorm.DB, userID string) (int64, error) {
	result := db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND is_revoked = ?", userID, false).
		UpdateColumn("is_revoked", true)
	return result.RowsAffected, result.Error
}

func (r *refreshTokenRepository) CountActiveByUserID(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND is_revoked = ? AND expires_at > ?", userID, false, db.NowFunc()).
		Count(&count).Error
	return count, err
}
