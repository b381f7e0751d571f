package repositories

import (
	"vibenet_backend/internal/models"

	"gorm.io/gorm"
)

type InterestRepository interface {
	FindAll(db *gorm.DB) ([]models.Interest, error)
	// CountExisting returns how many of ids are known interests.
	CountExisting(db *gorm.DB, ids []int) (int64, error)
}

type interestRepository struct{}

func NewInterestRepository() InterestRepository {
	return &interestRepository{}
}

func (r *interestRepository) FindAll(db *gorm.DB) ([]models.Interest, error) {
	var interests []models.Interest
	err := db.Order("name ASC").Find(&interests).Error
	return interests, err
}

func (r *interestRepository) CountExisting(db *gorm.DB, ids []int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := db.Model(&models.Interest{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}
