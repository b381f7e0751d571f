package repositories

import (
	"errors"
	"strings"

	"vibenet_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ExistsResult says which identity fields already belong to a live account.
type ExistsResult struct {
	UsernameTaken bool
	EmailTaken    bool
}

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	CheckExists(db *gorm.DB, username, email string) (ExistsResult, error)

	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByUsername(db *gorm.DB, username string) (*models.User, error)
	FindPublicByUsername(db *gorm.DB, username string) (*models.PublicProfile, error)
	// IsDeleted sees soft-deleted rows. found is false for unknown ids.
	IsDeleted(db *gorm.DB, id string) (deleted bool, found bool, err error)

	UpdateProfile(db *gorm.DB, user *models.User) error
	UpdateProfilePicture(db *gorm.DB, id, url string) error
	UpdateInterests(db *gorm.DB, id string, interests datatypes.JSON) error
	MarkEmailVerified(db *gorm.DB, id string) error
	SoftDelete(db *gorm.DB, id string) error
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func live(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

// Create inserts the user. A collision with a live account on username or
// email is reported as ErrUserAlreadyExists.
func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) CheckExists(db *gorm.DB, username, email string) (ExistsResult, error) {
	var rows []struct {
		Username string
		Email    string
	}
	err := live(db.Model(&models.User{})).
		Select("username, email").
		Where("username = ? OR LOWER(email) = LOWER(?)", username, email).
		Find(&rows).Error
	if err != nil {
		return ExistsResult{}, err
	}

	var res ExistsResult
	for _, row := range rows {
		if row.Username == username {
			res.UsernameTaken = true
		}
		if strings.EqualFold(row.Email, email) {
			res.EmailTaken = true
		}
	}
	return res, nil
}

func (r *userRepository) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := live(db).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	if err := live(db).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindPublicByUsername(db *gorm.DB, username string) (*models.PublicProfile, error) {
	var profile models.PublicProfile
	err := live(db.Model(&models.User{})).
		Select("full_name, username, bio, profile_picture_url, interests, created_at").
		Where("username = ?", username).
		Take(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *userRepository) IsDeleted(db *gorm.DB, id string) (bool, bool, error) {
	var flags []bool
	err := db.Model(&models.User{}).
		Where("id = ?", id).
		Limit(1).
		Pluck("is_deleted", &flags).Error
	if err != nil {
		return false, false, err
	}
	if len(flags) == 0 {
		return false, false, nil
	}
	return flags[0], true, nil
}

// UpdateProfile overwrites every mutable profile column of a live user.
func (r *userRepository) UpdateProfile(db *gorm.DB, user *models.User) error {
	return r.updateLive(db, user.ID, map[string]interface{}{
		"full_name":     user.FullName,
		"mobile":        user.Mobile,
		"gender":        user.Gender,
		"date_of_birth": user.DateOfBirth,
		"city":          user.City,
		"state":         user.State,
		"country":       user.Country,
		"bio":           user.Bio,
	})
}

func (r *userRepository) UpdateProfilePicture(db *gorm.DB, id, url string) error {
	return r.updateLive(db, id, map[string]interface{}{"profile_picture_url": url})
}

func (r *userRepository) UpdateInterests(db *gorm.DB, id string, interests datatypes.JSON) error {
	return r.updateLive(db, id, map[string]interface{}{"interests": interests})
}

func (r *userRepository) MarkEmailVerified(db *gorm.DB, id string) error {
	return r.updateLive(db, id, map[string]interface{}{"is_email_verified": true})
}

// SoftDelete only flips the flag; refresh tokens are revoked by the caller.
func (r *userRepository) SoftDelete(db *gorm.DB, id string) error {
	return r.updateLive(db, id, map[string]interface{}{"is_deleted": true})
}

// updateLive stamps updated_at in the same statement as the change and
// reports ErrUserNotFound when no live row matched.
func (r *userRepository) updateLive(db *gorm.DB, id string, fields map[string]interface{}) error {
	fields["updated_at"] = db.NowFunc()
	result := live(db.Model(&models.User{})).
		Where("id = ?", id).
		UpdateColumns(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
