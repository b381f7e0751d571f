package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const (
	GenderMale           = "male"
	GenderFemale         = "female"
	GenderOther          = "other"
	GenderPreferNotToSay = "prefer_not_to_say"
)

type User struct {
	BaseModel
	FullName          string  `gorm:"type:varchar(200);not null"`
	Username          string  `gorm:"type:varchar(50);not null"`
	Email             string  `gorm:"type:varchar(255);not null"`
	Mobile            *string `gorm:"type:varchar(20)"`
	Gender            *string `gorm:"type:varchar(20)"`
	DateOfBirth       *time.Time
	City              *string `gorm:"type:varchar(100)"`
	State             *string `gorm:"type:varchar(100)"`
	Country           *string `gorm:"type:varchar(100)"`
	Bio               *string `gorm:"type:varchar(500)"`
	ProfilePictureURL *string `gorm:"column:profile_picture_url"`
	// Interests holds the JSON array of interest ids, e.g. [3,1,7].
	Interests        datatypes.JSON `gorm:"type:text"`
	IsEmailVerified  bool `gorm:"not null;default:false"`
	IsMobileVerified bool `gorm:"not null;default:false"`
	IsSubscribed     bool `gorm:"not null;default:false"`
	IsDeleted        bool `gorm:"not null;default:false"`
	UpdatedAt        time.Time

	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID"`
}

// InterestIDs decodes the stored interests text. Malformed text yields nil.
func (u *User) InterestIDs() []int {
	return DecodeInterestIDs(u.Interests)
}

func DecodeInterestIDs(raw datatypes.JSON) []int {
	if len(raw) == 0 {
		return nil
	}
	var ids []int
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil
	}
	return ids
}

func EncodeInterestIDs(ids []int) (datatypes.JSON, error) {
	b, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// PublicProfile is the projection of a user visible to other users.
type PublicProfile struct {
	FullName          string
	Username          string
	Bio               *string
	ProfilePictureURL *string `gorm:"column:profile_picture_url"`
	Interests         datatypes.JSON
	CreatedAt         time.Time
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"type:varchar(36);not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	IsRevoked bool      `gorm:"not null;default:false"`
}

// Usable reports whether the token may still back a future redemption.
func (t *RefreshToken) Usable(now time.Time) bool {
	return !t.IsRevoked && now.Before(t.ExpiresAt)
}
