package models

import "time"

// OneTimePassword is a six digit verification code. At most one unused row
// exists per user (partial unique index on user_otps.user_id).
type OneTimePassword struct {
	BaseModel
	UserID    string    `gorm:"type:varchar(36);not null;index"`
	Code      string    `gorm:"type:varchar(6);not null"`
	ExpiresAt time.Time `gorm:"not null"`
	IsUsed    bool      `gorm:"not null;default:false"`
}

func (OneTimePassword) TableName() string {
	return "user_otps"
}
