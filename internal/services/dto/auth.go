package dto

import (
	"strings"
	"time"
)

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required,notblank,max=200"`
	UserName string `json:"userName" validate:"required,is-username"`
	Email    string `json:"email" validate:"required,email,max=255"`
}

// Normalize trims every field and lowercases the email.
func (r *RegisterRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.UserName = strings.TrimSpace(r.UserName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// RequestOTPRequest is the body of POST /request-otp.
type RequestOTPRequest struct {
	UserName string `json:"userName" validate:"required"`
}

func (r *RequestOTPRequest) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
}

// VerifyOTPRequest is the body of POST /verify-otp.
type VerifyOTPRequest struct {
	UserName string `json:"userName" validate:"required"`
	OTPCode  string `json:"otpCode" validate:"required,numeric,len=6"`
}

func (r *VerifyOTPRequest) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
	r.OTPCode = strings.TrimSpace(r.OTPCode)
}

// RegisteredUser is returned by a successful registration.
type RegisteredUser struct {
	UserID    string    `json:"userId"`
	FullName  string    `json:"fullName"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// OTPSent is returned by request-otp. ExpiresAt is the expiry of the code
// that is currently active, whether it was just sent or sent earlier.
type OTPSent struct {
	ExpiresAt   time.Time `json:"expiresAt"`
	AlreadySent bool      `json:"alreadySent"`
}

// SessionIssued is returned by a successful verification.
type SessionIssued struct {
	UserID       string `json:"userId"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
