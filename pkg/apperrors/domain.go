package apperrors

import (
	"fmt"
	"net/http"
)

// --- Registration ---

var ErrUsernameTaken = New(
	CodeAlreadyExists,
	"registration",
	"Username already exists.",
	http.StatusBadRequest,
)

var ErrEmailTaken = New(
	CodeAlreadyExists,
	"registration",
	"Email already registered.",
	http.StatusBadRequest,
)

// ErrRegistrationFailed is returned when the insert collided but the
// colliding row could no longer be found (it was deleted concurrently).
var ErrRegistrationFailed = New(
	CodeAlreadyExists,
	"registration",
	"Failed to register user.",
	http.StatusBadRequest,
)

// --- Users ---

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found.",
	http.StatusNotFound,
)

var ErrInvalidUserID = New(
	CodeValidationFailed,
	"request",
	"Invalid user id.",
	http.StatusBadRequest,
)

// --- OTP ---

// ErrInvalidOTP deliberately does not distinguish wrong, expired or replayed codes.
var ErrInvalidOTP = New(
	CodeInvalidOTP,
	"otp",
	"Invalid or expired OTP.",
	http.StatusBadRequest,
)

var ErrOTPDeliveryFailed = New(
	CodeDeliveryFailed,
	"otp",
	"Could not send OTP email.",
	http.StatusBadGateway,
)

var ErrTooManyAttempts = New(
	CodeLimitExceeded,
	"otp",
	"Too many attempts. Please try again later.",
	http.StatusTooManyRequests,
)

// --- Access gate ---

var ErrAccountDeleted = New(
	CodeForbidden,
	"auth",
	"Account is deleted. Access denied.",
	http.StatusForbidden,
)

var ErrInvalidAccessToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid access token.",
	http.StatusUnauthorized,
)

var ErrAccessCheckUnavailable = New(
	CodeServiceUnavailable,
	"auth",
	"Unable to verify account status. Please retry.",
	http.StatusServiceUnavailable,
)

// --- Uploads ---

var ErrNoFileUploaded = New(
	CodeValidationFailed,
	"upload",
	"No file uploaded.",
	http.StatusBadRequest,
)

var ErrInvalidFile = New(
	CodeValidationFailed,
	"upload",
	"Invalid file.",
	http.StatusBadRequest,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"upload",
	"Only JPEG/PNG files allowed.",
	http.StatusBadRequest,
)

// ErrFileTooLarge reports the configured ceiling in the message.
func ErrFileTooLarge(maxSizeMB int) *AppError {
	return New(
		CodeLimitExceeded,
		"upload",
		fmt.Sprintf("File exceeds %d MB limit.", maxSizeMB),
		http.StatusBadRequest,
	)
}

// --- Interests ---

var ErrNoInterests = New(
	CodeValidationFailed,
	"interests",
	"No interests provided.",
	http.StatusBadRequest,
)

var ErrInvalidInterests = New(
	CodeValidationFailed,
	"interests",
	"One or more invalid interest IDs.",
	http.StatusBadRequest,
)
