package apperrors

// ErrorCode is the machine-readable classification of an AppError.
type ErrorCode string

const (
	CodeInternalError      ErrorCode = "INTERNAL_ERROR"
	CodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeLimitExceeded    ErrorCode = "LIMIT_EXCEEDED"
	CodeDeliveryFailed   ErrorCode = "DELIVERY_FAILED"

	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeInvalidOTP   ErrorCode = "INVALID_OTP"
	CodeInvalidToken ErrorCode = "INVALID_TOKEN"
)
