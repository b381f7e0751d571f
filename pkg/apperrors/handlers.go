package apperrors

import (
	"vibenet_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the failure half of the uniform response envelope.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// GinErrorHandler renders errors as envelopes. With Debug set, the message of
// an unexpected fault is passed through to the caller.
type GinErrorHandler struct {
	Debug bool
}

func NewGinErrorHandler(debug bool) *GinErrorHandler {
	return &GinErrorHandler{Debug: debug}
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	message := appErr.Message
	if appErr.HTTPCode >= 500 {
		logger.CtxError(c.Request.Context(), "Server error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
		)
		if h.Debug && appErr.Code == CodeInternalError && appErr.Err != nil {
			message = appErr.Err.Error()
		}
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{
		Success: false,
		Message: message,
		Data:    appErr.Details,
	})
}

// HandleError renders err without debug passthrough. Middleware that only
// ever produces known AppErrors uses this.
func HandleError(c *gin.Context, err error) {
	(&GinErrorHandler{}).HandleGinError(c, err)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
