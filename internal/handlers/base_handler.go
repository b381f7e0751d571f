package handlers

import (
	"vibenet_backend/internal/logger"
	"vibenet_backend/internal/validator"
	"vibenet_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// normalizer is implemented by request bodies that clean their fields
// (trimming, case folding) before validation.
type normalizer interface {
	Normalize()
}

type BaseHandler struct {
	validator *validator.Validator
	errors    *apperrors.GinErrorHandler
}

// NewBaseHandler builds the shared handler helpers. With debug set, messages
// of unexpected faults reach the client.
func NewBaseHandler(v *validator.Validator, debug bool) *BaseHandler {
	return &BaseHandler{
		validator: v,
		errors:    apperrors.NewGinErrorHandler(debug),
	}
}

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	return h.BindJSON(c, obj) && h.Validate(c, obj)
}

func (h *BaseHandler) BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		h.errors.HandleGinError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}
	if n, ok := obj.(normalizer); ok {
		n.Normalize()
	}
	return true
}

func (h *BaseHandler) Validate(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			h.errors.HandleGinError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			h.errors.HandleGinError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		if appErr.HTTPCode < 500 {
			logger.CtxWarn(ctx, "Service error",
				"error", appErr.Message,
				"details", appErr.Details,
				"path", c.Request.URL.Path,
			)
		}
		h.errors.HandleGinError(c, appErr)
	} else {
		h.errors.HandleGinError(c, apperrors.InternalError(err))
	}
}
