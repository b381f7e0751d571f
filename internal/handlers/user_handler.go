package handlers

import (
	"errors"
	"net/http"

	"vibenet_backend/internal/services"
	"vibenet_backend/internal/services/dto"
	"vibenet_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
	maxUploadMB int
}

func NewUserHandler(base *BaseHandler, userService services.UserService, maxUploadMB int) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
		maxUploadMB: maxUploadMB,
	}
}

// RegisterRoutes mounts the endpoints behind the access gate.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/interests", h.GetInterests)
	rg.GET("/user/:userId", h.GetUser)
	rg.DELETE("/user/:userId", h.DeleteUser)
	rg.GET("/users/:username", h.GetPublicProfile)
	rg.PUT("/:userId", h.UpdateProfile)
	rg.PUT("/:userId/profile-picture", h.UploadProfilePicture)
	rg.PUT("/:userId/interests", h.UpdateInterests)
}

// GetUser godoc
// @Summary Get the full profile of a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} Response[dto.UserProfile]
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/users/user/{userId} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	ok(c, "User profile retrieved successfully.", profile)
}

// GetPublicProfile godoc
// @Summary Get the public profile of a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} Response[dto.PublicProfile]
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/users/users/{username} [get]
func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	profile, err := h.userService.GetPublicProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	ok(c, "Profile fetched.", profile)
}

// UploadProfilePicture godoc
// @Summary Replace the profile picture
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param file formData file true "JPEG or PNG image"
// @Success 200 {object} Response[dto.ProfilePicture]
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/users/{userId}/profile-picture [put]
func (h *UserHandler) UploadProfilePicture(c *gin.Context) {
	// Leave headroom for the multipart envelope; the service checks the
	// file itself.
	limit := int64(h.maxUploadMB+1) * 1024 * 1024
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			h.HandleServiceError(c, apperrors.ErrFileTooLarge(h.maxUploadMB))
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			h.HandleServiceError(c, apperrors.ErrNoFileUploaded)
		default:
			h.HandleServiceError(c, apperrors.ErrInvalidFile.WithError(err))
		}
		return
	}

	picture, err := h.userService.UpdateProfilePicture(c.Request.Context(), c.Param("userId"), file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	ok(c, "Profile picture updated.", picture)
}

// DeleteUser godoc
// @Summary Soft-delete an account
// @Description Revokes every refresh token of the account.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} Response[any]
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/users/user/{userId} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteAccount(c.Request.Context(), c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	okEmpty(c, "Account deleted successfully.")
}

// UpdateProfile godoc
// @Summary Update profile fields
// @Description Only the fields present in the body change.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} Response[dto.UserProfile]
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/users/{userId} [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), c.Param("userId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	ok(c, "Profile updated successfully.", profile)
}

// GetInterests godoc
// @Summary List the interest catalogue
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response[[]dto.Interest]
// @Router /api/users/interests [get]
func (h *UserHandler) GetInterests(c *gin.Context) {
	interests, err := h.userService.GetInterests(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	ok(c, "Interests fetched.", interests)
}

// UpdateInterests godoc
// @Summary Replace the interests of a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param request body dto.UpdateInterestsRequest true "Interest IDs"
// @Success 200 {object} Response[any]
// @Failure 400 {object} apperrors.ErrorResponse "Empty list or unknown interest ID"
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/users/{userId}/interests [put]
func (h *UserHandler) UpdateInterests(c *gin.Context) {
	var req dto.UpdateInterestsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.userService.UpdateInterests(c.Request.Context(), c.Param("userId"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	okEmpty(c, "Interests updated successfully.")
}
