package handlers

import (
	"vibenet_backend/internal/services"
	"vibenet_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	*BaseHandler
	accountService services.AccountService
}

func NewAccountHandler(base *BaseHandler, accountService services.AccountService) *AccountHandler {
	return &AccountHandler{
		BaseHandler:    base,
		accountService: accountService,
	}
}

// RegisterRoutes mounts the endpoints that work without a session.
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/request-otp", h.RequestOTP)
	rg.POST("/verify-otp", h.VerifyOTP)
}

// Register godoc
// @Summary Register a user
// @Tags account
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "New account"
// @Success 200 {object} Response[dto.RegisteredUser]
// @Failure 400 {object} apperrors.ErrorResponse "Validation failed or username/email taken"
// @Router /api/users/register [post]
func (h *AccountHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.accountService.Register(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	ok(c, "User registered successfully.", user)
}

// RequestOTP godoc
// @Summary Email a one-time password
// @Description Repeating the request while a code is active sends nothing and succeeds.
// @Tags account
// @Accept json
// @Produce json
// @Param request body dto.RequestOTPRequest true "Username"
// @Success 200 {object} Response[dto.OTPSent]
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 429 {object} apperrors.ErrorResponse
// @Failure 502 {object} apperrors.ErrorResponse "Email could not be sent"
// @Router /api/users/request-otp [post]
func (h *AccountHandler) RequestOTP(c *gin.Context) {
	var req dto.RequestOTPRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	sent, err := h.accountService.RequestOTP(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	message := "OTP sent successfully."
	if sent.AlreadySent {
		message = "OTP already sent"
	}
	ok(c, message, sent)
}

// VerifyOTP godoc
// @Summary Exchange a one-time password for a session
// @Tags account
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Username and code"
// @Success 200 {object} Response[dto.SessionIssued]
// @Failure 400 {object} apperrors.ErrorResponse "Invalid or expired OTP"
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 429 {object} apperrors.ErrorResponse
// @Router /api/users/verify-otp [post]
func (h *AccountHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	session, err := h.accountService.VerifyOTP(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	ok(c, "OTP verified successfully.", session)
}
