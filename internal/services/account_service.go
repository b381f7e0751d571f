package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"vibenet_backend/internal/email"
	"vibenet_backend/internal/logger"
	"vibenet_backend/internal/models"
	"vibenet_backend/internal/ratelimit"
	"vibenet_backend/internal/repositories"
	"vibenet_backend/internal/services/dto"
	"vibenet_backend/internal/tracing"
	"vibenet_backend/pkg/apperrors"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// AccountService runs register -> request-otp -> verify-otp.
type AccountService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisteredUser, error)
	RequestOTP(ctx context.Context, req *dto.RequestOTPRequest) (*dto.OTPSent, error)
	VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.SessionIssued, error)
}

type accountService struct {
	db          *gorm.DB
	userRepo    repositories.UserRepository
	otps        *OTPService
	tokens      *TokenService
	mailer      email.Provider
	limiter     ratelimit.Limiter
	sendTimeout time.Duration
}

func NewAccountService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	otps *OTPService,
	tokens *TokenService,
	mailer email.Provider,
	limiter ratelimit.Limiter,
	sendTimeout time.Duration,
) AccountService {
	return &accountService{
		db:          db,
		userRepo:    userRepo,
		otps:        otps,
		tokens:      tokens,
		mailer:      mailer,
		limiter:     limiter,
		sendTimeout: sendTimeout,
	}
}

// Register inserts first and only looks at which field collided when the
// store reports a unique violation.
func (s *accountService) Register(ctx context.Context, req *dto.RegisterRequest) (_ *dto.RegisteredUser, err error) {
	ctx, span := tracing.Tracer().Start(ctx, "account.Register")
	defer func() { endSpan(span, err) }()

	user := &models.User{
		FullName: strings.TrimSpace(req.FullName),
		Username: strings.TrimSpace(req.UserName),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
	}

	db := s.db.WithContext(ctx)
	if err := s.userRepo.Create(db, user); err != nil {
		if !errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.InternalError(err)
		}

		exists, checkErr := s.userRepo.CheckExists(db, user.Username, user.Email)
		if checkErr != nil {
			return nil, apperrors.InternalError(checkErr)
		}
		switch {
		case exists.UsernameTaken:
			return nil, apperrors.ErrUsernameTaken
		case exists.EmailTaken:
			return nil, apperrors.ErrEmailTaken
		default:
			return nil, apperrors.ErrRegistrationFailed
		}
	}

	logger.CtxInfo(ctx, "User registered", "user_id", user.ID, "username", user.Username)

	return &dto.RegisteredUser{
		UserID:    user.ID,
		FullName:  user.FullName,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

// RequestOTP is idempotent while a code is active: no new code, no email.
// A delivery failure keeps the stored code.
func (s *accountService) RequestOTP(ctx context.Context, req *dto.RequestOTPRequest) (_ *dto.OTPSent, err error) {
	ctx, span := tracing.Tracer().Start(ctx, "account.RequestOTP")
	defer func() { endSpan(span, err) }()

	username := strings.TrimSpace(req.UserName)
	if err := s.allow(ctx, ratelimit.ActionRequestOTP, username); err != nil {
		return nil, err
	}

	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.otps.CleanupExpired(ctx, user.ID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	active, err := s.otps.GetActive(ctx, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if active != nil {
		return &dto.OTPSent{ExpiresAt: active.ExpiresAt, AlreadySent: true}, nil
	}

	otp, err := s.otps.GenerateAndStore(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrActiveOTPExists) {
			// A concurrent request stored one first.
			return s.alreadySent(ctx, user.ID)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.sendOTP(ctx, user, otp); err != nil {
		logger.CtxError(ctx, "OTP delivery failed", "user_id", user.ID, "provider", s.mailer.Name(), "error", err.Error())
		return nil, apperrors.ErrOTPDeliveryFailed.WithError(err)
	}

	logger.CtxInfo(ctx, "OTP sent", "user_id", user.ID)
	return &dto.OTPSent{ExpiresAt: otp.ExpiresAt}, nil
}

// VerifyOTP reports wrong, expired and replayed codes the same way.
func (s *accountService) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (_ *dto.SessionIssued, err error) {
	ctx, span := tracing.Tracer().Start(ctx, "account.VerifyOTP")
	defer func() { endSpan(span, err) }()

	username := strings.TrimSpace(req.UserName)
	if err := s.allow(ctx, ratelimit.ActionVerifyOTP, username); err != nil {
		return nil, err
	}

	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.otps.CleanupExpired(ctx, user.ID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	ok, err := s.otps.Validate(ctx, user.ID, strings.TrimSpace(req.OTPCode))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !ok {
		logger.CtxWarn(ctx, "OTP rejected", "user_id", user.ID)
		return nil, apperrors.ErrInvalidOTP
	}

	if !user.IsEmailVerified {
		if err := s.userRepo.MarkEmailVerified(s.db.WithContext(ctx), user.ID); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	session, err := s.tokens.IssueSession(ctx, user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Session issued", "user_id", user.ID)

	return &dto.SessionIssued{
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	}, nil
}

func (s *accountService) findUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(s.db.WithContext(ctx), username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// allow treats a limiter outage as a pass.
func (s *accountService) allow(ctx context.Context, action ratelimit.Action, subject string) error {
	err := s.limiter.Allow(ctx, action, subject)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ratelimit.ErrRateLimited):
		logger.CtxWarn(ctx, "Attempt limit reached", "action", string(action), "username", subject)
		return apperrors.ErrTooManyAttempts
	default:
		logger.CtxWarn(ctx, "Rate limiter unavailable", "action", string(action), "error", err.Error())
		return nil
	}
}

func (s *accountService) alreadySent(ctx context.Context, userID string) (*dto.OTPSent, error) {
	active, err := s.otps.GetActive(ctx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if active == nil {
		return nil, apperrors.InternalError(errors.New("active otp vanished after conflict"))
	}
	return &dto.OTPSent{ExpiresAt: active.ExpiresAt, AlreadySent: true}, nil
}

func (s *accountService) sendOTP(ctx context.Context, user *models.User, otp *models.OneTimePassword) error {
	msg, err := email.BuildOTPEmail(user.Email, email.OTPData{
		FullName:     user.FullName,
		Code:         otp.Code,
		ValidMinutes: int(s.otps.TTL().Minutes()),
	})
	if err != nil {
		return err
	}

	if s.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.sendTimeout)
		defer cancel()
	}
	return s.mailer.Send(ctx, msg)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
