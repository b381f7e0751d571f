package services

import (
	"vibenet_backend/internal/auth"
	"vibenet_backend/internal/config"
	"vibenet_backend/internal/connections"
	"vibenet_backend/internal/email"
	"vibenet_backend/internal/imageprocessor"
	"vibenet_backend/internal/ratelimit"
	"vibenet_backend/internal/repositories"
	"vibenet_backend/internal/storage"

	"gorm.io/gorm"
)

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AccountService AccountService
	UserService    UserService
	OTPService     *OTPService
	TokenService   *TokenService
	Issuer         *auth.TokenIssuer
}

// Dependencies are the external collaborators the services are built on.
type Dependencies struct {
	DB      *gorm.DB
	Mailer  email.Provider
	Storage storage.Storage
	Counter connections.Counter
	Limiter ratelimit.Limiter
	Repos   *repositories.Container
}

func NewServiceContainer(cfg *config.Config, deps Dependencies) *ServiceContainer {
	repos := deps.Repos
	if repos == nil {
		repos = repositories.NewContainer()
	}
	limiter := deps.Limiter
	if limiter == nil {
		limiter = ratelimit.NoopLimiter{}
	}
	counter := deps.Counter
	if counter == nil {
		counter = connections.StaticCounter{}
	}

	issuer := auth.NewTokenIssuer(cfg.JWT)
	otps := NewOTPService(deps.DB, repos.OTP, cfg.OTP.TTL)
	tokens := NewTokenService(deps.DB, issuer, repos.RefreshToken, cfg.JWT.RefreshDays)

	return &ServiceContainer{
		AccountService: NewAccountService(deps.DB, repos.User, otps, tokens, deps.Mailer, limiter, cfg.Email.SendTimeout),
		UserService: NewUserService(
			deps.DB,
			repos.User,
			repos.Interest,
			tokens,
			deps.Storage,
			imageprocessor.NewProcessor(cfg.Upload.JPEGQuality, cfg.Upload.MaxDimension, cfg.Upload.MaxPixels),
			counter,
			cfg.Upload.MaxSizeMB,
		),
		OTPService:   otps,
		TokenService: tokens,
		Issuer:       issuer,
	}
}
