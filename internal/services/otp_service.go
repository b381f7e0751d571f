package services

import (
	"context"
	"time"

	"vibenet_backend/internal/auth"
	"vibenet_backend/internal/models"
	"vibenet_backend/internal/repositories"

	"gorm.io/gorm"
)

// OTPService owns the per-user code lifecycle:
// none -> active -> consumed | expired.
type OTPService struct {
	db   *gorm.DB
	repo repositories.OTPRepository
	ttl  time.Duration
	now  func() time.Time
}

func NewOTPService(db *gorm.DB, repo repositories.OTPRepository, ttl time.Duration) *OTPService {
	return &OTPService{
		db:   db,
		repo: repo,
		ttl:  ttl,
		now:  time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *OTPService) WithClock(now func() time.Time) *OTPService {
	s.now = now
	return s
}

func (s *OTPService) TTL() time.Duration {
	return s.ttl
}

func (s *OTPService) clock() time.Time {
	return s.now().UTC()
}

// CleanupExpired marks the user's unused codes past expiry as used. It runs
// before every active-code read.
func (s *OTPService) CleanupExpired(ctx context.Context, userID string) error {
	_, err := s.repo.ExpireStale(s.db.WithContext(ctx), userID, s.clock())
	return err
}

// GetActive returns the newest unused, unexpired code, or nil.
func (s *OTPService) GetActive(ctx context.Context, userID string) (*models.OneTimePassword, error) {
	return s.repo.FindActive(s.db.WithContext(ctx), userID, s.clock())
}

// GenerateAndStore persists a fresh code valid for the configured TTL.
// repositories.ErrActiveOTPExists means a concurrent request won the race.
func (s *OTPService) GenerateAndStore(ctx context.Context, userID string) (*models.OneTimePassword, error) {
	code, err := auth.GenerateOTPCode()
	if err != nil {
		return nil, err
	}

	otp := &models.OneTimePassword{
		UserID:    userID,
		Code:      code,
		ExpiresAt: s.clock().Add(s.ttl),
	}
	if err := s.repo.Create(s.db.WithContext(ctx), otp); err != nil {
		return nil, err
	}
	return otp, nil
}

// Validate consumes the code if it matches a live one. Wrong, expired and
// already used codes all report false.
func (s *OTPService) Validate(ctx context.Context, userID, code string) (bool, error) {
	return s.repo.Consume(s.db.WithContext(ctx), userID, code, s.clock())
}
