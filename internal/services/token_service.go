package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vibenet_backend/internal/auth"
	"vibenet_backend/internal/models"
	"vibenet_backend/internal/repositories"

	"gorm.io/gorm"
)

var ErrRefreshTokenUnusable = errors.New("refresh token revoked or expired")

// Session is a freshly minted token pair.
type Session struct {
	AccessToken  string
	RefreshToken string
}

type TokenService struct {
	db         *gorm.DB
	issuer     *auth.TokenIssuer
	repo       repositories.RefreshTokenRepository
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenService(db *gorm.DB, issuer *auth.TokenIssuer, repo repositories.RefreshTokenRepository, refreshDays int) *TokenService {
	return &TokenService{
		db:         db,
		issuer:     issuer,
		repo:       repo,
		refreshTTL: time.Duration(refreshDays) * 24 * time.Hour,
		now:        time.Now,
	}
}

func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// IssueSession mints an access token and persists a new refresh token.
func (s *TokenService) IssueSession(ctx context.Context, user *models.User) (*Session, error) {
	access, err := s.issuer.CreateAccessToken(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, err
	}

	refresh, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	if err := s.SaveRefreshToken(s.db.WithContext(ctx), user.ID, refresh); err != nil {
		return nil, err
	}

	return &Session{AccessToken: access, RefreshToken: refresh}, nil
}

// SaveRefreshToken stores token for userID, unrevoked, expiring after the
// configured number of days.
func (s *TokenService) SaveRefreshToken(db *gorm.DB, userID, token string) error {
	rt := &models.RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: s.now().UTC().Add(s.refreshTTL),
	}
	if err := s.repo.Create(db, rt); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// RevokeAll revokes every refresh token of the user. db may be a transaction.
func (s *TokenService) RevokeAll(db *gorm.DB, userID string) (int64, error) {
	return s.repo.RevokeAllByUserID(db, userID)
}

// CheckRefreshToken returns the stored token if it exists, is not revoked and
// has not expired. No endpoint redeems refresh tokens yet; this is the check
// such an endpoint would run.
func (s *TokenService) CheckRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	rt, err := s.repo.FindByToken(s.db.WithContext(ctx), token)
	if err != nil {
		return nil, err
	}
	if !rt.Usable(s.now().UTC()) {
		return nil, ErrRefreshTokenUnusable
	}
	return rt, nil
}
