package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"vibenet_backend/internal/connections"
	"vibenet_backend/internal/imageprocessor"
	"vibenet_backend/internal/logger"
	"vibenet_backend/internal/models"
	"vibenet_backend/internal/repositories"
	"vibenet_backend/internal/services/dto"
	"vibenet_backend/internal/storage"
	"vibenet_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const pictureContentType = "image/jpeg"

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.UserProfile, error)
	GetPublicProfile(ctx context.Context, username string) (*dto.PublicProfile, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserProfile, error)
	UpdateProfilePicture(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.ProfilePicture, error)
	GetInterests(ctx context.Context) ([]dto.Interest, error)
	UpdateInterests(ctx context.Context, userID string, req *dto.UpdateInterestsRequest) error
	DeleteAccount(ctx context.Context, userID string) error

	// AccountState sees soft-deleted rows. Used by the access gate.
	AccountState(ctx context.Context, userID string) (deleted bool, found bool, err error)
}

type userService struct {
	db           *gorm.DB
	userRepo     repositories.UserRepository
	interestRepo repositories.InterestRepository
	tokens       *TokenService
	storage      storage.Storage
	images       *imageprocessor.Processor
	counter      connections.Counter
	maxSizeMB    int
}

func NewUserService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	interestRepo repositories.InterestRepository,
	tokens *TokenService,
	store storage.Storage,
	images *imageprocessor.Processor,
	counter connections.Counter,
	maxSizeMB int,
) UserService {
	return &userService{
		db:           db,
		userRepo:     userRepo,
		interestRepo: interestRepo,
		tokens:       tokens,
		storage:      store,
		images:       images,
		counter:      counter,
		maxSizeMB:    maxSizeMB,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.UserProfile, error) {
	user, err := s.findLive(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserProfile(user), nil
}

func (s *userService) GetPublicProfile(ctx context.Context, username string) (*dto.PublicProfile, error) {
	profile, err := s.userRepo.FindPublicByUsername(s.db.WithContext(ctx), username)
	if err != nil {
		return nil, userError(err)
	}
	return dto.NewPublicProfile(profile, s.counter.CountAccepted(ctx, username)), nil
}

// UpdateProfile overwrites only the fields present in req.
func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserProfile, error) {
	user, err := s.findLive(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyProfileChanges(user, req)

	db := s.db.WithContext(ctx)
	if err := s.userRepo.UpdateProfile(db, user); err != nil {
		return nil, userError(err)
	}

	updated, err := s.userRepo.FindByID(db, user.ID)
	if err != nil {
		return nil, userError(err)
	}
	return dto.NewUserProfile(updated), nil
}

func applyProfileChanges(user *models.User, req *dto.UpdateProfileRequest) {
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Mobile != nil {
		user.Mobile = req.Mobile
	}
	if req.Gender != nil {
		gender := strings.ToLower(*req.Gender)
		user.Gender = &gender
	}
	if req.DateOfBirth != nil {
		dob := req.DateOfBirth.Time.UTC()
		user.DateOfBirth = &dob
	}
	if req.City != nil {
		user.City = req.City
	}
	if req.State != nil {
		user.State = req.State
	}
	if req.Country != nil {
		user.Country = req.Country
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
}

// UpdateProfilePicture stores the upload as {userId}.jpg and records its URL.
func (s *userService) UpdateProfilePicture(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.ProfilePicture, error) {
	if file == nil {
		return nil, apperrors.ErrNoFileUploaded
	}
	if file.Size <= 0 {
		return nil, apperrors.ErrInvalidFile
	}
	if file.Size > int64(s.maxSizeMB)*1024*1024 {
		return nil, apperrors.ErrFileTooLarge(s.maxSizeMB)
	}
	if !imageprocessor.IsAllowedContentType(file.Header.Get("Content-Type")) {
		return nil, apperrors.ErrInvalidFileType
	}

	user, err := s.findLive(ctx, userID)
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.ErrInvalidFile.WithError(err)
	}
	defer src.Close()

	data, err := s.images.ToJPEG(src)
	if err != nil {
		if errors.Is(err, imageprocessor.ErrUndecodable) {
			return nil, apperrors.ErrInvalidFile.WithError(err)
		}
		return nil, apperrors.InternalError(err)
	}

	key := user.ID + ".jpg"
	if err := s.storage.Save(ctx, key, bytes.NewReader(data), pictureContentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url := s.storage.URL(key)
	if err := s.userRepo.UpdateProfilePicture(s.db.WithContext(ctx), user.ID, url); err != nil {
		return nil, userError(err)
	}

	logger.CtxInfo(ctx, "Profile picture updated", "user_id", user.ID, "bytes", len(data))
	return &dto.ProfilePicture{URL: url}, nil
}

func (s *userService) GetInterests(ctx context.Context) ([]dto.Interest, error) {
	interests, err := s.interestRepo.FindAll(s.db.WithContext(ctx))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.Interest, 0, len(interests))
	for _, i := range interests {
		result = append(result, dto.Interest{ID: i.ID, Name: i.Name})
	}
	return result, nil
}

// UpdateInterests replaces the user's interests. Duplicate ids collapse to
// their first occurrence; every remaining id must exist in the catalogue.
func (s *userService) UpdateInterests(ctx context.Context, userID string, req *dto.UpdateInterestsRequest) error {
	if _, err := uuid.Parse(userID); err != nil {
		return apperrors.ErrInvalidUserID
	}

	ids := dedupe(req.InterestIDs)
	if len(ids) == 0 {
		return apperrors.ErrNoInterests
	}

	db := s.db.WithContext(ctx)
	known, err := s.interestRepo.CountExisting(db, ids)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if known != int64(len(ids)) {
		return apperrors.ErrInvalidInterests
	}

	encoded, err := models.EncodeInterestIDs(ids)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdateInterests(db, userID, encoded); err != nil {
		return userError(err)
	}
	return nil
}

func dedupe(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// DeleteAccount soft-deletes the user and revokes every refresh token in one
// transaction.
func (s *userService) DeleteAccount(ctx context.Context, userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return apperrors.ErrInvalidUserID
	}

	var revoked int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.SoftDelete(tx, userID); err != nil {
			return err
		}
		n, err := s.tokens.RevokeAll(tx, userID)
		revoked = n
		return err
	})
	if err != nil {
		return userError(err)
	}

	logger.CtxInfo(ctx, "Account deleted", "user_id", userID, "revoked_tokens", revoked)
	return nil
}

func (s *userService) AccountState(ctx context.Context, userID string) (bool, bool, error) {
	return s.userRepo.IsDeleted(s.db.WithContext(ctx), userID)
}

func (s *userService) findLive(ctx context.Context, userID string) (*models.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperrors.ErrInvalidUserID
	}
	user, err := s.userRepo.FindByID(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, userError(err)
	}
	return user, nil
}

func userError(err error) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrUserNotFound
	}
	return apperrors.InternalError(err)
}
