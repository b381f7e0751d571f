package repositories_test

import (
	"testing"

	"vibenet_backend/internal/models"
	"vibenet_backend/internal/repositories"
	"vibenet_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestUserRepository_CreateRejectsDuplicates(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository()

	require.NoError(t, repo.Create(db, &models.User{FullName: "Alice", Username: "alice", Email: "A@x.com"}))

	err := repo.Create(db, &models.User{FullName: "Other", Username: "alice", Email: "other@x.com"})
	assert.ErrorIs(t, err, repositories.ErrUserAlreadyExists)

	err = repo.Create(db, &models.User{FullName: "Other", Username: "alice2", Email: "a@x.com"})
	assert.ErrorIs(t, err, repositories.ErrUserAlreadyExists, "email uniqueness is case-insensitive")
}

func TestUserRepository_UsernameIsCaseSensitive(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository()

	require.NoError(t, repo.Create(db, &models.User{FullName: "Bob", Username: "bob", Email: "bob@x.com"}))
	require.NoError(t, repo.Create(db, &models.User{FullName: "Bob", Username: "Bob", Email: "bob2@x.com"}))

	res, err := repo.CheckExists(db, "BOB", "nobody@x.com")
	require.NoError(t, err)
	assert.False(t, res.UsernameTaken)
	assert.False(t, res.EmailTaken)
}

func TestUserRepository_CheckExists(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository()
	helpers.CreateUser(t, db, "carol")

	res, err := repo.CheckExists(db, "carol", "fresh@x.com")
	require.NoError(t, err)
	assert.True(t, res.UsernameTaken)
	assert.False(t, res.EmailTaken)

	res, err = repo.CheckExists(db, "someone", "CAROL@test.com")
	require.NoError(t, err)
	assert.False(t, res.UsernameTaken)
	assert.True(t, res.EmailTaken)
}

func TestUserRepository_SoftDeleteHidesUserFromReads(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository()
	user := helpers.CreateUser(t, db, "dave")

	require.NoError(t, repo.SoftDelete(db, user.ID))

	_, err := repo.FindByID(db, user.ID)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	_, err = repo.FindByUsername(db, "dave")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	_, err = repo.FindPublicByUsername(db, "dave")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)

	deleted, found, err := repo.IsDeleted(db, user.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, deleted)

	assert.ErrorIs(t, repo.SoftDelete(db, user.ID), repositories.ErrUserNotFound, "second delete is a no-op")

	// The name is free again once the holder is deleted.
	require.NoError(t, repo.Create(db, &models.User{FullName: "Dave 2", Username: "dave", Email: "dave@test.com"}))
}

func TestUserRepository_IsDeletedUnknownUser(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository()

	deleted, found, err := repo.IsDeleted(db, "00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, deleted)
}

func TestUserRepository_UpdatesStampUpdatedAt(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository()
	user := helpers.CreateUser(t, db, "erin")
	before := user.UpdatedAt

	require.NoError(t, repo.UpdateProfilePicture(db, user.ID, "http://cdn/pics/erin.jpg"))
	require.NoError(t, repo.UpdateInterests(db, user.ID, datatypes.JSON("[2,1]")))

	got, err := repo.FindByID(db, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ProfilePictureURL)
	assert.Equal(t, "http://cdn/pics/erin.jpg", *got.ProfilePictureURL)
	assert.Equal(t, []int{2, 1}, got.InterestIDs())
	assert.False(t, got.UpdatedAt.Before(before))

	assert.ErrorIs(t, repo.UpdateInterests(db, "missing", datatypes.JSON("[1]")), repositories.ErrUserNotFound)
}

func TestUserRepository_FindPublicByUsername(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository()
	user := helpers.CreateUser(t, db, "frank")
	bio := "hello"
	user.Bio = &bio
	require.NoError(t, repo.UpdateProfile(db, user))

	profile, err := repo.FindPublicByUsername(db, "frank")
	require.NoError(t, err)
	assert.Equal(t, "Test frank", profile.FullName)
	require.NotNil(t, profile.Bio)
	assert.Equal(t, "hello", *profile.Bio)
}
