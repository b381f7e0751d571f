package services_test

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"vibenet_backend/internal/config"
	"vibenet_backend/internal/connections"
	"vibenet_backend/internal/models"
	"vibenet_backend/internal/ratelimit"
	"vibenet_backend/internal/repositories"
	"vibenet_backend/internal/services"
	"vibenet_backend/internal/storage"
	"vibenet_backend/test/helpers"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	cfg      *config.Config
	db       *gorm.DB
	clock    *helpers.FixedClock
	mailer   *helpers.RecordingMailer
	storage  *storage.LocalStorage
	services *services.ServiceContainer
}

type fixtureOption func(*services.Dependencies)

func withLimiter(l ratelimit.Limiter) fixtureOption {
	return func(d *services.Dependencies) { d.Limiter = l }
}

func withCounter(c connections.Counter) fixtureOption {
	return func(d *services.Dependencies) { d.Counter = c }
}

func withOTPRepository(repo repositories.OTPRepository) fixtureOption {
	return func(d *services.Dependencies) {
		d.Repos = repositories.NewContainer()
		d.Repos.OTP = repo
	}
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	cfg := config.Default()
	cfg.JWT.Secret = "service-test-secret"
	cfg.Storage.BasePath = t.TempDir()

	db := helpers.NewTestDB(t)
	store, err := storage.NewLocalStorage(cfg.Storage)
	require.NoError(t, err)

	deps := services.Dependencies{
		DB:      db,
		Mailer:  &helpers.RecordingMailer{},
		Storage: store,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	clock := helpers.NewFixedClock(time.Now())
	container := services.NewServiceContainer(cfg, deps)
	container.OTPService.WithClock(clock.Now)
	container.TokenService.WithClock(clock.Now)

	return &fixture{
		cfg:      cfg,
		db:       db,
		clock:    clock,
		mailer:   deps.Mailer.(*helpers.RecordingMailer),
		storage:  store,
		services: container,
	}
}

// storedCodes returns the user's codes, oldest first.
func (f *fixture) storedCodes(t *testing.T, userID string) []models.OneTimePassword {
	t.Helper()
	var otps []models.OneTimePassword
	require.NoError(t, f.db.Where("user_id = ?", userID).Order("created_at").Find(&otps).Error)
	return otps
}

func (f *fixture) activeCode(t *testing.T, userID string) string {
	t.Helper()
	otp, err := f.services.OTPService.GetActive(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, otp, "no active code")
	return otp.Code
}

func fileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}
