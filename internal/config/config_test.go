package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Minute, cfg.OTP.TTL)
	assert.Equal(t, 5, cfg.Upload.MaxSizeMB)
	assert.Equal(t, 85, cfg.Upload.JPEGQuality)
	assert.False(t, cfg.Server.AccessGateFailOpen)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  env: production
email:
  provider: smtp
jwt:
  secret: from-file
  access_minutes: 30
otp:
  ttl: 5m
`)
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("JWT_REFRESH_DAYS", "7")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, 30, cfg.JWT.AccessMinutes)
	assert.Equal(t, 7, cfg.JWT.RefreshDays)
	assert.Equal(t, 5*time.Minute, cfg.OTP.TTL)
}

func TestLoad_RejectsEmptySecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load(writeConfig(t, "server:\n  port: 8081\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")
}

func TestValidate_UnknownProviders(t *testing.T) {
	cfg := Default()
	cfg.JWT.Secret = "x"
	cfg.Email.Provider = "pigeon"
	cfg.Storage.Type = "floppy"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pigeon")
	assert.Contains(t, err.Error(), "floppy")
}

func TestValidate_LogProviderOutsideProductionOnly(t *testing.T) {
	cfg := Default()
	cfg.JWT.Secret = "x"
	require.NoError(t, cfg.Validate())

	cfg.Server.Env = "production"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email.provider log")

	cfg.Email.Provider = "sendgrid"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_AttemptLimits(t *testing.T) {
	cfg := Default()
	cfg.JWT.Secret = "x"
	cfg.OTP.MaxVerifyAttempts = 0
	cfg.OTP.AttemptWindow = 0
	cfg.Upload.MaxPixels = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "otp.max_verify_attempts")
	assert.Contains(t, err.Error(), "otp.attempt_window")
	assert.Contains(t, err.Error(), "upload.max_pixels")
}
