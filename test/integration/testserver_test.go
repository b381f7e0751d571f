package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"vibenet_backend/internal/app"
	"vibenet_backend/internal/config"
	"vibenet_backend/internal/connections"
	"vibenet_backend/internal/models"
	"vibenet_backend/internal/ratelimit"
	"vibenet_backend/internal/storage"
	"vibenet_backend/test/helpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestServer runs the real router over SQLite with in-memory collaborators.
type TestServer struct {
	Server  *httptest.Server
	DB      *gorm.DB
	Config  *config.Config
	Mailer  *helpers.RecordingMailer
	Storage *storage.LocalStorage
}

type serverOption func(*config.Config, *app.Collaborators)

func withConnections(counts map[string]int) serverOption {
	return func(_ *config.Config, c *app.Collaborators) { c.Counter = connections.StaticCounter(counts) }
}

func withFailOpenGate() serverOption {
	return func(cfg *config.Config, _ *app.Collaborators) { cfg.Server.AccessGateFailOpen = true }
}

func withProduction() serverOption {
	return func(cfg *config.Config, _ *app.Collaborators) { cfg.Server.Env = "production" }
}

func NewTestServer(t *testing.T, opts ...serverOption) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "integration-secret"
	cfg.Storage.BasePath = t.TempDir()

	db := helpers.NewTestDB(t)
	store, err := storage.NewLocalStorage(cfg.Storage)
	require.NoError(t, err)

	mailer := &helpers.RecordingMailer{}
	collab := &app.Collaborators{
		Mailer:  mailer,
		Storage: store,
		Counter: connections.StaticCounter{},
		Limiter: ratelimit.NoopLimiter{},
	}
	for _, opt := range opts {
		opt(cfg, collab)
	}

	server := httptest.NewServer(app.SetupRouter(cfg, db, collab))
	t.Cleanup(server.Close)

	return &TestServer{
		Server:  server,
		DB:      db,
		Config:  cfg,
		Mailer:  mailer,
		Storage: store,
	}
}

// Envelope is the decoded response body.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e Envelope) Decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(e.Data, v))
}

// SendRequest sends body as JSON and returns the response with its envelope.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, Envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, ts.Server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return ts.do(t, req, token)
}

// SendFile uploads data as the multipart field "file".
func (ts *TestServer) SendFile(t *testing.T, method, path, token, contentType string, data []byte) (*http.Response, Envelope) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="upload"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequestWithContext(context.Background(), method, ts.Server.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return ts.do(t, req, token)
}

func (ts *TestServer) do(t *testing.T, req *http.Request, token string) (*http.Response, Envelope) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	return res, env
}

// Session is a signed-in test user.
type Session struct {
	UserID       string `json:"userId"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RegisterAndLogin walks register -> request-otp -> verify-otp over HTTP.
func (ts *TestServer) RegisterAndLogin(t *testing.T, username string) Session {
	t.Helper()

	res, env := ts.SendRequest(t, http.MethodPost, "/api/users/register", "", map[string]string{
		"fullName": "Test " + username,
		"userName": username,
		"email":    fmt.Sprintf("%s@example.com", username),
	})
	require.Equal(t, http.StatusOK, res.StatusCode, env.Message)

	res, env = ts.SendRequest(t, http.MethodPost, "/api/users/request-otp", "", map[string]string{"userName": username})
	require.Equal(t, http.StatusOK, res.StatusCode, env.Message)

	res, env = ts.SendRequest(t, http.MethodPost, "/api/users/verify-otp", "", map[string]string{
		"userName": username,
		"otpCode":  ts.activeCode(t, username),
	})
	require.Equal(t, http.StatusOK, res.StatusCode, env.Message)

	var session Session
	env.Decode(t, &session)
	return session
}

func (ts *TestServer) activeCode(t *testing.T, username string) string {
	t.Helper()
	var user models.User
	require.NoError(t, ts.DB.Where("username = ? AND is_deleted = ?", username, false).First(&user).Error)

	var otp models.OneTimePassword
	err := ts.DB.Where("user_id = ? AND is_used = ?", user.ID, false).Order("created_at DESC").First(&otp).Error
	require.NoError(t, err)
	return otp.Code
}
