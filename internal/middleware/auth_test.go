package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"vibenet_backend/internal/auth"
	"vibenet_backend/internal/config"
	"vibenet_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	deleted map[string]bool
	err     error
	calls   int
}

func (s *stubChecker) AccountState(_ context.Context, userID string) (bool, bool, error) {
	s.calls++
	if s.err != nil {
		return false, false, s.err
	}
	deleted, found := s.deleted[userID]
	return deleted, found, nil
}

func gatedRouter(checker AccountChecker, failOpen bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AccessGate(checker, failOpen))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, logger.GetUserID(c.Request.Context()))
	})
	return r
}

func hit(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	issuer := auth.NewTokenIssuer(config.JWTConfig{Secret: "gate", Issuer: "vibenet", Audience: "vibenet-clients", AccessMinutes: 5})
	token, err := issuer.CreateAccessToken(userID, "user", "user@example.com")
	require.NoError(t, err)
	return token
}

func envelopeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Message
}

func TestAccessGate_NoBearerPasses(t *testing.T) {
	checker := &stubChecker{}
	w := hit(gatedRouter(checker, false), "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, checker.calls)
}

func TestAccessGate_LiveAccountPasses(t *testing.T) {
	id := uuid.NewString()
	checker := &stubChecker{deleted: map[string]bool{id: false}}

	w := hit(gatedRouter(checker, false), "Bearer "+tokenFor(t, id))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, w.Body.String())
}

func TestAccessGate_UnknownAccountPasses(t *testing.T) {
	w := hit(gatedRouter(&stubChecker{}, false), "Bearer "+tokenFor(t, uuid.NewString()))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccessGate_DeletedAccountRejected(t *testing.T) {
	id := uuid.NewString()
	checker := &stubChecker{deleted: map[string]bool{id: true}}

	for _, failOpen := range []bool{false, true} {
		w := hit(gatedRouter(checker, failOpen), "Bearer "+tokenFor(t, id))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Account is deleted. Access denied.", envelopeMessage(t, w))
	}
}

func TestAccessGate_UndecodableToken(t *testing.T) {
	for _, header := range []string{"Bearer garbage", "Bearer " + tokenFor(t, "not-a-uuid")} {
		w := hit(gatedRouter(&stubChecker{}, false), header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)

		w = hit(gatedRouter(&stubChecker{}, true), header)
		assert.Equal(t, http.StatusOK, w.Code, header)
	}
}

func TestAccessGate_LookupFault(t *testing.T) {
	checker := &stubChecker{err: errors.New("db down")}
	token := "Bearer " + tokenFor(t, uuid.NewString())

	w := hit(gatedRouter(checker, false), token)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = hit(gatedRouter(checker, true), token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	_, ok = bearerToken("Basic abc")
	assert.False(t, ok)

	_, ok = bearerToken("Bearer ")
	assert.False(t, ok)
}
