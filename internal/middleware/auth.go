package middleware

import (
	"context"
	"strings"

	"vibenet_backend/internal/auth"
	"vibenet_backend/internal/logger"
	"vibenet_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AccountChecker reports the soft-delete flag of an account, including
// deleted ones.
type AccountChecker interface {
	AccountState(ctx context.Context, userID string) (deleted bool, found bool, err error)
}

// AccessGate rejects requests whose bearer token belongs to a soft-deleted
// account. The signature is not checked here.
//
// Requests without a bearer token pass. With failOpen set, an undecodable
// token or a failed lookup also pass; otherwise they get 401 and 503.
func AccessGate(checker AccountChecker, failOpen bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		ctx := c.Request.Context()

		subject, err := auth.ParseSubjectUnverified(token)
		if err == nil {
			_, err = uuid.Parse(subject)
		}
		if err != nil {
			if failOpen {
				logger.CtxDebug(ctx, "Access gate skipped undecodable token", "error", err.Error())
				c.Next()
				return
			}
			apperrors.HandleError(c, apperrors.ErrInvalidAccessToken)
			return
		}

		deleted, _, err := checker.AccountState(ctx, subject)
		if err != nil {
			logger.CtxError(ctx, "Access gate lookup failed", "user_id", subject, "error", err.Error())
			if failOpen {
				c.Next()
				return
			}
			apperrors.HandleError(c, apperrors.ErrAccessCheckUnavailable.WithError(err))
			return
		}
		if deleted {
			logger.CtxWarn(ctx, "Request from deleted account rejected", "user_id", subject)
			apperrors.HandleError(c, apperrors.ErrAccountDeleted)
			return
		}

		c.Request = c.Request.WithContext(logger.WithUserID(ctx, subject))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
