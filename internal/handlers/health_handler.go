package handlers

import (
	"context"
	"net/http"
	"time"

	"vibenet_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthStatus struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
}

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health godoc
// @Summary Liveness and database check
// @Tags health
// @Produce json
// @Success 200 {object} Response[HealthStatus]
// @Failure 503 {object} Response[HealthStatus]
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := HealthStatus{Status: "ok", Database: "ok"}
	code := http.StatusOK

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		logger.CtxError(ctx, "Health check failed", "error", err.Error())
		status = HealthStatus{Status: "degraded", Database: "unavailable"}
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, Response[HealthStatus]{
		Success: code == http.StatusOK,
		Message: status.Status,
		Data:    status,
	})
}
