package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"stockfolio/internal/logger"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler reports whether the API and its store are reachable.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthResponse is the health check body.
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
}

// GetHealth pings the database.
// @Summary     Health check
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse "Healthy"
// @Failure     503 {object} HealthResponse "Database unreachable"
// @Router      /health [get]
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		logger.Get().Warnw("health check failed", "error", err.Error())
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Database: "unreachable"})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Database: "ok"})
}
