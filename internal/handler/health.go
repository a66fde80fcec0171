package handler

import (
	"net/http"

	"distribution-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Health reports service liveness and database reachability
func (h *Handler) Health(c echo.Context) error {
	if err := h.store.Ping(c.Request().Context()); err != nil {
		logger.FromEcho(c).Error("Database ping failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"status":   "unhealthy",
			"service":  h.serviceName,
			"database": "disconnected",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":   "healthy",
		"service":  h.serviceName,
		"database": "connected",
	})
}
