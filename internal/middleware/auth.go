package middleware

import (
	"net/http"
	"strings"

	"distribution-service/pkg/jwtutil"
	"distribution-service/pkg/logger"
	"distribution-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthMiddleware validates the Bearer token on every request of the group
func AuthMiddleware(metrics *prometheus.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			// Get the Authorization header
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				metrics.RecordAuthAttempt("missing")
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing authorization token"})
			}

			// Check if it's a Bearer token
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Invalid Authorization header format")
				metrics.RecordAuthAttempt("malformed")
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid authorization format, expected Bearer token"})
			}

			// Validate the token
			claims, err := jwtutil.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid JWT token", zap.Error(err))
				metrics.RecordAuthAttempt("invalid")
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid or expired token"})
			}

			// Store user info in context for later use
			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			c.Set(logger.EchoKey, log.With(zap.Uint("user_id", claims.UserID)))
			metrics.RecordAuthAttempt("success")

			return next(c)
		}
	}
}
