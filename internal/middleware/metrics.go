package middleware

import (
	"strconv"
	"time"

	"distribution-service/prometheus"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request counts and latency per route
func MetricsMiddleware(metrics *prometheus.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Start timer for request duration
			start := time.Now()

			// Process request, rendering any error so the status is final
			if err := next(c); err != nil {
				c.Error(err)
			}

			// Get request details
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			// Record metrics
			metrics.ObserveHTTPRequest(c.Request().Method, path, strconv.Itoa(c.Response().Status), time.Since(start))
			return nil
		}
	}
}
