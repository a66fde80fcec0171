package handler

import (
	"errors"
	"fmt"
	"net/http"

	"distribution-service/internal/apperror"
	"distribution-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var errInvalidRequest = errors.New("invalid request data")

// respondError maps an error to its HTTP status and body
func respondError(c echo.Context, err error) error {
	status, body := errorResponse(err)

	log := logger.FromEcho(c)
	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("path", c.Request().URL.Path),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", fields...)
	} else {
		log.Warn("Request rejected", fields...)
	}

	return c.JSON(status, body)
}

func errorResponse(err error) (int, echo.Map) {
	var (
		validationErr  *apperror.ValidationError
		notFoundErr    *apperror.NotFoundError
		postingErr     *apperror.PostingFailure
		integrationErr *apperror.IntegrationFailure
		httpErr        *echo.HTTPError
	)

	switch {
	case errors.Is(err, errInvalidRequest):
		return http.StatusBadRequest, echo.Map{"message": "Invalid request data"}
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, echo.Map{
			"message": "Validation failed",
			"errors":  validationErr.Fields,
		}
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, echo.Map{"message": notFoundErr.Resource + " not found"}
	case errors.As(err, &postingErr):
		if postingErr.ClientCaused() {
			return http.StatusBadRequest, echo.Map{"message": postingErr.Error()}
		}
		return http.StatusInternalServerError, echo.Map{"message": "Internal server error"}
	case errors.As(err, &integrationErr):
		return http.StatusInternalServerError, echo.Map{"message": "Failed to generate insights"}
	case errors.As(err, &httpErr):
		return httpErr.Code, echo.Map{"message": fmt.Sprint(httpErr.Message)}
	default:
		return http.StatusInternalServerError, echo.Map{"message": "Internal server error"}
	}
}

// HTTPErrorHandler renders errors that escape handlers and middleware
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if err := respondError(c, err); err != nil {
		logger.FromEcho(c).Error("Failed to write error response", zap.Error(err))
	}
}

// bind decodes the request body into dst
func bind(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	return nil
}
