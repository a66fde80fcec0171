package handler

import (
	"errors"
	"net/http"

	"distribution-service/internal/apperror"
	"distribution-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (h *Handler) Dashboard(c echo.Context) error {
	dashboard, err := h.analytics.Dashboard(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dashboard)
}

// AIInsights asks the insight generator to comment on the current figures
func (h *Handler) AIInsights(c echo.Context) error {
	ctx := c.Request().Context()

	summary, err := h.analytics.InsightSummary(ctx)
	if err != nil {
		h.metrics.RecordInsightRequest("failure")
		return respondError(c, err)
	}

	insights, err := h.insights.Generate(ctx, summary)
	if err != nil {
		h.metrics.RecordInsightRequest("failure")
		var integrationErr *apperror.IntegrationFailure
		if !errors.As(err, &integrationErr) {
			err = &apperror.IntegrationFailure{Service: "insight", Err: err}
		}
		return respondError(c, err)
	}

	h.metrics.RecordInsightRequest("success")
	logger.FromEcho(c).Info("Insights generated",
		zap.Int("high_risk_customers", len(summary.HighRiskCustomerNames)),
		zap.Int("low_stock_products", len(summary.LowStockProductNames)))
	return c.JSON(http.StatusOK, insights)
}
