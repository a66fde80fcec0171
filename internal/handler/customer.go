package handler

import (
	"net/http"

	"distribution-service/internal/apperror"
	"distribution-service/internal/posting"
	"distribution-service/internal/store"
	"distribution-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (h *Handler) ListCustomers(c echo.Context) error {
	customers, err := h.store.ListCustomers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *Handler) GetCustomer(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	customer, err := h.store.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if customer == nil {
		return respondError(c, &apperror.NotFoundError{Resource: "Customer", ID: id})
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *Handler) CreateCustomer(c echo.Context) error {
	var req store.CustomerInput
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	customer, err := h.store.CreateCustomer(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	logger.FromEcho(c).Info("Customer created", zap.Uint("customer_id", customer.ID))
	return c.JSON(http.StatusCreated, customer)
}

// CreateCustomerPayment records a payment against the customer's debt
func (h *Handler) CreateCustomerPayment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	ctx := c.Request().Context()

	customer, err := h.store.GetCustomer(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if customer == nil {
		return respondError(c, &apperror.NotFoundError{Resource: "Customer", ID: id})
	}

	var req posting.DebtPaymentInput
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	req.CustomerID = id

	entry, err := h.posting.PostDebtPayment(ctx, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}
