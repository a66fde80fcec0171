package handler

import (
	"net/http"

	"distribution-service/internal/apperror"
	"distribution-service/internal/store"
	"distribution-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (h *Handler) ListSuppliers(c echo.Context) error {
	suppliers, err := h.store.ListSuppliers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, suppliers)
}

func (h *Handler) GetSupplier(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	supplier, err := h.store.GetSupplier(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if supplier == nil {
		return respondError(c, &apperror.NotFoundError{Resource: "Supplier", ID: id})
	}
	return c.JSON(http.StatusOK, supplier)
}

func (h *Handler) CreateSupplier(c echo.Context) error {
	var req store.SupplierInput
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	supplier, err := h.store.CreateSupplier(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	logger.FromEcho(c).Info("Supplier created", zap.Uint("supplier_id", supplier.ID))
	return c.JSON(http.StatusCreated, supplier)
}
