package handler

import (
	"net/http"

	"distribution-service/internal/apperror"
	"distribution-service/internal/posting"

	"github.com/labstack/echo/v4"
)

func (h *Handler) ListSales(c echo.Context) error {
	sales, err := h.store.ListSales(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sales)
}

func (h *Handler) GetSale(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	sale, err := h.store.GetSale(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if sale == nil {
		return respondError(c, &apperror.NotFoundError{Resource: "Sale", ID: id})
	}
	return c.JSON(http.StatusOK, sale)
}

// CreateSale posts a sale invoice
func (h *Handler) CreateSale(c echo.Context) error {
	var req posting.SaleInput
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	sale, err := h.posting.PostSale(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, sale)
}
