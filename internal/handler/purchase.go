package handler

import (
	"net/http"

	"distribution-service/internal/apperror"
	"distribution-service/internal/posting"

	"github.com/labstack/echo/v4"
)

func (h *Handler) ListPurchases(c echo.Context) error {
	purchases, err := h.store.ListPurchases(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, purchases)
}

func (h *Handler) GetPurchase(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	purchase, err := h.store.GetPurchase(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if purchase == nil {
		return respondError(c, &apperror.NotFoundError{Resource: "Purchase", ID: id})
	}
	return c.JSON(http.StatusOK, purchase)
}

// CreatePurchase posts a purchase invoice
func (h *Handler) CreatePurchase(c echo.Context) error {
	var req posting.PurchaseInput
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	purchase, err := h.posting.PostPurchase(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, purchase)
}
