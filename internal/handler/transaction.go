package handler

import (
	"net/http"

	"distribution-service/internal/store"

	"github.com/labstack/echo/v4"
)

func (h *Handler) ListTransactions(c echo.Context) error {
	entries, err := h.store.ListTransactions(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

// CreateTransaction records a manual cash movement. Customer debt payments
// adjust the debt; every other entry is stored as is.
func (h *Handler) CreateTransaction(c echo.Context) error {
	var req store.TransactionInput
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	entry, err := h.posting.RecordTransaction(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}
