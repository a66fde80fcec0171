package handler

import (
	"net/http"

	"distribution-service/internal/apperror"
	"distribution-service/internal/store"
	"distribution-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (h *Handler) ListProducts(c echo.Context) error {
	products, err := h.store.ListProducts(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	product, err := h.store.GetProduct(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if product == nil {
		return respondError(c, &apperror.NotFoundError{Resource: "Product", ID: id})
	}
	return c.JSON(http.StatusOK, product)
}

func (h *Handler) CreateProduct(c echo.Context) error {
	var req store.ProductInput
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	product, err := h.store.CreateProduct(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	logger.FromEcho(c).Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("product_name", product.Name))
	return c.JSON(http.StatusCreated, product)
}
