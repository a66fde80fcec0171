package handler

import (
	"strconv"

	"distribution-service/internal/analytics"
	"distribution-service/internal/apperror"
	"distribution-service/internal/insight"
	"distribution-service/internal/posting"
	"distribution-service/internal/store"
	"distribution-service/prometheus"

	"github.com/labstack/echo/v4"
)

// Handler serves the HTTP API on top of the domain services
type Handler struct {
	serviceName string
	store       *store.Store
	posting     *posting.Service
	analytics   *analytics.Aggregator
	insights    insight.Generator
	metrics     *prometheus.Metrics
}

// New wires a Handler
func New(serviceName string, st *store.Store, ps *posting.Service, agg *analytics.Aggregator, gen insight.Generator, metrics *prometheus.Metrics) *Handler {
	return &Handler{
		serviceName: serviceName,
		store:       st,
		posting:     ps,
		analytics:   agg,
		insights:    gen,
		metrics:     metrics,
	}
}

// RegisterRoutes mounts the business API on g, normally the /api group
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/suppliers", h.ListSuppliers)
	g.POST("/suppliers", h.CreateSupplier)
	g.GET("/suppliers/:id", h.GetSupplier)

	g.GET("/customers", h.ListCustomers)
	g.POST("/customers", h.CreateCustomer)
	g.GET("/customers/:id", h.GetCustomer)
	g.POST("/customers/:id/payments", h.CreateCustomerPayment)

	g.GET("/products", h.ListProducts)
	g.POST("/products", h.CreateProduct)
	g.GET("/products/:id", h.GetProduct)

	g.GET("/purchases", h.ListPurchases)
	g.POST("/purchases", h.CreatePurchase)
	g.GET("/purchases/:id", h.GetPurchase)

	g.GET("/sales", h.ListSales)
	g.POST("/sales", h.CreateSale)
	g.GET("/sales/:id", h.GetSale)

	g.GET("/transactions", h.ListTransactions)
	g.POST("/transactions", h.CreateTransaction)

	g.GET("/analytics/dashboard", h.Dashboard)
	g.GET("/analytics/ai-insights", h.AIInsights)
}

// parseID reads the :id path parameter
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.NewValidationError("id", "must be a positive integer")
	}
	return uint(id), nil
}
