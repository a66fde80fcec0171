// Package analytics computes dashboard figures fresh from current table state.
package analytics

import (
	"context"
	"strconv"

	"distribution-service/internal/insight"
	"distribution-service/internal/model"
	"distribution-service/internal/store"
	"distribution-service/prometheus"

	"github.com/shopspring/decimal"
)

// Dashboard is the summary shown on the home screen
type Dashboard struct {
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalProfit      decimal.Decimal `json:"totalProfit"`
	TotalDebt        decimal.Decimal `json:"totalDebt"`
	LowStockProducts []model.Product `json:"lowStockProducts"`
}

// Aggregator reads the entity store to build summaries
type Aggregator struct {
	store   *store.Store
	metrics *prometheus.Metrics
}

func NewAggregator(st *store.Store, metrics *prometheus.Metrics) *Aggregator {
	return &Aggregator{store: st, metrics: metrics}
}

// Dashboard returns revenue, profit, outstanding debt and the low stock list.
// Profit is an estimate: revenue minus purchase totals only, with transport,
// labor and other expenses not netted out.
func (a *Aggregator) Dashboard(ctx context.Context) (*Dashboard, error) {
	revenue, err := a.store.SumSaleTotals(ctx)
	if err != nil {
		return nil, err
	}
	purchaseCost, err := a.store.SumPurchaseCosts(ctx)
	if err != nil {
		return nil, err
	}
	debt, err := a.store.SumCustomerDebt(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := a.store.LowStockProducts(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range lowStock {
		stock, _ := p.CurrentStock.Float64()
		a.metrics.UpdateProductInventory(strconv.FormatUint(uint64(p.ID), 10), p.Name, stock)
	}

	return &Dashboard{
		TotalRevenue:     revenue,
		TotalProfit:      revenue.Sub(purchaseCost),
		TotalDebt:        debt,
		LowStockProducts: lowStock,
	}, nil
}

// InsightSummary gathers the figures handed to the insight generator
func (a *Aggregator) InsightSummary(ctx context.Context) (insight.Summary, error) {
	debt, err := a.store.SumCustomerDebt(ctx)
	if err != nil {
		return insight.Summary{}, err
	}
	customers, err := a.store.ListCustomers(ctx)
	if err != nil {
		return insight.Summary{}, err
	}
	lowStock, err := a.store.LowStockProducts(ctx)
	if err != nil {
		return insight.Summary{}, err
	}

	summary := insight.Summary{
		TotalDebt:             debt,
		HighRiskCustomerNames: []string{},
		LowStockProductNames:  make([]string, 0, len(lowStock)),
	}
	for _, c := range customers {
		if c.IsRisky() {
			summary.HighRiskCustomerNames = append(summary.HighRiskCustomerNames, c.Name)
		}
	}
	for _, p := range lowStock {
		summary.LowStockProductNames = append(summary.LowStockProductNames, p.Name)
	}
	return summary, nil
}
