package store

import (
	"context"
	"fmt"
	"time"

	"distribution-service/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// InsertPurchase writes the header together with its items
func (s *Store) InsertPurchase(ctx context.Context, p *model.Purchase) error {
	defer s.metrics.TrackDBOperation("insert")(time.Now())
	s.metrics.RecordEntityOperation("purchase", "create")
	if err := s.conn(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// GetPurchase returns the purchase with its items, or nil, nil when absent
func (s *Store) GetPurchase(ctx context.Context, id uint) (*model.Purchase, error) {
	defer s.metrics.TrackDBOperation("select")(time.Now())
	s.metrics.RecordEntityOperation("purchase", "get")
	return findByID[model.Purchase](s.conn(ctx).Preload("Items", orderItems), id)
}

// ListPurchases returns all purchases with items, newest first
func (s *Store) ListPurchases(ctx context.Context) ([]model.Purchase, error) {
	defer s.metrics.TrackDBOperation("select")(time.Now())
	s.metrics.RecordEntityOperation("purchase", "list")
	purchases := []model.Purchase{}
	err := s.conn(ctx).Preload("Items", orderItems).Order("date DESC, id DESC").Find(&purchases).Error
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return purchases, nil
}

// SumPurchaseCosts totals the cost of every purchase
func (s *Store) SumPurchaseCosts(ctx context.Context) (decimal.Decimal, error) {
	return s.sum(ctx, &model.Purchase{}, "total_cost")
}

// InsertSale writes the header together with its items
func (s *Store) InsertSale(ctx context.Context, sale *model.Sale) error {
	defer s.metrics.TrackDBOperation("insert")(time.Now())
	s.metrics.RecordEntityOperation("sale", "create")
	if err := s.conn(ctx).Create(sale).Error; err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetSale returns the sale with its items, or nil, nil when absent
func (s *Store) GetSale(ctx context.Context, id uint) (*model.Sale, error) {
	defer s.metrics.TrackDBOperation("select")(time.Now())
	s.metrics.RecordEntityOperation("sale", "get")
	return findByID[model.Sale](s.conn(ctx).Preload("Items", orderItems), id)
}

// ListSales returns all sales with items, newest first
func (s *Store) ListSales(ctx context.Context) ([]model.Sale, error) {
	defer s.metrics.TrackDBOperation("select")(time.Now())
	s.metrics.RecordEntityOperation("sale", "list")
	sales := []model.Sale{}
	err := s.conn(ctx).Preload("Items", orderItems).Order("date DESC, id DESC").Find(&sales).Error
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return sales, nil
}

// SumSaleTotals totals the amount of every sale
func (s *Store) SumSaleTotals(ctx context.Context) (decimal.Decimal, error) {
	return s.sum(ctx, &model.Sale{}, "total_amount")
}
