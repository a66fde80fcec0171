package store

import (
	"context"
	"fmt"
	"time"

	"distribution-service/internal/model"
	"distribution-service/internal/validation"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductInput is the data accepted when creating a product
type ProductInput struct {
	Name         string           `json:"name" validate:"required"`
	Unit         string           `json:"unit" validate:"required"`
	CurrentStock *decimal.Decimal `json:"currentStock" validate:"omitempty,money"`
	ReorderLevel *decimal.Decimal `json:"reorderLevel" validate:"omitempty,money"`
}

func (s *Store) CreateProduct(ctx context.Context, in ProductInput) (*model.Product, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	defer s.metrics.TrackDBOperation("insert")(time.Now())
	s.metrics.RecordEntityOperation("product", "create")

	product := &model.Product{
		Name:         in.Name,
		Unit:         in.Unit,
		CurrentStock: model.DecimalOr(in.CurrentStock, decimal.Zero),
		ReorderLevel: model.DecimalOr(in.ReorderLevel, model.DefaultReorderLevel),
	}
	if err := s.conn(ctx).Create(product).Error; err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// GetProduct returns nil, nil when no product has the id
func (s *Store) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	defer s.metrics.TrackDBOperation("select")(time.Now())
	s.metrics.RecordEntityOperation("product", "get")
	return findByID[model.Product](s.conn(ctx), id)
}

func (s *Store) ListProducts(ctx context.Context) ([]model.Product, error) {
	defer s.metrics.TrackDBOperation("select")(time.Now())
	s.metrics.RecordEntityOperation("product", "list")
	products := []model.Product{}
	if err := s.conn(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// LowStockProducts lists products whose stock is at or below their reorder level
func (s *Store) LowStockProducts(ctx context.Context) ([]model.Product, error) {
	defer s.metrics.TrackDBOperation("select")(time.Now())
	products := []model.Product{}
	if err := s.conn(ctx).Where("current_stock <= reorder_level").Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list low stock products: %w", err)
	}
	return products, nil
}

func (s *Store) CountProducts(ctx context.Context) (int64, error) {
	defer s.metrics.TrackDBOperation("count")(time.Now())
	var n int64
	if err := s.conn(ctx).Model(&model.Product{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// AdjustStock adds delta to the product's stock in a single UPDATE.
// The sum is rounded to column scale in SQL so sqlite's REAL storage stays exact.
// Negative results are stored as is.
func (s *Store) AdjustStock(ctx context.Context, productID uint, delta decimal.Decimal) error {
	defer s.metrics.TrackDBOperation("update_stock")(time.Now())
	res := s.conn(ctx).Model(&model.Product{}).Where("id = ?", productID).
		Update("current_stock", gorm.Expr("ROUND(current_stock + ?, ?)", delta, model.MoneyScale))
	if res.Error != nil {
		return fmt.Errorf("adjust stock of product %d: %w", productID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrProductNotFound, productID)
	}
	return nil
}
