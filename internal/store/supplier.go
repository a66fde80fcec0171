package store

import (
	"context"
	"fmt"
	"time"

	"distribution-service/internal/model"
	"distribution-service/internal/validation"
)

// SupplierInput is the data accepted when creating a supplier
type SupplierInput struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

func (s *Store) CreateSupplier(ctx context.Context, in SupplierInput) (*model.Supplier, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	defer s.metrics.TrackDBOperation("insert")(time.Now())
	s.metrics.RecordEntityOperation("supplier", "create")

	supplier := &model.Supplier{
		Name:    in.Name,
		Phone:   in.Phone,
		Address: in.Address,
		Notes:   in.Notes,
	}
	if err := s.conn(ctx).Create(supplier).Error; err != nil {
		return nil, fmt.Errorf("create supplier: %w", err)
	}
	return supplier, nil
}

// GetSupplier returns nil, nil when no supplier has the id
func (s *Store) GetSupplier(ctx context.Context, id uint) (*model.Supplier, error) {
	defer s.metrics.TrackDBOperation("select")(time.Now())
	s.metrics.RecordEntityOperation("supplier", "get")
	return findByID[model.Supplier](s.conn(ctx), id)
}

func (s *Store) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	defer s.metrics.TrackDBOperation("select")(time.Now())
	s.metrics.RecordEntityOperation("supplier", "list")
	suppliers := []model.Supplier{}
	if err := s.conn(ctx).Order("id").Find(&suppliers).Error; err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}
