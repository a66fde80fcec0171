// Package store is the gorm-backed entity store. Every method takes a context
// and, when called on a store returned by Transaction, runs inside that unit of work.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"distribution-service/internal/apperror"
	"distribution-service/internal/model"
	"distribution-service/prometheus"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = fmt.Errorf("product: %w", apperror.ErrReferenceNotFound)
	ErrCustomerNotFound = fmt.Errorf("customer: %w", apperror.ErrReferenceNotFound)
	ErrSupplierNotFound = fmt.Errorf("supplier: %w", apperror.ErrReferenceNotFound)
)

// Store gives CRUD and aggregate access to all entities
type Store struct {
	db      *gorm.DB
	metrics *prometheus.Metrics
}

// New returns a store over db. metrics may be nil.
func New(db *gorm.DB, metrics *prometheus.Metrics) *Store {
	return &Store{db: db, metrics: metrics}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Transaction runs fn against a store bound to a single database transaction.
// fn returning an error rolls back everything it wrote.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, metrics: s.metrics})
	})
}

// Ping checks database connectivity
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// findByID loads one row, returning nil without error when it does not exist
func findByID[T any](db *gorm.DB, id uint) (*T, error) {
	var out T
	err := db.First(&out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) sum(ctx context.Context, table interface{}, column string) (decimal.Decimal, error) {
	defer s.metrics.TrackDBOperation("sum")(time.Now())
	var total decimal.Decimal
	row := s.conn(ctx).Model(table).Select("ROUND(COALESCE(SUM("+column+"), 0), ?)", model.MoneyScale).Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum %s: %w", column, err)
	}
	return total, nil
}
