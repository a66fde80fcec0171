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

// CustomerInput is the data accepted when creating a customer.
// Debt, risk flag and last payment date are always server assigned.
type CustomerInput struct {
	Name        string           `json:"name" validate:"required"`
	Phone       string           `json:"phone"`
	Address     string           `json:"address"`
	CreditLimit *decimal.Decimal `json:"creditLimit" validate:"omitempty,gte=0,money"`
	Notes       string           `json:"notes"`
}

func (s *Store) CreateCustomer(ctx context.Context, in CustomerInput) (*model.Customer, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	defer s.metrics.TrackDBOperation("insert")(time.Now())
	s.metrics.RecordEntityOperation("customer", "create")

	customer := &model.Customer{
		Name:        in.Name,
		Phone:       in.Phone,
		Address:     in.Address,
		CreditLimit: model.DecimalOr(in.CreditLimit, decimal.Zero),
		TotalDebt:   decimal.Zero,
		Notes:       in.Notes,
	}
	if err := s.conn(ctx).Create(customer).Error; err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

// GetCustomer returns nil, nil when no customer has the id
func (s *Store) GetCustomer(ctx context.Context, id uint) (*model.Customer, error) {
	defer s.metrics.TrackDBOperation("select")(time.Now())
	s.metrics.RecordEntityOperation("customer", "get")
	return findByID[model.Customer](s.conn(ctx), id)
}

func (s *Store) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	defer s.metrics.TrackDBOperation("select")(time.Now())
	s.metrics.RecordEntityOperation("customer", "list")
	customers := []model.Customer{}
	if err := s.conn(ctx).Order("id").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// AdjustDebt adds delta to the customer's debt in a single UPDATE, rounded to column scale.
// A non-nil paidAt also records it as the last payment date.
func (s *Store) AdjustDebt(ctx context.Context, customerID uint, delta decimal.Decimal, paidAt *time.Time) error {
	defer s.metrics.TrackDBOperation("update_debt")(time.Now())
	updates := map[string]interface{}{
		"total_debt": gorm.Expr("ROUND(total_debt + ?, ?)", delta, model.MoneyScale),
	}
	if paidAt != nil {
		updates["last_payment_date"] = *paidAt
	}
	res := s.conn(ctx).Model(&model.Customer{}).Where("id = ?", customerID).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("adjust debt of customer %d: %w", customerID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrCustomerNotFound, customerID)
	}
	return nil
}

// SumCustomerDebt totals the outstanding debt of every customer
func (s *Store) SumCustomerDebt(ctx context.Context) (decimal.Decimal, error) {
	return s.sum(ctx, &model.Customer{}, "total_debt")
}
