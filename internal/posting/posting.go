// Package posting implements the atomic invoice and payment workflows.
// Each operation is one database transaction: header, items, balance deltas
// and the derived ledger entry are committed together or not at all.
package posting

import (
	"time"

	"distribution-service/internal/model"
	"distribution-service/internal/store"
	"distribution-service/prometheus"

	"github.com/shopspring/decimal"
)

// Service posts purchases, sales and debt payments
type Service struct {
	store   *store.Store
	metrics *prometheus.Metrics
	now     func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the time source used for default dates
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService returns a posting service over st. metrics may be nil.
func NewService(st *store.Store, metrics *prometheus.Metrics, opts ...Option) *Service {
	s := &Service{
		store:   st,
		metrics: metrics,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ItemInput is one invoice line as entered by the user
type ItemInput struct {
	ProductID uint             `json:"productId" validate:"required"`
	Quantity  *decimal.Decimal `json:"quantity" validate:"required,money"`
	UnitPrice *decimal.Decimal `json:"unitPrice" validate:"required,money"`
}

func (in ItemInput) lineTotal() decimal.Decimal {
	return model.LineTotal(*in.Quantity, *in.UnitPrice)
}

func (s *Service) dateOr(t *time.Time) time.Time {
	if t == nil || t.IsZero() {
		return s.now()
	}
	return *t
}
