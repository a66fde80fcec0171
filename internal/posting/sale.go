package posting

import (
	"context"
	"fmt"
	"time"

	"distribution-service/internal/apperror"
	"distribution-service/internal/model"
	"distribution-service/internal/store"
	"distribution-service/internal/validation"
	"distribution-service/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaleInput is a sale invoice as entered by the user.
// An empty PaymentStatus is derived from the paid and total amounts.
type SaleInput struct {
	CustomerID    *uint               `json:"customerId"`
	Date          *time.Time          `json:"date"`
	TotalAmount   *decimal.Decimal    `json:"totalAmount" validate:"required,money"`
	PaidAmount    *decimal.Decimal    `json:"paidAmount" validate:"omitempty,money"`
	PaymentStatus model.PaymentStatus `json:"paymentStatus" validate:"omitempty,oneof=paid partial credit"`
	Notes         string              `json:"notes"`
	Items         []ItemInput         `json:"items" validate:"required,dive"`
}

// PostSale records the sale, lowers stock for every item, adds any unpaid
// remainder to the customer's debt and books the paid part as incoming cash.
// Stock is allowed to go negative.
func (s *Service) PostSale(ctx context.Context, in SaleInput) (_ *model.Sale, err error) {
	defer func(start time.Time) { s.metrics.TrackPosting("sale")(start, err) }(time.Now())
	log := logger.FromContext(ctx)

	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	paid := model.DecimalOr(in.PaidAmount, decimal.Zero)
	status := in.PaymentStatus
	if status == "" {
		status = model.ClassifyPayment(*in.TotalAmount, paid)
	}

	sale := &model.Sale{
		CustomerID:    in.CustomerID,
		Date:          s.dateOr(in.Date),
		TotalAmount:   *in.TotalAmount,
		PaidAmount:    paid,
		PaymentStatus: status,
		Notes:         in.Notes,
		Items:         make([]model.SaleItem, 0, len(in.Items)),
	}
	for _, item := range in.Items {
		sale.Items = append(sale.Items, model.SaleItem{
			ProductID:  item.ProductID,
			Quantity:   *item.Quantity,
			UnitPrice:  *item.UnitPrice,
			TotalPrice: item.lineTotal(),
		})
	}

	err = s.store.Transaction(ctx, func(tx *store.Store) error {
		if in.CustomerID != nil {
			customer, err := tx.GetCustomer(ctx, *in.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return fmt.Errorf("%w: id %d", store.ErrCustomerNotFound, *in.CustomerID)
			}
		}

		if err := tx.InsertSale(ctx, sale); err != nil {
			return err
		}
		for _, item := range sale.Items {
			if err := tx.AdjustStock(ctx, item.ProductID, item.Quantity.Neg()); err != nil {
				return err
			}
		}

		if remaining := sale.Remaining(); remaining.IsPositive() && sale.CustomerID != nil {
			if err := tx.AdjustDebt(ctx, *sale.CustomerID, remaining, nil); err != nil {
				return err
			}
		}

		if !sale.PaidAmount.IsPositive() {
			return nil
		}
		entry := &model.Transaction{
			Type:        model.TypePaymentIn,
			Category:    model.CategorySale,
			Amount:      sale.PaidAmount,
			Date:        sale.Date,
			Description: fmt.Sprintf("Sale #%d", sale.ID),
		}
		entry.SetSubject(model.CustomerSubjectOf(sale.CustomerID))
		return tx.InsertTransaction(ctx, entry)
	})
	if err != nil {
		log.Warn("Sale posting aborted", zap.Error(err))
		return nil, &apperror.PostingFailure{Op: "post sale", Err: err}
	}

	log.Info("Sale posted",
		zap.Uint("sale_id", sale.ID),
		zap.String("total_amount", sale.TotalAmount.String()),
		zap.String("paid_amount", sale.PaidAmount.String()),
		zap.String("payment_status", string(sale.PaymentStatus)))
	return sale, nil
}
