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

// PurchaseInput is a purchase invoice as entered by the user
type PurchaseInput struct {
	SupplierID    *uint            `json:"supplierId"`
	Date          *time.Time       `json:"date"`
	TotalCost     *decimal.Decimal `json:"totalCost" validate:"required,money"`
	TransportCost *decimal.Decimal `json:"transportCost" validate:"omitempty,money"`
	LaborCost     *decimal.Decimal `json:"laborCost" validate:"omitempty,money"`
	Notes         string           `json:"notes"`
	Items         []ItemInput      `json:"items" validate:"required,dive"`
}

// PostPurchase records the purchase, raises stock for every item and books
// the total cost as an expense. Transport and labor costs stay on the header only.
func (s *Service) PostPurchase(ctx context.Context, in PurchaseInput) (_ *model.Purchase, err error) {
	defer func(start time.Time) { s.metrics.TrackPosting("purchase")(start, err) }(time.Now())
	log := logger.FromContext(ctx)

	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	purchase := &model.Purchase{
		SupplierID:    in.SupplierID,
		Date:          s.dateOr(in.Date),
		TotalCost:     *in.TotalCost,
		TransportCost: model.DecimalOr(in.TransportCost, decimal.Zero),
		LaborCost:     model.DecimalOr(in.LaborCost, decimal.Zero),
		Notes:         in.Notes,
		Items:         make([]model.PurchaseItem, 0, len(in.Items)),
	}
	for _, item := range in.Items {
		purchase.Items = append(purchase.Items, model.PurchaseItem{
			ProductID:  item.ProductID,
			Quantity:   *item.Quantity,
			UnitPrice:  *item.UnitPrice,
			TotalPrice: item.lineTotal(),
		})
	}

	err = s.store.Transaction(ctx, func(tx *store.Store) error {
		if in.SupplierID != nil {
			supplier, err := tx.GetSupplier(ctx, *in.SupplierID)
			if err != nil {
				return err
			}
			if supplier == nil {
				return fmt.Errorf("%w: id %d", store.ErrSupplierNotFound, *in.SupplierID)
			}
		}

		if err := tx.InsertPurchase(ctx, purchase); err != nil {
			return err
		}
		for _, item := range purchase.Items {
			if err := tx.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		entry := &model.Transaction{
			Type:        model.TypeExpense,
			Category:    model.CategoryPurchase,
			Amount:      purchase.TotalCost,
			Date:        purchase.Date,
			Description: fmt.Sprintf("Purchase #%d", purchase.ID),
		}
		entry.SetSubject(model.SupplierSubjectOf(purchase.SupplierID))
		return tx.InsertTransaction(ctx, entry)
	})
	if err != nil {
		log.Warn("Purchase posting aborted", zap.Error(err))
		return nil, &apperror.PostingFailure{Op: "post purchase", Err: err}
	}

	log.Info("Purchase posted",
		zap.Uint("purchase_id", purchase.ID),
		zap.String("total_cost", purchase.TotalCost.String()),
		zap.Int("items", len(purchase.Items)))
	return purchase, nil
}
