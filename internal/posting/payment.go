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

// DebtPaymentInput is money received from a customer against their debt
type DebtPaymentInput struct {
	CustomerID  uint             `json:"customerId" validate:"required"`
	Amount      *decimal.Decimal `json:"amount" validate:"required,money"`
	Description string           `json:"description"`
	Date        *time.Time       `json:"date"`
}

// PostDebtPayment books the payment and lowers the customer's debt by the
// same amount, stamping the last payment date. Debt may go negative.
func (s *Service) PostDebtPayment(ctx context.Context, in DebtPaymentInput) (_ *model.Transaction, err error) {
	defer func(start time.Time) { s.metrics.TrackPosting("debt_payment")(start, err) }(time.Now())
	log := logger.FromContext(ctx)

	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	paidAt := s.now()
	entry := &model.Transaction{
		Type:        model.TypePaymentIn,
		Category:    model.CategoryDebtPayment,
		Amount:      *in.Amount,
		Date:        s.dateOr(in.Date),
		Description: in.Description,
	}
	entry.SetSubject(model.CustomerSubject(in.CustomerID))

	err = s.store.Transaction(ctx, func(tx *store.Store) error {
		if err := tx.InsertTransaction(ctx, entry); err != nil {
			return err
		}
		return tx.AdjustDebt(ctx, in.CustomerID, entry.Amount.Neg(), &paidAt)
	})
	if err != nil {
		log.Warn("Debt payment aborted", zap.Uint("customer_id", in.CustomerID), zap.Error(err))
		return nil, &apperror.PostingFailure{Op: "post debt payment", Err: err}
	}

	log.Info("Debt payment posted",
		zap.Uint("transaction_id", entry.ID),
		zap.Uint("customer_id", in.CustomerID),
		zap.String("amount", entry.Amount.String()))
	return entry, nil
}

// RecordTransaction stores a user-entered transaction. An entry shaped as a
// customer debt payment goes through PostDebtPayment; any other entry is
// stored without touching balances.
func (s *Service) RecordTransaction(ctx context.Context, in store.TransactionInput) (*model.Transaction, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	switch subject := in.Subject(); subject.Kind {
	case model.SubjectCustomer:
		if model.IsDebtPayment(in.Type, in.Category, subject) {
			return s.PostDebtPayment(ctx, DebtPaymentInput{
				CustomerID:  subject.ID,
				Amount:      in.Amount,
				Description: in.Description,
				Date:        in.Date,
			})
		}
		return s.store.CreateTransaction(ctx, in)
	case model.SubjectSupplier, model.SubjectNone:
		return s.store.CreateTransaction(ctx, in)
	default:
		return nil, fmt.Errorf("unknown transaction subject %q", subject.Kind)
	}
}
