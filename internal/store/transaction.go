package store

import (
	"context"
	"fmt"
	"time"

	"distribution-service/internal/model"
	"distribution-service/internal/validation"

	"github.com/shopspring/decimal"
)

// TransactionInput is a user-entered cash movement
type TransactionInput struct {
	Type        model.TransactionType `json:"type" validate:"required,oneof=expense payment_in payment_out"`
	Category    string                `json:"category" validate:"required"`
	Amount      *decimal.Decimal      `json:"amount" validate:"required,money"`
	RelatedID   *uint                 `json:"relatedId"`
	RelatedType model.SubjectKind     `json:"relatedType" validate:"omitempty,oneof=customer supplier"`
	Description string                `json:"description"`
	Date        *time.Time            `json:"date"`
}

// Subject resolves the counterparty, inferring its kind when only an id was given
func (in TransactionInput) Subject() model.Subject {
	if in.RelatedID == nil {
		return model.NoSubject()
	}
	kind := in.RelatedType
	if kind == model.SubjectNone {
		kind = model.InferSubjectKind(in.Type, in.Category)
	}
	switch kind {
	case model.SubjectCustomer:
		return model.CustomerSubject(*in.RelatedID)
	case model.SubjectSupplier:
		return model.SupplierSubject(*in.RelatedID)
	default:
		return model.NoSubject()
	}
}

// CreateTransaction stores a transaction and nothing else. It never touches
// customer or product balances.
func (s *Store) CreateTransaction(ctx context.Context, in TransactionInput) (*model.Transaction, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	entry := &model.Transaction{
		Type:        in.Type,
		Category:    in.Category,
		Amount:      *in.Amount,
		Date:        time.Now().UTC(),
		Description: in.Description,
	}
	if in.Date != nil {
		entry.Date = *in.Date
	}
	entry.SetSubject(in.Subject())
	if err := s.InsertTransaction(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// InsertTransaction writes a fully built ledger entry
func (s *Store) InsertTransaction(ctx context.Context, entry *model.Transaction) error {
	defer s.metrics.TrackDBOperation("insert")(time.Now())
	s.metrics.RecordEntityOperation("transaction", "create")
	if err := s.conn(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListTransactions returns all transactions, newest first
func (s *Store) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	defer s.metrics.TrackDBOperation("select")(time.Now())
	s.metrics.RecordEntityOperation("transaction", "list")
	entries := []model.Transaction{}
	if err := s.conn(ctx).Order("date DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return entries, nil
}
