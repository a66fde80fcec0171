package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a cash movement
type TransactionType string

const (
	TypeExpense    TransactionType = "expense"
	TypePaymentIn  TransactionType = "payment_in"
	TypePaymentOut TransactionType = "payment_out"
)

// Categories written by the posting workflow. Users may record any other category.
const (
	CategoryPurchase    = "purchase"
	CategorySale        = "sale"
	CategoryDebtPayment = "debt_payment"
)

// Transaction is a single cash ledger entry
type Transaction struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Type        TransactionType `json:"type" gorm:"type:varchar(20);not null;index"`
	Category    string          `json:"category" gorm:"type:varchar(50);not null;index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Date        time.Time       `json:"date" gorm:"not null;index"`
	Description string          `json:"description" gorm:"type:text"`
	RelatedType SubjectKind     `json:"relatedType" gorm:"type:varchar(20);not null"`
	RelatedID   *uint           `json:"relatedId" gorm:"index"`
}

// Subject decodes the stored related columns
func (t Transaction) Subject() Subject {
	if t.RelatedID == nil {
		return NoSubject()
	}
	switch t.RelatedType {
	case SubjectCustomer:
		return CustomerSubject(*t.RelatedID)
	case SubjectSupplier:
		return SupplierSubject(*t.RelatedID)
	default:
		return NoSubject()
	}
}

// SetSubject encodes s into the related columns
func (t *Transaction) SetSubject(s Subject) {
	if s.Kind == SubjectNone {
		t.RelatedType = SubjectNone
		t.RelatedID = nil
		return
	}
	id := s.ID
	t.RelatedType = s.Kind
	t.RelatedID = &id
}

// IsDebtPayment reports whether an entry of this shape settles customer debt
func IsDebtPayment(txType TransactionType, category string, subject Subject) bool {
	_, isCustomer := subject.CustomerID()
	return txType == TypePaymentIn && category == CategoryDebtPayment && isCustomer
}
