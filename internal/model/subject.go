package model

// SubjectKind names the entity a transaction refers to
type SubjectKind string

const (
	SubjectNone     SubjectKind = ""
	SubjectCustomer SubjectKind = "customer"
	SubjectSupplier SubjectKind = "supplier"
)

// Subject is the counterparty of a transaction: a customer, a supplier, or nobody
type Subject struct {
	Kind SubjectKind
	ID   uint
}

func NoSubject() Subject { return Subject{} }

func CustomerSubject(id uint) Subject { return Subject{Kind: SubjectCustomer, ID: id} }

func SupplierSubject(id uint) Subject { return Subject{Kind: SubjectSupplier, ID: id} }

// CustomerSubjectOf returns Customer(*id), or no subject when id is nil
func CustomerSubjectOf(id *uint) Subject {
	if id == nil {
		return NoSubject()
	}
	return CustomerSubject(*id)
}

// SupplierSubjectOf returns Supplier(*id), or no subject when id is nil
func SupplierSubjectOf(id *uint) Subject {
	if id == nil {
		return NoSubject()
	}
	return SupplierSubject(*id)
}

// CustomerID returns the customer id when the subject is a customer
func (s Subject) CustomerID() (uint, bool) {
	return s.ID, s.Kind == SubjectCustomer
}

// InferSubjectKind picks the counterparty kind for a bare related id.
// Known categories decide first, then money direction: incoming money comes
// from customers, outgoing money and expenses go to suppliers.
func InferSubjectKind(txType TransactionType, category string) SubjectKind {
	switch category {
	case CategoryDebtPayment, CategorySale:
		return SubjectCustomer
	case CategoryPurchase:
		return SubjectSupplier
	}
	switch txType {
	case TypePaymentIn:
		return SubjectCustomer
	case TypePaymentOut, TypeExpense:
		return SubjectSupplier
	default:
		return SubjectNone
	}
}
