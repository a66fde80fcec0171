package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestClassifyPayment(t *testing.T) {
	cases := []struct {
		total, paid string
		want        PaymentStatus
	}{
		{"100", "0", PaymentCredit},
		{"100", "40", PaymentPartial},
		{"100", "100", PaymentPaid},
		{"100", "120", PaymentPaid},
	}
	for _, tc := range cases {
		if got := ClassifyPayment(d(tc.total), d(tc.paid)); got != tc.want {
			t.Fatalf("ClassifyPayment(%s, %s) = %s, want %s", tc.total, tc.paid, got, tc.want)
		}
	}
}

func TestCustomerIsRisky(t *testing.T) {
	if (Customer{CreditLimit: d("1000"), TotalDebt: d("1000")}).IsRisky() {
		t.Fatalf("debt equal to the limit is not risky")
	}
	if !(Customer{CreditLimit: d("1000"), TotalDebt: d("1000.01")}).IsRisky() {
		t.Fatalf("debt above the limit is risky")
	}
	if !(Customer{IsHighRisk: true}).IsRisky() {
		t.Fatalf("flagged customer is risky")
	}
}

func TestProductIsLowStock(t *testing.T) {
	if !(Product{CurrentStock: d("10"), ReorderLevel: d("15")}).IsLowStock() {
		t.Fatalf("10 <= 15 should be low")
	}
	if !(Product{CurrentStock: d("15"), ReorderLevel: d("15")}).IsLowStock() {
		t.Fatalf("stock at the reorder level should be low")
	}
	if (Product{CurrentStock: d("20"), ReorderLevel: d("15")}).IsLowStock() {
		t.Fatalf("20 > 15 should not be low")
	}
}

func TestTransactionSubjectRoundTrip(t *testing.T) {
	var tx Transaction
	tx.SetSubject(CustomerSubject(7))
	if tx.RelatedType != SubjectCustomer || tx.RelatedID == nil || *tx.RelatedID != 7 {
		t.Fatalf("unexpected columns %q %v", tx.RelatedType, tx.RelatedID)
	}
	if got := tx.Subject(); got != CustomerSubject(7) {
		t.Fatalf("subject = %+v", got)
	}

	tx.SetSubject(NoSubject())
	if tx.RelatedID != nil || tx.RelatedType != SubjectNone {
		t.Fatalf("expected cleared columns")
	}

	id := uint(3)
	tx = Transaction{RelatedType: "unknown", RelatedID: &id}
	if got := tx.Subject(); got != NoSubject() {
		t.Fatalf("unknown kind should decode to no subject, got %+v", got)
	}
}

func TestIsDebtPayment(t *testing.T) {
	if !IsDebtPayment(TypePaymentIn, CategoryDebtPayment, CustomerSubject(1)) {
		t.Fatalf("payment_in/debt_payment/customer is a debt payment")
	}
	if IsDebtPayment(TypePaymentIn, CategorySale, CustomerSubject(1)) {
		t.Fatalf("payment_in/sale is not a debt payment")
	}
	if IsDebtPayment(TypePaymentIn, CategoryDebtPayment, NoSubject()) {
		t.Fatalf("debt payment needs a customer")
	}
	if IsDebtPayment(TypePaymentIn, CategoryDebtPayment, SupplierSubject(1)) {
		t.Fatalf("debt payment subject must be a customer")
	}
	if IsDebtPayment(TypePaymentOut, CategoryDebtPayment, CustomerSubject(1)) {
		t.Fatalf("payment_out is not a debt payment")
	}
}

func TestInferSubjectKind(t *testing.T) {
	cases := []struct {
		txType   TransactionType
		category string
		want     SubjectKind
	}{
		{TypePaymentIn, CategoryDebtPayment, SubjectCustomer},
		{TypePaymentIn, CategorySale, SubjectCustomer},
		{TypeExpense, CategoryPurchase, SubjectSupplier},
		{TypeExpense, "diesel", SubjectSupplier},
		{TypePaymentOut, "labor", SubjectSupplier},
		{TypePaymentIn, "other", SubjectCustomer},
	}
	for _, tc := range cases {
		if got := InferSubjectKind(tc.txType, tc.category); got != tc.want {
			t.Fatalf("InferSubjectKind(%s, %s) = %q, want %q", tc.txType, tc.category, got, tc.want)
		}
	}
}

func TestSaleRemaining(t *testing.T) {
	s := Sale{TotalAmount: d("300"), PaidAmount: d("100")}
	if !s.Remaining().Equal(d("200")) {
		t.Fatalf("remaining = %s", s.Remaining())
	}
}

func TestMoneyHelpers(t *testing.T) {
	cases := map[string]bool{
		"0":            true,
		"12.5":         true,
		"-0.01":        true,
		"99999999.99":  true,
		"1.255":        false,
		"100000000":    false,
		"-100000000.5": false,
	}
	for in, want := range cases {
		if got := FitsMoneyColumn(decimal.RequireFromString(in)); got != want {
			t.Fatalf("FitsMoneyColumn(%s) = %v, want %v", in, got, want)
		}
	}

	if got := LineTotal(decimal.RequireFromString("1.25"), decimal.RequireFromString("1.25")); got.String() != "1.56" {
		t.Fatalf("line total = %s", got)
	}

	fallback := decimal.NewFromInt(100)
	if got := DecimalOr(nil, fallback); !got.Equal(fallback) {
		t.Fatalf("nil should fall back, got %s", got)
	}
	v := decimal.RequireFromString("0.1")
	if got := DecimalOr(&v, fallback); !got.Equal(v) {
		t.Fatalf("got %s", got)
	}
}
