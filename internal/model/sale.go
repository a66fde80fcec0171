package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus classifies how much of a sale was paid up front
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPartial PaymentStatus = "partial"
	PaymentCredit  PaymentStatus = "credit"
)

// ClassifyPayment derives the status from the paid amount against the total.
// Nothing paid is credit, less than the total is partial, anything else is paid.
func ClassifyPayment(total, paid decimal.Decimal) PaymentStatus {
	switch {
	case paid.IsZero():
		return PaymentCredit
	case paid.LessThan(total):
		return PaymentPartial
	default:
		return PaymentPaid
	}
}

// Sale is an invoice for goods sold, optionally to a known customer
type Sale struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	CustomerID    *uint           `json:"customerId" gorm:"index"`
	Date          time.Time       `json:"date" gorm:"not null;index"`
	TotalAmount   decimal.Decimal `json:"totalAmount" gorm:"type:decimal(10,2);not null"`
	PaidAmount    decimal.Decimal `json:"paidAmount" gorm:"type:decimal(10,2);not null"`
	PaymentStatus PaymentStatus   `json:"paymentStatus" gorm:"type:varchar(20);not null"`
	Notes         string          `json:"notes" gorm:"type:text"`
	Items         []SaleItem      `json:"items" gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// Remaining is the part of the total that was not paid up front
func (s Sale) Remaining() decimal.Decimal {
	return s.TotalAmount.Sub(s.PaidAmount)
}

// SaleItem is one product line of a sale
type SaleItem struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	SaleID     uint            `json:"saleId" gorm:"index;not null"`
	ProductID  uint            `json:"productId" gorm:"index;not null"`
	Quantity   decimal.Decimal `json:"quantity" gorm:"type:decimal(10,2);not null"`
	UnitPrice  decimal.Decimal `json:"unitPrice" gorm:"type:decimal(10,2);not null"`
	TotalPrice decimal.Decimal `json:"totalPrice" gorm:"type:decimal(10,2);not null"`
}
