package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a buyer that may carry a running debt from credit sales
type Customer struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	Name            string          `json:"name" gorm:"type:varchar(255);not null"`
	Phone           string          `json:"phone" gorm:"type:varchar(50)"`
	Address         string          `json:"address" gorm:"type:text"`
	CreditLimit     decimal.Decimal `json:"creditLimit" gorm:"type:decimal(10,2);not null"`
	TotalDebt       decimal.Decimal `json:"totalDebt" gorm:"type:decimal(10,2);not null"`
	IsHighRisk      bool            `json:"isHighRisk" gorm:"not null"`
	LastPaymentDate *time.Time      `json:"lastPaymentDate"`
	Notes           string          `json:"notes" gorm:"type:text"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// IsRisky reports whether the customer is flagged or owes more than its credit limit
func (c Customer) IsRisky() bool {
	return c.IsHighRisk || c.TotalDebt.GreaterThan(c.CreditLimit)
}
