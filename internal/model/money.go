package model

import "github.com/shopspring/decimal"

// Amounts, quantities and prices live in decimal(10,2) columns
const (
	MoneyScale     = 2
	MoneyIntDigits = 8
)

var moneyLimit = decimal.New(1, MoneyIntDigits)

// FitsMoneyColumn reports whether d is stored without rounding or overflow
func FitsMoneyColumn(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale)) && d.Abs().LessThan(moneyLimit)
}

// DecimalOr returns *v, or fallback when v is nil
func DecimalOr(v *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if v == nil {
		return fallback
	}
	return *v
}

// LineTotal returns quantity times unit price at column scale
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Round(MoneyScale)
}
