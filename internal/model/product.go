package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultReorderLevel applies when a product is created without a reorder level
var DefaultReorderLevel = decimal.NewFromInt(100)

// Product is a stocked item, e.g. a 25kg sack of a potato variety
type Product struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Name         string          `json:"name" gorm:"type:varchar(255);not null"`
	Unit         string          `json:"unit" gorm:"type:varchar(100);not null"`
	CurrentStock decimal.Decimal `json:"currentStock" gorm:"type:decimal(10,2);not null"`
	ReorderLevel decimal.Decimal `json:"reorderLevel" gorm:"type:decimal(10,2);not null"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// IsLowStock reports whether stock has reached the reorder level
func (p Product) IsLowStock() bool {
	return p.CurrentStock.LessThanOrEqual(p.ReorderLevel)
}
