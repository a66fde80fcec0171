package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is an invoice for goods bought from a supplier
type Purchase struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	SupplierID    *uint           `json:"supplierId" gorm:"index"`
	Date          time.Time       `json:"date" gorm:"not null;index"`
	TotalCost     decimal.Decimal `json:"totalCost" gorm:"type:decimal(10,2);not null"`
	TransportCost decimal.Decimal `json:"transportCost" gorm:"type:decimal(10,2);not null"`
	LaborCost     decimal.Decimal `json:"laborCost" gorm:"type:decimal(10,2);not null"`
	Notes         string          `json:"notes" gorm:"type:text"`
	Items         []PurchaseItem  `json:"items" gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
}

// PurchaseItem is one product line of a purchase
type PurchaseItem struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	PurchaseID uint            `json:"purchaseId" gorm:"index;not null"`
	ProductID  uint            `json:"productId" gorm:"index;not null"`
	Quantity   decimal.Decimal `json:"quantity" gorm:"type:decimal(10,2);not null"`
	UnitPrice  decimal.Decimal `json:"unitPrice" gorm:"type:decimal(10,2);not null"`
	TotalPrice decimal.Decimal `json:"totalPrice" gorm:"type:decimal(10,2);not null"`
}
