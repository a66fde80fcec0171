// Package seed loads a small demo data set into an empty database.
package seed

import (
	"context"
	"fmt"

	"distribution-service/internal/posting"
	"distribution-service/internal/store"
	"distribution-service/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// DemoData seeds one supplier, two customers, two products and an opening
// purchase. It does nothing when any product already exists.
func DemoData(ctx context.Context, st *store.Store, ps *posting.Service) error {
	ctx = logger.WithFields(ctx, zap.String("component", "seed"))
	log := logger.FromContext(ctx)

	count, err := st.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		log.Info("Skipping demo data, products already exist", zap.Int64("products", count))
		return nil
	}

	supplier, err := st.CreateSupplier(ctx, store.SupplierInput{
		Name:    "مزرعة العبدالله",
		Phone:   "0501234567",
		Address: "القصيم",
	})
	if err != nil {
		return fmt.Errorf("seed supplier: %w", err)
	}

	customers := []store.CustomerInput{
		{Name: "مطعم بخاري المدينة", Phone: "0551112233", CreditLimit: amount(5000)},
		{Name: "بوفيه الأمانة", Phone: "0564445566", CreditLimit: amount(1000)},
	}
	for _, in := range customers {
		if _, err := st.CreateCustomer(ctx, in); err != nil {
			return fmt.Errorf("seed customer: %w", err)
		}
	}

	spunta, err := st.CreateProduct(ctx, store.ProductInput{
		Name:         "بطاطس سبونتا",
		Unit:         "كيس 25كجم",
		CurrentStock: amount(50),
		ReorderLevel: amount(20),
	})
	if err != nil {
		return fmt.Errorf("seed product: %w", err)
	}
	kara, err := st.CreateProduct(ctx, store.ProductInput{
		Name:         "بطاطس كارا (للقلي)",
		Unit:         "كيس 20كجم",
		CurrentStock: amount(10),
		ReorderLevel: amount(15),
	})
	if err != nil {
		return fmt.Errorf("seed product: %w", err)
	}

	purchase, err := ps.PostPurchase(ctx, posting.PurchaseInput{
		SupplierID:    &supplier.ID,
		TotalCost:     amount(2500),
		TransportCost: amount(200),
		LaborCost:     amount(100),
		Notes:         "شحنة افتتاحية",
		Items: []posting.ItemInput{
			{ProductID: spunta.ID, Quantity: amount(50), UnitPrice: amount(40)},
			{ProductID: kara.ID, Quantity: amount(20), UnitPrice: amount(25)},
		},
	})
	if err != nil {
		return fmt.Errorf("seed purchase: %w", err)
	}

	log.Info("Demo data seeded", zap.Uint("purchase_id", purchase.ID))
	return nil
}
