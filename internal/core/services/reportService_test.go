package services_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/motohub/dealership_service/internal/core/domain"
	"github.com/motohub/dealership_service/internal/core/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_SalesSummary(t *testing.T) {
	ctx := context.Background()

	saleRepo := &fakeSaleRepo{
		cartSales: []*domain.CartSale{
			{ID: uuid.New(), Branch: "Centro", Total: 130},
			{ID: uuid.New(), Branch: "Centro", Total: 70},
			{ID: uuid.New(), Branch: "Norte", Total: 40},
		},
		records: []*domain.MotorcycleSaleRecord{
			{
				Sale:       &domain.MotorcycleSale{Branch: "Centro", Price: 15000},
				Motorcycle: &domain.Motorcycle{PurchaseCost: 11000, FuelCost: 200},
			},
			{
				Sale:       &domain.MotorcycleSale{Branch: "Norte", Price: 12000, GiftHelmet: true},
				Motorcycle: &domain.Motorcycle{PurchaseCost: 9000, Repasse: 10000},
			},
		},
	}
	svc := services.NewReportService(saleRepo, noopLogger{})

	t.Run("Should aggregate per branch", func(t *testing.T) {
		summaries, err := svc.SalesSummary(ctx, "")
		require.NoError(t, err)
		require.Len(t, summaries, 2)

		centro := summaries[0]
		assert.Equal(t, "Centro", centro.Branch)
		assert.Equal(t, 2, centro.CartSalesCount)
		assert.Equal(t, 200.0, centro.CartSalesTotal)
		assert.Equal(t, 1, centro.MotorcycleSalesCount)
		assert.Equal(t, 15000.0, centro.MotorcycleSalesTotal)
		// 200 from the counter plus 15000 - 11000 - 200 from the motorcycle.
		assert.Equal(t, 4000.0, centro.NetTotal)

		norte := summaries[1]
		assert.Equal(t, "Norte", norte.Branch)
		// Repasse takes precedence over purchase cost, then the helmet gift.
		assert.Equal(t, 40.0+12000.0-10000.0-domain.HelmetGiftCost, norte.NetTotal)
	})

	t.Run("Should honor the branch filter", func(t *testing.T) {
		summaries, err := svc.SalesSummary(ctx, "Norte")
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, "Norte", summaries[0].Branch)
	})
}

func TestReportService_ExportSalesCSV(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	saleRepo := &fakeSaleRepo{
		cartSales: []*domain.CartSale{
			{ID: uuid.New(), Branch: "Centro", CustomerName: "Ana Souza", Total: 130, PaymentMethod: "pix", CreatedAt: now},
		},
		motorcycleSales: []*domain.MotorcycleSale{
			{ID: uuid.New(), Branch: "Centro", CustomerName: "Bruno Lima", Price: 15000, CreatedAt: now},
		},
	}
	svc := services.NewReportService(saleRepo, noopLogger{})

	var buf bytes.Buffer
	require.NoError(t, svc.ExportSalesCSV(ctx, "", &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"type", "id", "date", "branch", "customer", "total", "payment_method"}, rows[0])
	assert.Equal(t, "cart", rows[1][0])
	assert.Equal(t, "130.00", rows[1][5])
	assert.Equal(t, "pix", rows[1][6])
	assert.Equal(t, "motorcycle", rows[2][0])
	assert.Equal(t, "15000.00", rows[2][5])
}
