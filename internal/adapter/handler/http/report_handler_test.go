package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/motohub/dealership_service/internal/core/domain"
	"github.com/motohub/dealership_service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMetrics struct{}

func (testMetrics) RecordMetrics(*gin.Context, time.Time) {}

type stubSaleRepo struct {
	cartSales       []*domain.CartSale
	motorcycleSales []*domain.MotorcycleSale
	listErr         error
}

func (s *stubSaleRepo) GetCartSaleByID(context.Context, uuid.UUID) (*domain.CartSale, error) {
	return nil, domain.ErrNotFound
}

func (s *stubSaleRepo) ListCartSales(context.Context, string) ([]*domain.CartSale, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.cartSales, nil
}

func (s *stubSaleRepo) ListMotorcycleSales(context.Context, string) ([]*domain.MotorcycleSale, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.motorcycleSales, nil
}

func (s *stubSaleRepo) ListMotorcycleSaleRecords(context.Context, string) ([]*domain.MotorcycleSaleRecord, error) {
	return nil, nil
}

func newReportTestRouter(repo *stubSaleRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewReportHandler(services.NewReportService(repo, testLogger{}), testLogger{}, testMetrics{})

	router := gin.New()
	router.GET("/reports/sales.csv", func(c *gin.Context) {
		c.Set(authorizationPayloadKey, &domain.TokenPayload{
			UserID:   uuid.New(),
			Username: "diretor",
			Role:     domain.Diretoria,
			Branch:   "Matriz",
		})
	}, handler.ExportSalesCSV)
	return router
}

func TestReportHandler_ExportSalesCSV(t *testing.T) {
	t.Run("Should download the CSV file", func(t *testing.T) {
		router := newReportTestRouter(&stubSaleRepo{
			cartSales: []*domain.CartSale{
				{ID: uuid.New(), Branch: "Centro", CustomerName: "Ana Souza", Total: 130, PaymentMethod: "pix", CreatedAt: time.Now()},
			},
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/reports/sales.csv", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "sales.csv")

		lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "type,id,date,branch,customer,total,payment_method", lines[0])
		assert.Contains(t, lines[1], "Ana Souza")
	})

	t.Run("Should return 500 instead of a truncated file on a store error", func(t *testing.T) {
		router := newReportTestRouter(&stubSaleRepo{listErr: errors.New("connection reset")})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/reports/sales.csv", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "type,id,date")
		assert.Contains(t, rec.Body.String(), "Failed to export sales")
	})
}
