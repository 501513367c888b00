package services_test

import (
	"context"
	"testing"

	"github.com/motohub/dealership_service/internal/core/domain"
	"github.com/motohub/dealership_service/internal/core/services"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPart(store *txStore, name, code, branch string, quantity int, price float64) *domain.Part {
	p := &domain.Part{
		ID:        uuid.New(),
		Name:      name,
		Code:      code,
		Quantity:  quantity,
		Branch:    branch,
		UnitPrice: price,
	}
	store.parts[p.ID] = p
	return p
}

func newCheckoutService(store *txStore) (*services.CheckoutService, *fakeTxManager, *fakeSaleRepo) {
	tx := newFakeTxManager(store)
	saleRepo := &fakeSaleRepo{}
	svc := services.NewCheckoutService(tx, saleRepo, noopLogger{}, validator.New(), newMemCache())
	return svc, tx, saleRepo
}

func TestCheckoutService_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("Should record the sale and deduct stock", func(t *testing.T) {
		store := newTxStore()
		p1 := seedPart(store, "Oil filter", "FLT-001", "Centro", 5, 50)
		p2 := seedPart(store, "Spark plug", "SPK-001", "Centro", 1, 30)
		svc, _, _ := newCheckoutService(store)

		sale := &domain.CartSale{
			CustomerName: "Ana Souza",
			Branch:       "Centro",
			Items: []*domain.CartSaleItem{
				{PartID: p1.ID, Quantity: 2, UnitPrice: 50},
				{PartID: p2.ID, Quantity: 1, UnitPrice: 30},
			},
		}

		created, err := svc.Checkout(ctx, sale)
		require.NoError(t, err)

		assert.Equal(t, 130.0, created.Total)
		assert.Equal(t, 3, store.parts[p1.ID].Quantity)
		assert.Equal(t, 0, store.parts[p2.ID].Quantity)
		require.Len(t, store.cartSales, 1)
		require.Len(t, store.cartItems, 2)
		assert.Equal(t, "Oil filter", store.cartItems[0].PartName)
		assert.Equal(t, "FLT-001", store.cartItems[0].PartCode)
		assert.Equal(t, created.ID, store.cartItems[0].SaleID)
	})

	t.Run("Should ignore a client-submitted total", func(t *testing.T) {
		store := newTxStore()
		p := seedPart(store, "Chain kit", "CHN-001", "Centro", 10, 200)
		svc, _, _ := newCheckoutService(store)

		sale := &domain.CartSale{
			CustomerName: "Ana Souza",
			Branch:       "Centro",
			Total:        1.0,
			Items: []*domain.CartSaleItem{
				{PartID: p.ID, Quantity: 1, UnitPrice: 200},
			},
		}

		created, err := svc.Checkout(ctx, sale)
		require.NoError(t, err)
		assert.Equal(t, 200.0, created.Total)
	})

	t.Run("Should roll back everything on insufficient stock", func(t *testing.T) {
		store := newTxStore()
		p1 := seedPart(store, "Oil filter", "FLT-001", "Centro", 5, 50)
		p2 := seedPart(store, "Spark plug", "SPK-001", "Centro", 0, 30)
		svc, _, _ := newCheckoutService(store)

		sale := &domain.CartSale{
			CustomerName: "Ana Souza",
			Branch:       "Centro",
			Items: []*domain.CartSaleItem{
				{PartID: p1.ID, Quantity: 2, UnitPrice: 50},
				{PartID: p2.ID, Quantity: 1, UnitPrice: 30},
			},
		}

		_, err := svc.Checkout(ctx, sale)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		// No partial deduction and no sale rows survive.
		assert.Equal(t, 5, store.parts[p1.ID].Quantity)
		assert.Equal(t, 0, store.parts[p2.ID].Quantity)
		assert.Empty(t, store.cartSales)
		assert.Empty(t, store.cartItems)
	})

	t.Run("Should fail on an unknown part", func(t *testing.T) {
		store := newTxStore()
		svc, _, _ := newCheckoutService(store)

		sale := &domain.CartSale{
			CustomerName: "Ana Souza",
			Branch:       "Centro",
			Items: []*domain.CartSaleItem{
				{PartID: uuid.New(), Quantity: 1, UnitPrice: 10},
			},
		}

		_, err := svc.Checkout(ctx, sale)
		assert.ErrorIs(t, err, domain.ErrPartNotFound)
		assert.Empty(t, store.cartSales)
	})

	t.Run("Should reject a missing customer before touching the store", func(t *testing.T) {
		store := newTxStore()
		p := seedPart(store, "Oil filter", "FLT-001", "Centro", 5, 50)
		svc, _, _ := newCheckoutService(store)

		sale := &domain.CartSale{
			Branch: "Centro",
			Items: []*domain.CartSaleItem{
				{PartID: p.ID, Quantity: 1, UnitPrice: 50},
			},
		}

		_, err := svc.Checkout(ctx, sale)
		assert.ErrorIs(t, err, domain.ErrInvalidCustomer)
		assert.Equal(t, 5, store.parts[p.ID].Quantity)
		assert.Empty(t, store.cartSales)
	})

	t.Run("Should reject an empty cart", func(t *testing.T) {
		store := newTxStore()
		svc, _, _ := newCheckoutService(store)

		_, err := svc.Checkout(ctx, &domain.CartSale{
			CustomerName: "Ana Souza",
			Branch:       "Centro",
		})
		assert.ErrorIs(t, err, domain.ErrEmptyCart)
	})

	t.Run("Should require model and chassis for a revision sale", func(t *testing.T) {
		store := newTxStore()
		p := seedPart(store, "Oil filter", "FLT-001", "Centro", 5, 50)
		svc, _, _ := newCheckoutService(store)

		_, err := svc.Checkout(ctx, &domain.CartSale{
			CustomerName: "Ana Souza",
			Branch:       "Centro",
			IsRevision:   true,
			Items: []*domain.CartSaleItem{
				{PartID: p.ID, Quantity: 1, UnitPrice: 50},
			},
		})
		assert.ErrorIs(t, err, domain.ErrRevisionFieldsMissing)
	})

	t.Run("Should surface a commit failure as failed to finalize", func(t *testing.T) {
		store := newTxStore()
		p := seedPart(store, "Oil filter", "FLT-001", "Centro", 5, 50)
		svc, tx, _ := newCheckoutService(store)
		tx.commitErr = assert.AnError

		_, err := svc.Checkout(ctx, &domain.CartSale{
			CustomerName: "Ana Souza",
			Branch:       "Centro",
			Items: []*domain.CartSaleItem{
				{PartID: p.ID, Quantity: 1, UnitPrice: 50},
			},
		})
		assert.ErrorIs(t, err, domain.ErrFinalizeSale)
		assert.Equal(t, 5, store.parts[p.ID].Quantity)
		assert.Empty(t, store.cartSales)
	})

	t.Run("Should allow buying the exact remaining stock", func(t *testing.T) {
		store := newTxStore()
		p := seedPart(store, "Oil filter", "FLT-001", "Centro", 2, 50)
		svc, _, _ := newCheckoutService(store)

		_, err := svc.Checkout(ctx, &domain.CartSale{
			CustomerName: "Ana Souza",
			Branch:       "Centro",
			Items: []*domain.CartSaleItem{
				{PartID: p.ID, Quantity: 2, UnitPrice: 50},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, store.parts[p.ID].Quantity)
	})

	t.Run("Should invalidate the cached listing of every branch in the cart", func(t *testing.T) {
		store := newTxStore()
		p1 := seedPart(store, "Oil filter", "FLT-001", "Norte", 5, 50)
		p2 := seedPart(store, "Spark plug", "SPK-001", "Centro", 5, 30)
		cache := newMemCache()
		require.NoError(t, cache.Set("parts:Norte", []byte("stale"), 0))
		require.NoError(t, cache.Set("parts:Centro", []byte("stale"), 0))
		require.NoError(t, cache.Set("parts:Sul", []byte("fresh"), 0))
		svc := services.NewCheckoutService(newFakeTxManager(store), &fakeSaleRepo{}, noopLogger{}, validator.New(), cache)

		// Head office sells a Norte-stocked part on a Centro sale.
		_, err := svc.Checkout(ctx, &domain.CartSale{
			CustomerName: "Ana Souza",
			Branch:       "Centro",
			Items: []*domain.CartSaleItem{
				{PartID: p1.ID, Quantity: 1, UnitPrice: 50},
				{PartID: p2.ID, Quantity: 1, UnitPrice: 30},
			},
		})
		require.NoError(t, err)

		_, err = cache.Get("parts:Norte")
		assert.Error(t, err)
		_, err = cache.Get("parts:Centro")
		assert.Error(t, err)
		_, err = cache.Get("parts:Sul")
		assert.NoError(t, err)
	})

	t.Run("Should deduct the same part twice when listed twice", func(t *testing.T) {
		store := newTxStore()
		p := seedPart(store, "Oil filter", "FLT-001", "Centro", 3, 50)
		svc, _, _ := newCheckoutService(store)

		_, err := svc.Checkout(ctx, &domain.CartSale{
			CustomerName: "Ana Souza",
			Branch:       "Centro",
			Items: []*domain.CartSaleItem{
				{PartID: p.ID, Quantity: 2, UnitPrice: 50},
				{PartID: p.ID, Quantity: 2, UnitPrice: 50},
			},
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		assert.Equal(t, 3, store.parts[p.ID].Quantity)
	})
}

func TestCheckoutService_GetCartSaleByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject a malformed ID", func(t *testing.T) {
		svc, _, _ := newCheckoutService(newTxStore())
		_, err := svc.GetCartSaleByID(ctx, "not-a-uuid")
		assert.Error(t, err)
	})

	t.Run("Should return the stored sale", func(t *testing.T) {
		svc, _, saleRepo := newCheckoutService(newTxStore())
		sale := &domain.CartSale{ID: uuid.New(), CustomerName: "Ana Souza", Branch: "Centro"}
		saleRepo.cartSales = append(saleRepo.cartSales, sale)

		got, err := svc.GetCartSaleByID(ctx, sale.ID.String())
		require.NoError(t, err)
		assert.Equal(t, sale.ID, got.ID)
	})
}
