package services

import (
	"context"
	"fmt"
	"time"

	"github.com/motohub/dealership_service/internal/core/domain"
	"github.com/motohub/dealership_service/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CheckoutService struct {
	tx       ports.TransactionManager
	saleRepo ports.SaleRepository
	logger   ports.LoggerPort
	validate *validator.Validate
	cache    ports.CachePort
}

func NewCheckoutService(
	tx ports.TransactionManager,
	saleRepo ports.SaleRepository,
	logger ports.LoggerPort,
	validate *validator.Validate,
	cache ports.CachePort,
) *CheckoutService {
	return &CheckoutService{
		tx:       tx,
		saleRepo: saleRepo,
		logger:   logger,
		validate: validate,
		cache:    cache,
	}
}

// Checkout converts a client-side cart into a durable sale while deducting
// stock, as one atomic unit. Items are processed strictly in the order
// submitted. Any failure after the transaction opens discards every write:
// no partial sale and no partial stock deduction is ever persisted.
func (s *CheckoutService) Checkout(ctx context.Context, sale *domain.CartSale) (*domain.CartSale, error) {
	if err := sale.Validate(); err != nil {
		s.logger.Warn("Checkout rejected by validation", map[string]interface{}{
			"error":  err.Error(),
			"branch": sale.Branch,
		})
		return nil, err
	}

	if err := s.validate.Struct(sale); err != nil {
		s.logger.Warn("Checkout validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("validation error: %w", err)
	}

	sale.ID = uuid.New()
	sale.CreatedAt = time.Now()
	sale.ComputeTotal()

	// Head office can sell a part stocked under another filial, so the sale
	// branch alone does not cover every cached listing the checkout touches.
	branches := map[string]struct{}{sale.Branch: {}}

	err := s.tx.WithinTx(ctx, func(r ports.TxRepos) error {
		if err := r.CartSales().InsertSale(ctx, sale); err != nil {
			return err
		}

		for _, item := range sale.Items {
			part, err := r.Parts().GetPartForUpdate(ctx, item.PartID)
			if err != nil {
				return err
			}
			branches[part.Branch] = struct{}{}
			if item.Quantity > part.Quantity {
				return domain.ErrInsufficientStock
			}
			if err := r.Parts().DecrementStock(ctx, part.ID, item.Quantity); err != nil {
				return err
			}

			item.ID = uuid.New()
			item.SaleID = sale.ID
			item.PartName = part.Name
			item.PartCode = part.Code
			if err := r.CartSales().InsertItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Checkout transaction failed", map[string]interface{}{
			"error":  err.Error(),
			"branch": sale.Branch,
		})
		return nil, err
	}

	for branch := range branches {
		if err := s.cache.Delete(fmt.Sprintf("parts:%s", branch)); err != nil {
			s.logger.Warn("Failed to invalidate parts cache", map[string]interface{}{
				"error":  err.Error(),
				"branch": branch,
			})
		}
	}

	s.logger.Info("Checkout completed", map[string]interface{}{
		"sale_id": sale.ID,
		"total":   sale.Total,
		"items":   len(sale.Items),
		"branch":  sale.Branch,
	})

	return sale, nil
}

func (s *CheckoutService) GetCartSaleByID(ctx context.Context, saleID string) (*domain.CartSale, error) {
	saleUUID, err := uuid.Parse(saleID)
	if err != nil {
		s.logger.Error("Invalid UUID format", map[string]interface{}{
			"sale_id": saleID,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("invalid sale ID: %w", err)
	}

	sale, err := s.saleRepo.GetCartSaleByID(ctx, saleUUID)
	if err != nil {
		s.logger.Error("Failed to get cart sale", map[string]interface{}{
			"error":   err.Error(),
			"sale_id": saleID,
		})
		return nil, err
	}

	return sale, nil
}

func (s *CheckoutService) ListCartSales(ctx context.Context, branch string) ([]*domain.CartSale, error) {
	sales, err := s.saleRepo.ListCartSales(ctx, branch)
	if err != nil {
		s.logger.Error("Failed to list cart sales", map[string]interface{}{
			"error":  err.Error(),
			"branch": branch,
		})
		return nil, err
	}

	return sales, nil
}
