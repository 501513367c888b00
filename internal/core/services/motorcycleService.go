package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/motohub/dealership_service/internal/core/domain"
	"github.com/motohub/dealership_service/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type MotorcycleService struct {
	motorcycleRepo ports.MotorcycleRepository
	partRepo       ports.PartRepository
	tx             ports.TransactionManager
	logger         ports.LoggerPort
	validate       *validator.Validate
	cache          ports.CachePort
}

func NewMotorcycleService(
	motorcycleRepo ports.MotorcycleRepository,
	partRepo ports.PartRepository,
	tx ports.TransactionManager,
	logger ports.LoggerPort,
	validate *validator.Validate,
	cache ports.CachePort,
) *MotorcycleService {
	return &MotorcycleService{
		motorcycleRepo: motorcycleRepo,
		partRepo:       partRepo,
		tx:             tx,
		logger:         logger,
		validate:       validate,
		cache:          cache,
	}
}

func (s *MotorcycleService) CreateMotorcycle(ctx context.Context, m *domain.Motorcycle) (*domain.Motorcycle, error) {
	if m.Status == "" {
		m.Status = domain.StatusAvailable
	}

	if err := s.validate.Struct(m); err != nil {
		s.logger.Error("Motorcycle validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("validation error: %w", err)
	}

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	created, err := s.motorcycleRepo.CreateMotorcycle(ctx, m)
	if err != nil {
		s.logger.Error("Failed to create motorcycle", map[string]interface{}{
			"error":   err.Error(),
			"chassis": m.Chassis,
		})
		return nil, err
	}

	s.invalidateListCache(m.Branch)

	s.logger.Info("Motorcycle created successfully", map[string]interface{}{
		"motorcycle_id": created.ID,
		"chassis":       created.Chassis,
		"branch":        created.Branch,
	})

	return created, nil
}

func (s *MotorcycleService) GetMotorcycleByID(ctx context.Context, motorcycleID string) (*domain.Motorcycle, error) {
	motorcycleUUID, err := uuid.Parse(motorcycleID)
	if err != nil {
		s.logger.Error("Invalid UUID format", map[string]interface{}{
			"motorcycle_id": motorcycleID,
			"error":         err.Error(),
		})
		return nil, fmt.Errorf("invalid motorcycle ID: %w", err)
	}

	cacheKey := fmt.Sprintf("motorcycle:%s", motorcycleID)
	cachedData, err := s.cache.Get(cacheKey)
	if err == nil {
		var cached domain.Motorcycle
		if err := json.Unmarshal(cachedData, &cached); err == nil {
			return &cached, nil
		}
	}

	m, err := s.motorcycleRepo.GetMotorcycleByID(ctx, motorcycleUUID)
	if err != nil {
		s.logger.Error("Failed to get motorcycle", map[string]interface{}{
			"error":         err.Error(),
			"motorcycle_id": motorcycleID,
		})
		return nil, err
	}

	if data, err := json.Marshal(m); err == nil {
		if err := s.cache.Set(cacheKey, data, 15*time.Minute); err != nil {
			s.logger.Warn("Failed to cache motorcycle", map[string]interface{}{
				"error":         err.Error(),
				"motorcycle_id": motorcycleID,
			})
		}
	}

	return m, nil
}

func (s *MotorcycleService) ListMotorcycles(ctx context.Context, branch string, status domain.MotorcycleStatus) ([]*domain.Motorcycle, error) {
	motorcycles, err := s.motorcycleRepo.ListMotorcycles(ctx, branch, status)
	if err != nil {
		s.logger.Error("Failed to list motorcycles", map[string]interface{}{
			"error":  err.Error(),
			"branch": branch,
		})
		return nil, err
	}

	return motorcycles, nil
}

func (s *MotorcycleService) UpdateMotorcycle(ctx context.Context, m *domain.Motorcycle) (*domain.Motorcycle, error) {
	if err := s.validate.Struct(m); err != nil {
		s.logger.Error("Motorcycle validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("validation error: %w", err)
	}

	updated, err := s.motorcycleRepo.UpdateMotorcycle(ctx, m)
	if err != nil {
		s.logger.Error("Failed to update motorcycle", map[string]interface{}{
			"error":         err.Error(),
			"motorcycle_id": m.ID,
		})
		return nil, err
	}

	s.invalidateCache(m.ID.String(), m.Branch)

	return updated, nil
}

func (s *MotorcycleService) DeleteMotorcycle(ctx context.Context, motorcycleID string) error {
	motorcycleUUID, err := uuid.Parse(motorcycleID)
	if err != nil {
		return fmt.Errorf("invalid motorcycle ID: %w", err)
	}

	existing, err := s.motorcycleRepo.GetMotorcycleByID(ctx, motorcycleUUID)
	if err != nil {
		return err
	}

	if err := s.motorcycleRepo.DeleteMotorcycle(ctx, motorcycleUUID); err != nil {
		s.logger.Error("Failed to delete motorcycle", map[string]interface{}{
			"error":         err.Error(),
			"motorcycle_id": motorcycleID,
		})
		return err
	}

	s.invalidateCache(motorcycleID, existing.Branch)

	s.logger.Info("Motorcycle deleted successfully", map[string]interface{}{
		"motorcycle_id": motorcycleID,
	})

	return nil
}

// SellMotorcycle atomically flips the motorcycle from AVAILABLE to SOLD and
// records the sale. The conditional update is the concurrency guard: two
// simultaneous requests for the same motorcycle produce exactly one sale.
// The gift helmet stock deduction is advisory bookkeeping and runs after
// commit; its failure is logged, never rolled into the sale.
func (s *MotorcycleService) SellMotorcycle(ctx context.Context, sale *domain.MotorcycleSale) (*domain.MotorcycleSale, error) {
	if sale.CustomerName == "" {
		return nil, domain.ErrInvalidCustomer
	}

	if err := s.validate.Struct(sale); err != nil {
		s.logger.Warn("Motorcycle sale validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("validation error: %w", err)
	}

	sale.ID = uuid.New()
	sale.CreatedAt = time.Now()

	err := s.tx.WithinTx(ctx, func(r ports.TxRepos) error {
		if err := r.Motorcycles().MarkSold(ctx, sale.MotorcycleID); err != nil {
			return err
		}
		return r.MotorcycleSales().InsertSale(ctx, sale)
	})
	if err != nil {
		s.logger.Error("Motorcycle sale transaction failed", map[string]interface{}{
			"error":         err.Error(),
			"motorcycle_id": sale.MotorcycleID,
		})
		return nil, err
	}

	if sale.GiftHelmet {
		if err := s.partRepo.DecrementHelmetStock(ctx, sale.Branch); err != nil {
			s.logger.Warn("Failed to deduct gift helmet stock", map[string]interface{}{
				"error":  err.Error(),
				"branch": sale.Branch,
			})
		}
	}

	s.invalidateCache(sale.MotorcycleID.String(), sale.Branch)

	s.logger.Info("Motorcycle sold", map[string]interface{}{
		"sale_id":       sale.ID,
		"motorcycle_id": sale.MotorcycleID,
		"price":         sale.Price,
		"branch":        sale.Branch,
	})

	return sale, nil
}

func (s *MotorcycleService) invalidateCache(motorcycleID string, branch string) {
	cacheKey := fmt.Sprintf("motorcycle:%s", motorcycleID)
	if err := s.cache.Delete(cacheKey); err != nil {
		s.logger.Warn("Failed to invalidate motorcycle cache", map[string]interface{}{
			"error":         err.Error(),
			"motorcycle_id": motorcycleID,
		})
	}
	s.invalidateListCache(branch)
}

func (s *MotorcycleService) invalidateListCache(branch string) {
	cacheKey := fmt.Sprintf("motorcycles:%s", branch)
	if err := s.cache.Delete(cacheKey); err != nil {
		s.logger.Warn("Failed to invalidate motorcycles list cache", map[string]interface{}{
			"error":  err.Error(),
			"branch": branch,
		})
	}
}
