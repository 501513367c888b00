package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/motohub/dealership_service/internal/core/domain"
	"github.com/motohub/dealership_service/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type PartService struct {
	partRepo ports.PartRepository
	tx       ports.TransactionManager
	logger   ports.LoggerPort
	validate *validator.Validate
	cache    ports.CachePort
}

func NewPartService(
	partRepo ports.PartRepository,
	tx ports.TransactionManager,
	logger ports.LoggerPort,
	validate *validator.Validate,
	cache ports.CachePort,
) *PartService {
	return &PartService{
		partRepo: partRepo,
		tx:       tx,
		logger:   logger,
		validate: validate,
		cache:    cache,
	}
}

func (s *PartService) CreatePart(ctx context.Context, part *domain.Part) (*domain.Part, error) {
	if err := s.validate.Struct(part); err != nil {
		s.logger.Error("Part validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("validation error: %w", err)
	}

	if part.ID == uuid.Nil {
		part.ID = uuid.New()
	}

	created, err := s.partRepo.CreatePart(ctx, part)
	if err != nil {
		s.logger.Error("Failed to create part", map[string]interface{}{
			"error": err.Error(),
			"code":  part.Code,
		})
		return nil, err
	}

	s.invalidateListCache(part.Branch)

	s.logger.Info("Part created successfully", map[string]interface{}{
		"part_id": created.ID,
		"code":    created.Code,
		"branch":  created.Branch,
	})

	return created, nil
}

func (s *PartService) GetPartByID(ctx context.Context, partID string) (*domain.Part, error) {
	partUUID, err := uuid.Parse(partID)
	if err != nil {
		s.logger.Error("Invalid UUID format", map[string]interface{}{
			"part_id": partID,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("invalid part ID: %w", err)
	}

	part, err := s.partRepo.GetPartByID(ctx, partUUID)
	if err != nil {
		s.logger.Error("Failed to get part", map[string]interface{}{
			"error":   err.Error(),
			"part_id": partID,
		})
		return nil, err
	}

	return part, nil
}

func (s *PartService) ListParts(ctx context.Context, branch string) ([]*domain.Part, error) {
	cacheKey := fmt.Sprintf("parts:%s", branch)
	cachedData, err := s.cache.Get(cacheKey)
	if err == nil {
		var cached []*domain.Part
		if err := json.Unmarshal(cachedData, &cached); err == nil {
			return cached, nil
		}
	}

	parts, err := s.partRepo.ListParts(ctx, branch)
	if err != nil {
		s.logger.Error("Failed to list parts", map[string]interface{}{
			"error":  err.Error(),
			"branch": branch,
		})
		return nil, err
	}

	if data, err := json.Marshal(parts); err == nil {
		if err := s.cache.Set(cacheKey, data, 15*time.Minute); err != nil {
			s.logger.Warn("Failed to cache parts list", map[string]interface{}{
				"error":  err.Error(),
				"branch": branch,
			})
		}
	}

	return parts, nil
}

func (s *PartService) UpdatePart(ctx context.Context, part *domain.Part) (*domain.Part, error) {
	if err := s.validate.Struct(part); err != nil {
		s.logger.Error("Part validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("validation error: %w", err)
	}

	updated, err := s.partRepo.UpdatePart(ctx, part)
	if err != nil {
		s.logger.Error("Failed to update part", map[string]interface{}{
			"error":   err.Error(),
			"part_id": part.ID,
		})
		return nil, err
	}

	s.invalidateListCache(updated.Branch)

	return updated, nil
}

func (s *PartService) DeletePart(ctx context.Context, partID string) error {
	partUUID, err := uuid.Parse(partID)
	if err != nil {
		return fmt.Errorf("invalid part ID: %w", err)
	}

	existing, err := s.partRepo.GetPartByID(ctx, partUUID)
	if err != nil {
		return err
	}

	if err := s.partRepo.DeletePart(ctx, partUUID); err != nil {
		s.logger.Error("Failed to delete part", map[string]interface{}{
			"error":   err.Error(),
			"part_id": partID,
		})
		return err
	}

	s.invalidateListCache(existing.Branch)

	s.logger.Info("Part deleted successfully", map[string]interface{}{
		"part_id": partID,
	})

	return nil
}

// TransferPart moves quantity of a part from its current branch to another
// one inside a single atomic unit. The destination row is matched by part
// code and created when absent.
func (s *PartService) TransferPart(ctx context.Context, partID string, toBranch string, quantity int) error {
	partUUID, err := uuid.Parse(partID)
	if err != nil {
		return fmt.Errorf("invalid part ID: %w", err)
	}
	if toBranch == "" {
		return fmt.Errorf("destination branch is required")
	}
	if quantity <= 0 {
		return fmt.Errorf("transfer quantity must be positive")
	}

	var fromBranch string
	err = s.tx.WithinTx(ctx, func(r ports.TxRepos) error {
		src, err := r.Parts().GetPartForUpdate(ctx, partUUID)
		if err != nil {
			return err
		}
		if src.Branch == toBranch {
			return fmt.Errorf("part is already at branch %s", toBranch)
		}
		if quantity > src.Quantity {
			return domain.ErrInsufficientStock
		}
		fromBranch = src.Branch

		if err := r.Parts().DecrementStock(ctx, src.ID, quantity); err != nil {
			return err
		}

		dst, err := r.Parts().GetPartByCodeForUpdate(ctx, src.Code, toBranch)
		if errors.Is(err, domain.ErrPartNotFound) {
			return r.Parts().CreatePart(ctx, &domain.Part{
				ID:        uuid.New(),
				Name:      src.Name,
				Code:      src.Code,
				Quantity:  quantity,
				Branch:    toBranch,
				UnitPrice: src.UnitPrice,
			})
		}
		if err != nil {
			return err
		}
		return r.Parts().IncrementStock(ctx, dst.ID, quantity)
	})
	if err != nil {
		s.logger.Error("Part transfer failed", map[string]interface{}{
			"error":     err.Error(),
			"part_id":   partID,
			"to_branch": toBranch,
		})
		return err
	}

	s.invalidateListCache(fromBranch)
	s.invalidateListCache(toBranch)

	s.logger.Info("Part transferred", map[string]interface{}{
		"part_id":   partID,
		"to_branch": toBranch,
		"quantity":  quantity,
	})

	return nil
}

func (s *PartService) invalidateListCache(branch string) {
	cacheKey := fmt.Sprintf("parts:%s", branch)
	if err := s.cache.Delete(cacheKey); err != nil {
		s.logger.Warn("Failed to invalidate parts cache", map[string]interface{}{
			"error":  err.Error(),
			"branch": branch,
		})
	}
}
