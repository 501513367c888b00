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

type RevisionService struct {
	revisionRepo ports.RevisionRepository
	logger       ports.LoggerPort
	validate     *validator.Validate
}

func NewRevisionService(
	revisionRepo ports.RevisionRepository,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *RevisionService {
	return &RevisionService{
		revisionRepo: revisionRepo,
		logger:       logger,
		validate:     validate,
	}
}

func (s *RevisionService) CreateRevision(ctx context.Context, revision *domain.Revision) (*domain.Revision, error) {
	if err := s.validate.Struct(revision); err != nil {
		s.logger.Error("Revision validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("validation error: %w", err)
	}

	revision.ID = uuid.New()
	revision.CreatedAt = time.Now()
	revision.ComputeTotal()
	for _, item := range revision.Items {
		item.ID = uuid.New()
		item.RevisionID = revision.ID
	}

	created, err := s.revisionRepo.CreateRevision(ctx, revision)
	if err != nil {
		s.logger.Error("Failed to create revision", map[string]interface{}{
			"error":   err.Error(),
			"chassis": revision.MotorcycleChassis,
		})
		return nil, err
	}

	s.logger.Info("Revision created", map[string]interface{}{
		"revision_id": created.ID,
		"chassis":     created.MotorcycleChassis,
		"branch":      created.Branch,
		"total":       created.Total,
	})

	return created, nil
}

func (s *RevisionService) GetRevisionByID(ctx context.Context, revisionID string) (*domain.Revision, error) {
	revisionUUID, err := uuid.Parse(revisionID)
	if err != nil {
		return nil, fmt.Errorf("invalid revision ID: %w", err)
	}

	revision, err := s.revisionRepo.GetRevisionByID(ctx, revisionUUID)
	if err != nil {
		s.logger.Error("Failed to get revision", map[string]interface{}{
			"error":       err.Error(),
			"revision_id": revisionID,
		})
		return nil, err
	}

	return revision, nil
}

func (s *RevisionService) ListRevisions(ctx context.Context, branch string) ([]*domain.Revision, error) {
	revisions, err := s.revisionRepo.ListRevisions(ctx, branch)
	if err != nil {
		s.logger.Error("Failed to list revisions", map[string]interface{}{
			"error":  err.Error(),
			"branch": branch,
		})
		return nil, err
	}

	return revisions, nil
}
