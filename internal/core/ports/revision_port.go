package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/motohub/dealership_service/internal/core/domain"
)

type RevisionRepository interface {
	CreateRevision(ctx context.Context, revision *domain.Revision) (*domain.Revision, error)
	GetRevisionByID(ctx context.Context, revisionID uuid.UUID) (*domain.Revision, error)
	ListRevisions(ctx context.Context, branch string) ([]*domain.Revision, error)
}
