package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/motohub/dealership_service/internal/core/domain"
)

type PartRepository interface {
	CreatePart(ctx context.Context, part *domain.Part) (*domain.Part, error)
	GetPartByID(ctx context.Context, partID uuid.UUID) (*domain.Part, error)
	// ListParts returns all parts when branch is empty (head-office view).
	ListParts(ctx context.Context, branch string) ([]*domain.Part, error)
	UpdatePart(ctx context.Context, part *domain.Part) (*domain.Part, error)
	DeletePart(ctx context.Context, partID uuid.UUID) error
	// DecrementHelmetStock takes one unit off a helmet-named part at the
	// branch. Best-effort bookkeeping for gift helmets; callers log and
	// ignore failures.
	DecrementHelmetStock(ctx context.Context, branch string) error
}

type PartService interface {
	CreatePart(ctx context.Context, part *domain.Part) (*domain.Part, error)
	GetPartByID(ctx context.Context, partID string) (*domain.Part, error)
	ListParts(ctx context.Context, branch string) ([]*domain.Part, error)
	UpdatePart(ctx context.Context, part *domain.Part) (*domain.Part, error)
	DeletePart(ctx context.Context, partID string) error
	TransferPart(ctx context.Context, partID string, toBranch string, quantity int) error
}
