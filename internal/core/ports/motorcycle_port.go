package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/motohub/dealership_service/internal/core/domain"
)

type MotorcycleRepository interface {
	CreateMotorcycle(ctx context.Context, m *domain.Motorcycle) (*domain.Motorcycle, error)
	GetMotorcycleByID(ctx context.Context, motorcycleID uuid.UUID) (*domain.Motorcycle, error)
	// ListMotorcycles filters by branch and status; empty values mean no
	// filter.
	ListMotorcycles(ctx context.Context, branch string, status domain.MotorcycleStatus) ([]*domain.Motorcycle, error)
	UpdateMotorcycle(ctx context.Context, m *domain.Motorcycle) (*domain.Motorcycle, error)
	DeleteMotorcycle(ctx context.Context, motorcycleID uuid.UUID) error
}

type MotorcycleService interface {
	CreateMotorcycle(ctx context.Context, m *domain.Motorcycle) (*domain.Motorcycle, error)
	GetMotorcycleByID(ctx context.Context, motorcycleID string) (*domain.Motorcycle, error)
	ListMotorcycles(ctx context.Context, branch string, status domain.MotorcycleStatus) ([]*domain.Motorcycle, error)
	UpdateMotorcycle(ctx context.Context, m *domain.Motorcycle) (*domain.Motorcycle, error)
	DeleteMotorcycle(ctx context.Context, motorcycleID string) error
	SellMotorcycle(ctx context.Context, sale *domain.MotorcycleSale) (*domain.MotorcycleSale, error)
}
