package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/motohub/dealership_service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type MotorcycleRepository struct {
	db *sql.DB
}

func NewMotorcycleRepository(db *sql.DB) *MotorcycleRepository {
	return &MotorcycleRepository{db: db}
}

func (r *MotorcycleRepository) CreateMotorcycle(ctx context.Context, m *domain.Motorcycle) (*domain.Motorcycle, error) {
	query := `INSERT INTO motorcycles (id, model, year, color, chassis, branch, status, financing, purchase_cost, repasse, fuel_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		m.ID,
		m.Model,
		m.Year,
		m.Color,
		m.Chassis,
		m.Branch,
		m.Status,
		m.Financing,
		m.PurchaseCost,
		m.Repasse,
		m.FuelCost,
	).Scan(
		&m.ID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23502":
				return nil, fmt.Errorf("required field is missing")
			case "23505":
				return nil, fmt.Errorf("chassis already registered")
			default:
				return nil, err
			}
		}
		return nil, err
	}
	return m, nil
}

func (r *MotorcycleRepository) GetMotorcycleByID(ctx context.Context, motorcycleID uuid.UUID) (*domain.Motorcycle, error) {
	query := `SELECT id, model, year, color, chassis, branch, status, financing, purchase_cost, repasse, fuel_cost, created_at, updated_at
		FROM motorcycles WHERE id = $1`

	m := &domain.Motorcycle{}
	err := r.db.QueryRowContext(ctx, query, motorcycleID).Scan(
		&m.ID,
		&m.Model,
		&m.Year,
		&m.Color,
		&m.Chassis,
		&m.Branch,
		&m.Status,
		&m.Financing,
		&m.PurchaseCost,
		&m.Repasse,
		&m.FuelCost,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (r *MotorcycleRepository) ListMotorcycles(ctx context.Context, branch string, status domain.MotorcycleStatus) ([]*domain.Motorcycle, error) {
	query := `SELECT id, model, year, color, chassis, branch, status, financing, purchase_cost, repasse, fuel_cost, created_at, updated_at
		FROM motorcycles WHERE 1=1`
	args := []interface{}{}
	if branch != "" {
		args = append(args, branch)
		query += fmt.Sprintf(" AND branch = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var motorcycles []*domain.Motorcycle
	for rows.Next() {
		m := &domain.Motorcycle{}
		err := rows.Scan(
			&m.ID,
			&m.Model,
			&m.Year,
			&m.Color,
			&m.Chassis,
			&m.Branch,
			&m.Status,
			&m.Financing,
			&m.PurchaseCost,
			&m.Repasse,
			&m.FuelCost,
			&m.CreatedAt,
			&m.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		motorcycles = append(motorcycles, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return motorcycles, nil
}

func (r *MotorcycleRepository) UpdateMotorcycle(ctx context.Context, m *domain.Motorcycle) (*domain.Motorcycle, error) {
	query := `UPDATE motorcycles
		SET
			model = COALESCE(NULLIF($1, ''), model),
			year = COALESCE(NULLIF($2, 0), year),
			color = COALESCE(NULLIF($3, ''), color),
			financing = $4,
			purchase_cost = $5,
			repasse = $6,
			fuel_cost = $7,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $8
		RETURNING id, model, year, color, chassis, branch, status, financing, purchase_cost, repasse, fuel_cost, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		m.Model,
		m.Year,
		m.Color,
		m.Financing,
		m.PurchaseCost,
		m.Repasse,
		m.FuelCost,
		m.ID,
	).Scan(
		&m.ID,
		&m.Model,
		&m.Year,
		&m.Color,
		&m.Chassis,
		&m.Branch,
		&m.Status,
		&m.Financing,
		&m.PurchaseCost,
		&m.Repasse,
		&m.FuelCost,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("error updating motorcycle: %w", err)
	}

	return m, nil
}

func (r *MotorcycleRepository) DeleteMotorcycle(ctx context.Context, motorcycleID uuid.UUID) error {
	query := `DELETE FROM motorcycles WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, motorcycleID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
