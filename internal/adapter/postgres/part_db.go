package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/motohub/dealership_service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type PartRepository struct {
	db *sql.DB
}

func NewPartRepository(db *sql.DB) *PartRepository {
	return &PartRepository{db: db}
}

func (r *PartRepository) CreatePart(ctx context.Context, part *domain.Part) (*domain.Part, error) {
	query := `INSERT INTO parts (id, name, code, quantity, branch, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		part.ID,
		part.Name,
		part.Code,
		part.Quantity,
		part.Branch,
		part.UnitPrice,
	).Scan(
		&part.ID,
		&part.CreatedAt,
		&part.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23502":
				return nil, fmt.Errorf("required field is missing")
			case "23505":
				return nil, fmt.Errorf("part code already registered at branch")
			default:
				return nil, err
			}
		}
		return nil, err
	}
	return part, nil
}

func (r *PartRepository) GetPartByID(ctx context.Context, partID uuid.UUID) (*domain.Part, error) {
	query := `SELECT id, name, code, quantity, branch, unit_price, created_at, updated_at
		FROM parts WHERE id = $1`

	part := &domain.Part{}
	err := r.db.QueryRowContext(ctx, query, partID).Scan(
		&part.ID,
		&part.Name,
		&part.Code,
		&part.Quantity,
		&part.Branch,
		&part.UnitPrice,
		&part.CreatedAt,
		&part.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrPartNotFound
	}
	if err != nil {
		return nil, err
	}

	return part, nil
}

func (r *PartRepository) ListParts(ctx context.Context, branch string) ([]*domain.Part, error) {
	query := `SELECT id, name, code, quantity, branch, unit_price, created_at, updated_at
		FROM parts`
	args := []interface{}{}
	if branch != "" {
		query += ` WHERE branch = $1`
		args = append(args, branch)
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []*domain.Part
	for rows.Next() {
		part := &domain.Part{}
		err := rows.Scan(
			&part.ID,
			&part.Name,
			&part.Code,
			&part.Quantity,
			&part.Branch,
			&part.UnitPrice,
			&part.CreatedAt,
			&part.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return parts, nil
}

func (r *PartRepository) UpdatePart(ctx context.Context, part *domain.Part) (*domain.Part, error) {
	query := `UPDATE parts
		SET
			name = COALESCE(NULLIF($1, ''), name),
			code = COALESCE(NULLIF($2, ''), code),
			quantity = $3,
			unit_price = $4,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
		RETURNING id, name, code, quantity, branch, unit_price, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		part.Name,
		part.Code,
		part.Quantity,
		part.UnitPrice,
		part.ID,
	).Scan(
		&part.ID,
		&part.Name,
		&part.Code,
		&part.Quantity,
		&part.Branch,
		&part.UnitPrice,
		&part.CreatedAt,
		&part.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrPartNotFound
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			return nil, domain.ErrInsufficientStock
		}
		return nil, fmt.Errorf("error updating part: %w", err)
	}

	return part, nil
}

func (r *PartRepository) DeletePart(ctx context.Context, partID uuid.UUID) error {
	query := `DELETE FROM parts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, partID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrPartNotFound
	}

	return nil
}

// DecrementHelmetStock takes one unit off the first helmet-named part with
// stock at the branch. The name match is fuzzy on purpose; category is not
// a structured field.
func (r *PartRepository) DecrementHelmetStock(ctx context.Context, branch string) error {
	query := `UPDATE parts
		SET quantity = quantity - 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = (
			SELECT id FROM parts
			WHERE branch = $1 AND quantity > 0
				AND (LOWER(name) LIKE '%capacete%' OR LOWER(name) LIKE '%helmet%')
			ORDER BY name
			LIMIT 1
		)`

	result, err := r.db.ExecContext(ctx, query, branch)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrPartNotFound
	}

	return nil
}
