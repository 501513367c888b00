package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/motohub/dealership_service/internal/core/domain"

	"github.com/google/uuid"
)

type RevisionRepository struct {
	db *sql.DB
}

func NewRevisionRepository(db *sql.DB) *RevisionRepository {
	return &RevisionRepository{db: db}
}

// CreateRevision writes the revision header and its items in one
// transaction.
func (r *RevisionRepository) CreateRevision(ctx context.Context, revision *domain.Revision) (*domain.Revision, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO revisions
		(id, motorcycle_model, motorcycle_chassis, customer_name, customer_phone, branch, notes, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = tx.ExecContext(ctx, query,
		revision.ID,
		revision.MotorcycleModel,
		revision.MotorcycleChassis,
		revision.CustomerName,
		revision.CustomerPhone,
		revision.Branch,
		revision.Notes,
		revision.Total,
		revision.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	itemQuery := `INSERT INTO revision_items (id, revision_id, description, price)
		VALUES ($1, $2, $3, $4)`
	for _, item := range revision.Items {
		if _, err := tx.ExecContext(ctx, itemQuery, item.ID, item.RevisionID, item.Description, item.Price); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit revision: %w", err)
	}

	return revision, nil
}

func (r *RevisionRepository) GetRevisionByID(ctx context.Context, revisionID uuid.UUID) (*domain.Revision, error) {
	query := `SELECT id, motorcycle_model, motorcycle_chassis, customer_name, customer_phone, branch, notes, total, created_at
		FROM revisions WHERE id = $1`

	revision := &domain.Revision{}
	err := r.db.QueryRowContext(ctx, query, revisionID).Scan(
		&revision.ID,
		&revision.MotorcycleModel,
		&revision.MotorcycleChassis,
		&revision.CustomerName,
		&revision.CustomerPhone,
		&revision.Branch,
		&revision.Notes,
		&revision.Total,
		&revision.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, revision.ID)
	if err != nil {
		return nil, err
	}
	revision.Items = items

	return revision, nil
}

func (r *RevisionRepository) listItems(ctx context.Context, revisionID uuid.UUID) ([]*domain.RevisionItem, error) {
	query := `SELECT id, revision_id, description, price
		FROM revision_items WHERE revision_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, revisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.RevisionItem
	for rows.Next() {
		item := &domain.RevisionItem{}
		if err := rows.Scan(&item.ID, &item.RevisionID, &item.Description, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *RevisionRepository) ListRevisions(ctx context.Context, branch string) ([]*domain.Revision, error) {
	query := `SELECT id, motorcycle_model, motorcycle_chassis, customer_name, customer_phone, branch, notes, total, created_at
		FROM revisions`
	args := []interface{}{}
	if branch != "" {
		query += ` WHERE branch = $1`
		args = append(args, branch)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revisions []*domain.Revision
	for rows.Next() {
		revision := &domain.Revision{}
		err := rows.Scan(
			&revision.ID,
			&revision.MotorcycleModel,
			&revision.MotorcycleChassis,
			&revision.CustomerName,
			&revision.CustomerPhone,
			&revision.Branch,
			&revision.Notes,
			&revision.Total,
			&revision.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, revision)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return revisions, nil
}
