package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/motohub/dealership_service/internal/core/domain"
	"github.com/motohub/dealership_service/internal/core/ports"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// TxManager runs service callbacks inside one database transaction. The
// deferred rollback is a no-op after a successful commit.
type TxManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(r ports.TxRepos) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&txRepos{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrFinalizeSale, err)
	}
	return nil
}

type txRepos struct {
	tx *sql.Tx
}

func (r *txRepos) Parts() ports.PartTxRepository {
	return &partTxRepository{tx: r.tx}
}

func (r *txRepos) CartSales() ports.CartSaleTxRepository {
	return &cartSaleTxRepository{tx: r.tx}
}

func (r *txRepos) Motorcycles() ports.MotorcycleTxRepository {
	return &motorcycleTxRepository{tx: r.tx}
}

func (r *txRepos) MotorcycleSales() ports.MotorcycleSaleTxRepository {
	return &motorcycleSaleTxRepository{tx: r.tx}
}

type partTxRepository struct {
	tx *sql.Tx
}

// GetPartForUpdate locks the part row so the stock check and the following
// decrement see a consistent quantity under concurrent checkouts.
func (r *partTxRepository) GetPartForUpdate(ctx context.Context, partID uuid.UUID) (*domain.Part, error) {
	query := `SELECT id, name, code, quantity, branch, unit_price, created_at, updated_at
		FROM parts WHERE id = $1
		FOR UPDATE`

	part := &domain.Part{}
	err := r.tx.QueryRowContext(ctx, query, partID).Scan(
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

func (r *partTxRepository) GetPartByCodeForUpdate(ctx context.Context, code string, branch string) (*domain.Part, error) {
	query := `SELECT id, name, code, quantity, branch, unit_price, created_at, updated_at
		FROM parts WHERE code = $1 AND branch = $2
		FOR UPDATE`

	part := &domain.Part{}
	err := r.tx.QueryRowContext(ctx, query, code, branch).Scan(
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

func (r *partTxRepository) CreatePart(ctx context.Context, part *domain.Part) error {
	query := `INSERT INTO parts (id, name, code, quantity, branch, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.tx.ExecContext(ctx, query,
		part.ID,
		part.Name,
		part.Code,
		part.Quantity,
		part.Branch,
		part.UnitPrice,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("part code already registered at branch")
		}
		return err
	}
	return nil
}

// DecrementStock deducts quantity from the part. The quantity >= $1 guard
// backs up the service-level check under the non-negative constraint.
func (r *partTxRepository) DecrementStock(ctx context.Context, partID uuid.UUID, quantity int) error {
	query := `UPDATE parts
		SET quantity = quantity - $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND quantity >= $1`

	result, err := r.tx.ExecContext(ctx, query, quantity, partID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

func (r *partTxRepository) IncrementStock(ctx context.Context, partID uuid.UUID, quantity int) error {
	query := `UPDATE parts
		SET quantity = quantity + $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2`

	result, err := r.tx.ExecContext(ctx, query, quantity, partID)
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

type cartSaleTxRepository struct {
	tx *sql.Tx
}

func (r *cartSaleTxRepository) InsertSale(ctx context.Context, sale *domain.CartSale) error {
	query := `INSERT INTO cart_sales
		(id, customer_name, customer_phone, customer_tax_id, total, payment_method, branch, is_revision, revision_model, revision_chassis, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.tx.ExecContext(ctx, query,
		sale.ID,
		sale.CustomerName,
		sale.CustomerPhone,
		sale.CustomerTaxID,
		sale.Total,
		sale.PaymentMethod,
		sale.Branch,
		sale.IsRevision,
		sale.RevisionModel,
		sale.RevisionChassis,
		sale.CreatedAt,
	)
	return err
}

func (r *cartSaleTxRepository) InsertItem(ctx context.Context, item *domain.CartSaleItem) error {
	query := `INSERT INTO cart_sale_items
		(id, sale_id, part_id, part_name, part_code, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.tx.ExecContext(ctx, query,
		item.ID,
		item.SaleID,
		item.PartID,
		item.PartName,
		item.PartCode,
		item.Quantity,
		item.UnitPrice,
		item.Subtotal,
	)
	return err
}

type motorcycleTxRepository struct {
	tx *sql.Tx
}

// MarkSold is a compare-and-set update: it only applies while the row is
// still AVAILABLE, which is what prevents double-selling the same
// motorcycle from two simultaneous requests.
func (r *motorcycleTxRepository) MarkSold(ctx context.Context, motorcycleID uuid.UUID) error {
	query := `UPDATE motorcycles
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND status = $3`

	result, err := r.tx.ExecContext(ctx, query, domain.StatusSold, motorcycleID, domain.StatusAvailable)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrMotorcycleUnavailable
	}
	return nil
}

type motorcycleSaleTxRepository struct {
	tx *sql.Tx
}

func (r *motorcycleSaleTxRepository) InsertSale(ctx context.Context, sale *domain.MotorcycleSale) error {
	query := `INSERT INTO motorcycle_sales
		(id, motorcycle_id, customer_name, customer_phone, customer_tax_id, branch, price, gift_helmet, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.tx.ExecContext(ctx, query,
		sale.ID,
		sale.MotorcycleID,
		sale.CustomerName,
		sale.CustomerPhone,
		sale.CustomerTaxID,
		sale.Branch,
		sale.Price,
		sale.GiftHelmet,
		sale.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return domain.ErrMotorcycleUnavailable
		}
		return err
	}
	return nil
}
