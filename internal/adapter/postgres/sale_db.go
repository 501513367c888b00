package postgres

import (
	"context"
	"database/sql"

	"github.com/motohub/dealership_service/internal/core/domain"

	"github.com/google/uuid"
)

// SaleRepository is the read side for finished sales. Writes only happen
// through the transaction manager.
type SaleRepository struct {
	db *sql.DB
}

func NewSaleRepository(db *sql.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) GetCartSaleByID(ctx context.Context, saleID uuid.UUID) (*domain.CartSale, error) {
	query := `SELECT id, customer_name, customer_phone, customer_tax_id, total, payment_method, branch, is_revision, revision_model, revision_chassis, created_at
		FROM cart_sales WHERE id = $1`

	sale := &domain.CartSale{}
	err := r.db.QueryRowContext(ctx, query, saleID).Scan(
		&sale.ID,
		&sale.CustomerName,
		&sale.CustomerPhone,
		&sale.CustomerTaxID,
		&sale.Total,
		&sale.PaymentMethod,
		&sale.Branch,
		&sale.IsRevision,
		&sale.RevisionModel,
		&sale.RevisionChassis,
		&sale.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	sale.Items = items

	return sale, nil
}

func (r *SaleRepository) listItems(ctx context.Context, saleID uuid.UUID) ([]*domain.CartSaleItem, error) {
	query := `SELECT id, sale_id, part_id, part_name, part_code, quantity, unit_price, subtotal
		FROM cart_sale_items WHERE sale_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.CartSaleItem
	for rows.Next() {
		item := &domain.CartSaleItem{}
		err := rows.Scan(
			&item.ID,
			&item.SaleID,
			&item.PartID,
			&item.PartName,
			&item.PartCode,
			&item.Quantity,
			&item.UnitPrice,
			&item.Subtotal,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *SaleRepository) ListCartSales(ctx context.Context, branch string) ([]*domain.CartSale, error) {
	query := `SELECT id, customer_name, customer_phone, customer_tax_id, total, payment_method, branch, is_revision, revision_model, revision_chassis, created_at
		FROM cart_sales`
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

	var sales []*domain.CartSale
	for rows.Next() {
		sale := &domain.CartSale{}
		err := rows.Scan(
			&sale.ID,
			&sale.CustomerName,
			&sale.CustomerPhone,
			&sale.CustomerTaxID,
			&sale.Total,
			&sale.PaymentMethod,
			&sale.Branch,
			&sale.IsRevision,
			&sale.RevisionModel,
			&sale.RevisionChassis,
			&sale.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return sales, nil
}

func (r *SaleRepository) ListMotorcycleSales(ctx context.Context, branch string) ([]*domain.MotorcycleSale, error) {
	query := `SELECT id, motorcycle_id, customer_name, customer_phone, customer_tax_id, branch, price, gift_helmet, created_at
		FROM motorcycle_sales`
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

	var sales []*domain.MotorcycleSale
	for rows.Next() {
		sale := &domain.MotorcycleSale{}
		err := rows.Scan(
			&sale.ID,
			&sale.MotorcycleID,
			&sale.CustomerName,
			&sale.CustomerPhone,
			&sale.CustomerTaxID,
			&sale.Branch,
			&sale.Price,
			&sale.GiftHelmet,
			&sale.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return sales, nil
}

func (r *SaleRepository) ListMotorcycleSaleRecords(ctx context.Context, branch string) ([]*domain.MotorcycleSaleRecord, error) {
	query := `SELECT s.id, s.motorcycle_id, s.customer_name, s.customer_phone, s.customer_tax_id, s.branch, s.price, s.gift_helmet, s.created_at,
			m.id, m.model, m.year, m.color, m.chassis, m.branch, m.status, m.financing, m.purchase_cost, m.repasse, m.fuel_cost, m.created_at, m.updated_at
		FROM motorcycle_sales s
		JOIN motorcycles m ON m.id = s.motorcycle_id`
	args := []interface{}{}
	if branch != "" {
		query += ` WHERE s.branch = $1`
		args = append(args, branch)
	}
	query += ` ORDER BY s.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.MotorcycleSaleRecord
	for rows.Next() {
		sale := &domain.MotorcycleSale{}
		m := &domain.Motorcycle{}
		err := rows.Scan(
			&sale.ID,
			&sale.MotorcycleID,
			&sale.CustomerName,
			&sale.CustomerPhone,
			&sale.CustomerTaxID,
			&sale.Branch,
			&sale.Price,
			&sale.GiftHelmet,
			&sale.CreatedAt,
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
		records = append(records, &domain.MotorcycleSaleRecord{Sale: sale, Motorcycle: m})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
