package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/motohub/dealership_service/internal/core/domain"
)

// TxRepos exposes the repositories bound to one open transaction. Every
// write made through them commits or rolls back together.
type TxRepos interface {
	Parts() PartTxRepository
	CartSales() CartSaleTxRepository
	Motorcycles() MotorcycleTxRepository
	MotorcycleSales() MotorcycleSaleTxRepository
}

// TransactionManager hides begin/commit/rollback from the service layer.
// fn runs inside one atomic unit; returning an error rolls back every
// write made through the TxRepos.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}

type PartTxRepository interface {
	// GetPartForUpdate reads the part row with a row lock so the stock
	// check and the decrement see a consistent quantity.
	GetPartForUpdate(ctx context.Context, partID uuid.UUID) (*domain.Part, error)
	GetPartByCodeForUpdate(ctx context.Context, code string, branch string) (*domain.Part, error)
	CreatePart(ctx context.Context, part *domain.Part) error
	DecrementStock(ctx context.Context, partID uuid.UUID, quantity int) error
	IncrementStock(ctx context.Context, partID uuid.UUID, quantity int) error
}

type CartSaleTxRepository interface {
	InsertSale(ctx context.Context, sale *domain.CartSale) error
	InsertItem(ctx context.Context, item *domain.CartSaleItem) error
}

type MotorcycleTxRepository interface {
	// MarkSold flips status to SOLD only when the row is still AVAILABLE.
	// Zero rows affected means the motorcycle is gone or already sold.
	MarkSold(ctx context.Context, motorcycleID uuid.UUID) error
}

type MotorcycleSaleTxRepository interface {
	InsertSale(ctx context.Context, sale *domain.MotorcycleSale) error
}

// SaleRepository is the read side for finished sales. Sales are immutable
// once written, so there are no update or delete operations.
type SaleRepository interface {
	GetCartSaleByID(ctx context.Context, saleID uuid.UUID) (*domain.CartSale, error)
	ListCartSales(ctx context.Context, branch string) ([]*domain.CartSale, error)
	ListMotorcycleSales(ctx context.Context, branch string) ([]*domain.MotorcycleSale, error)
	ListMotorcycleSaleRecords(ctx context.Context, branch string) ([]*domain.MotorcycleSaleRecord, error)
}
