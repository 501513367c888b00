package ports

import "github.com/motohub/dealership_service/internal/core/domain"

type InvoiceRenderer interface {
	RenderCartSale(sale *domain.CartSale) ([]byte, error)
}
