package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartSale is the aggregate root of a cart checkout. It owns its item rows
// and is immutable once written; there is no update or delete path.
type CartSale struct {
	ID              uuid.UUID       `json:"id"`
	CustomerName    string          `json:"customer_name" validate:"required,max=200"`
	CustomerPhone   string          `json:"customer_phone" validate:"max=30"`
	CustomerTaxID   string          `json:"customer_tax_id" validate:"max=30"`
	Total           float64         `json:"total"`
	PaymentMethod   string          `json:"payment_method" validate:"max=50"`
	Branch          string          `json:"branch" validate:"required,max=100"`
	IsRevision      bool            `json:"is_revision"`
	RevisionModel   string          `json:"revision_model" validate:"max=100"`
	RevisionChassis string          `json:"revision_chassis" validate:"max=50"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []*CartSaleItem `json:"items" validate:"dive"`
}

// CartSaleItem snapshots the part name and code at sale time; PartID is a
// reference, not ownership.
type CartSaleItem struct {
	ID        uuid.UUID `json:"id"`
	SaleID    uuid.UUID `json:"sale_id"`
	PartID    uuid.UUID `json:"part_id" validate:"required"`
	PartName  string    `json:"part_name"`
	PartCode  string    `json:"part_code"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
	UnitPrice float64   `json:"unit_price" validate:"min=0"`
	Subtotal  float64   `json:"subtotal"`
}

// ComputeTotal recalculates every item subtotal and the sale total from
// quantities and unit prices. A client-submitted total is never trusted.
func (s *CartSale) ComputeTotal() float64 {
	total := 0.0
	for _, item := range s.Items {
		item.Subtotal = float64(item.Quantity) * item.UnitPrice
		total += item.Subtotal
	}
	s.Total = total
	return total
}

// Validate applies the fail-fast checks that run before the transaction
// opens.
func (s *CartSale) Validate() error {
	if s.CustomerName == "" {
		return ErrInvalidCustomer
	}
	if len(s.Items) == 0 {
		return ErrEmptyCart
	}
	if s.IsRevision && (s.RevisionModel == "" || s.RevisionChassis == "") {
		return ErrRevisionFieldsMissing
	}
	return nil
}

type MotorcycleSale struct {
	ID            uuid.UUID `json:"id"`
	MotorcycleID  uuid.UUID `json:"motorcycle_id" validate:"required"`
	CustomerName  string    `json:"customer_name" validate:"required,max=200"`
	CustomerPhone string    `json:"customer_phone" validate:"max=30"`
	CustomerTaxID string    `json:"customer_tax_id" validate:"max=30"`
	Branch        string    `json:"branch" validate:"required,max=100"`
	Price         float64   `json:"price" validate:"min=0"`
	GiftHelmet    bool      `json:"gift_helmet"`
	CreatedAt     time.Time `json:"created_at"`
}

// HelmetGiftCost is the fixed deduction applied to dashboard net figures
// when a sale included a gift helmet.
const HelmetGiftCost = 150.0

// NetValue is the dashboard figure for a motorcycle sale: price minus
// repasse when repasse > 0, otherwise minus purchase cost, minus fuel and
// the helmet gift deduction when present.
func (s *MotorcycleSale) NetValue(m *Motorcycle) float64 {
	net := s.Price
	if m != nil {
		if m.Repasse > 0 {
			net -= m.Repasse
		} else {
			net -= m.PurchaseCost
		}
		net -= m.FuelCost
	}
	if s.GiftHelmet {
		net -= HelmetGiftCost
	}
	return net
}
