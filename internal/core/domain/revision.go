package domain

import (
	"time"

	"github.com/google/uuid"
)

// Revision is a service/maintenance order for a motorcycle, distinct from
// a sale.
type Revision struct {
	ID                uuid.UUID       `json:"id"`
	MotorcycleModel   string          `json:"motorcycle_model" validate:"required,max=100"`
	MotorcycleChassis string          `json:"motorcycle_chassis" validate:"required,max=50"`
	CustomerName      string          `json:"customer_name" validate:"required,max=200"`
	CustomerPhone     string          `json:"customer_phone" validate:"max=30"`
	Branch            string          `json:"branch" validate:"required,max=100"`
	Notes             string          `json:"notes" validate:"max=1000"`
	Total             float64         `json:"total"`
	CreatedAt         time.Time       `json:"created_at"`
	Items             []*RevisionItem `json:"items"`
}

type RevisionItem struct {
	ID          uuid.UUID `json:"id"`
	RevisionID  uuid.UUID `json:"revision_id"`
	Description string    `json:"description" validate:"required,max=200"`
	Price       float64   `json:"price" validate:"min=0"`
}

// ComputeTotal sums the item prices into the revision total.
func (r *Revision) ComputeTotal() float64 {
	total := 0.0
	for _, item := range r.Items {
		total += item.Price
	}
	r.Total = total
	return total
}
