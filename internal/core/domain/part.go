package domain

import (
	"time"

	"github.com/google/uuid"
)

// Part is a stock item at one branch. Quantity is the authoritative stock
// count and must never go negative; sales decrement it inside the checkout
// transaction only.
type Part struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name" validate:"required,max=200"`
	Code      string    `json:"code" validate:"required,max=50"`
	Quantity  int       `json:"quantity" validate:"min=0"`
	Branch    string    `json:"branch" validate:"required,max=100"`
	UnitPrice float64   `json:"unit_price" validate:"min=0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
