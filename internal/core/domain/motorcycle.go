package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type MotorcycleStatus string

const (
	StatusAvailable MotorcycleStatus = "AVAILABLE"
	StatusSold      MotorcycleStatus = "SOLD"
)

// AllowTransition is the motorcycle status graph. SOLD is terminal: there
// is no un-sell path in this system.
var AllowTransition = map[MotorcycleStatus][]MotorcycleStatus{
	StatusAvailable: {StatusSold},
	StatusSold:      {},
}

// CanTransition reports whether from -> to is an allowed status change.
func CanTransition(from, to MotorcycleStatus) bool {
	if from == to {
		return true
	}
	for _, s := range AllowTransition[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Motorcycle struct {
	ID           uuid.UUID        `json:"id"`
	Model        string           `json:"model" validate:"required,max=100"`
	Year         int              `json:"year" validate:"required,min=1950,max=2100"`
	Color        string           `json:"color" validate:"max=50"`
	Chassis      string           `json:"chassis" validate:"required,max=50"`
	Branch       string           `json:"branch" validate:"required,max=100"`
	Status       MotorcycleStatus `json:"status"`
	Financing    bool             `json:"financing"`
	PurchaseCost float64          `json:"purchase_cost" validate:"min=0"`
	Repasse      float64          `json:"repasse" validate:"min=0"`
	FuelCost     float64          `json:"fuel_cost" validate:"min=0"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// MarkSold applies the AVAILABLE -> SOLD transition in memory. The
// persistent guard is the conditional update in the sale transaction; this
// is the same rule for callers that already hold the row. SOLD is terminal,
// so an already-sold motorcycle is refused rather than treated as a no-op.
func (m *Motorcycle) MarkSold() error {
	if m.Status != StatusAvailable {
		return fmt.Errorf("invalid motorcycle status transition: %s -> %s: %w", m.Status, StatusSold, ErrMotorcycleUnavailable)
	}
	m.Status = StatusSold
	return nil
}
