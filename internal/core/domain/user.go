package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	// Diretoria is the head-office role with cross-branch visibility.
	Diretoria UserRole = "diretoria"
	Vendedor  UserRole = "vendedor"
	Mecanico  UserRole = "mecanico"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username" validate:"required,max=100"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role" validate:"required"`
	Branch       string    `json:"branch" validate:"required,max=100"`
	CreatedAt    time.Time `json:"created_at"`
}

type TokenPayload struct {
	UserID   uuid.UUID
	Username string
	Role     UserRole
	Branch   string
}

// SeesAllBranches reports whether the role may read data across filiais.
func (p *TokenPayload) SeesAllBranches() bool {
	return p.Role == Diretoria
}
