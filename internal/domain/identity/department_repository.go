package identity

import (
	"context"

	"github.com/google/uuid"
)

// DepartmentRepository defines the interface for department persistence
type DepartmentRepository interface {
	// Create saves a new department
	Create(ctx context.Context, dept *Department) error

	// Update updates an existing department
	Update(ctx context.Context, dept *Department) error

	// FindByID finds a department by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Department, error)

	// FindByCode finds a department by code
	FindByCode(ctx context.Context, code string) (*Department, error)

	// FindAll finds all departments ordered by name
	FindAll(ctx context.Context) ([]*Department, error)

	// ExistsByCode checks if a department code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
