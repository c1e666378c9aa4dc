package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create saves a new user
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByIDs finds users by multiple IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*User, error)

	// FindAll finds all users, newest first
	FindAll(ctx context.Context, page, pageSize int) ([]*User, int64, error)

	// FindIDsByDepartment returns the IDs of all active users in a department
	FindIDsByDepartment(ctx context.Context, departmentID uuid.UUID) ([]uuid.UUID, error)

	// FindAllIDs returns the IDs of all active users
	FindAllIDs(ctx context.Context) ([]uuid.UUID, error)

	// ExistsByUsername checks if a username is taken
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
