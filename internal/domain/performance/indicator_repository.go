package performance

import (
	"context"

	"github.com/google/uuid"

	"github.com/perfhub/backend/internal/domain/identity"
)

// IndicatorRepository defines the interface for indicator persistence
type IndicatorRepository interface {
	// Create saves a new indicator
	Create(ctx context.Context, ind *Indicator) error

	// Update updates an existing indicator
	Update(ctx context.Context, ind *Indicator) error

	// FindByID finds an indicator by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Indicator, error)

	// FindByIDs finds indicators by multiple IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Indicator, error)

	// FindAll finds indicators, optionally filtered by role; inactive
	// indicators are included only when includeInactive is set
	FindAll(ctx context.Context, role *identity.Role, includeInactive bool) ([]*Indicator, error)

	// FindActiveByRole finds all active indicators for a role
	FindActiveByRole(ctx context.Context, role identity.Role) ([]*Indicator, error)

	// SumActiveWeightByRole sums the weights of a role's active indicators,
	// excluding excludeID when non-nil (used when editing an existing
	// indicator so its current weight is not counted twice)
	SumActiveWeightByRole(ctx context.Context, role identity.Role, excludeID *uuid.UUID) (int, error)
}
