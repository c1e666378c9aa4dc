package performance

import (
	"context"

	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/domain/performance"
)

// IndicatorTxScope provides transactional access to the indicator repository
// under a per-role lock. Weight validation reads the current allocation and
// writes the new indicator in one step; the role lock serializes concurrent
// writers for the same role so two requests cannot both pass the budget check
// against the same snapshot.
type IndicatorTxScope interface {
	// ExecuteWithRoleLock runs fn inside a database transaction that holds an
	// exclusive lock for the given role. The lock is released when the
	// transaction commits or rolls back. Writers for different roles do not
	// block each other.
	ExecuteWithRoleLock(ctx context.Context, role identity.Role, fn func(indicators performance.IndicatorRepository) error) error
}

// NoOpIndicatorTxScope runs the function directly against a repository without
// a transaction or lock. Useful for tests.
type NoOpIndicatorTxScope struct {
	indicators performance.IndicatorRepository
}

// NewNoOpIndicatorTxScope creates a NoOpIndicatorTxScope over the given repository.
func NewNoOpIndicatorTxScope(indicators performance.IndicatorRepository) *NoOpIndicatorTxScope {
	return &NoOpIndicatorTxScope{indicators: indicators}
}

// ExecuteWithRoleLock runs the function without a real transaction or lock.
func (s *NoOpIndicatorTxScope) ExecuteWithRoleLock(_ context.Context, _ identity.Role, fn func(indicators performance.IndicatorRepository) error) error {
	return fn(s.indicators)
}
