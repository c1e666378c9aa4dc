package performance

import (
	"context"

	"github.com/google/uuid"

	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/domain/performance"
)

// WeightLedger tracks how much of a role's weight budget is allocated to
// active indicators. Reserve is the write-time guard: the sum of active
// weights per role may never exceed the budget, but partial allocation is
// allowed while an admin is still composing the indicator set.
// IsFullyAllocated is the separate read-time question of whether the set is
// complete. The ledger reads through the repository it is given, so calling
// it with a transaction-scoped repository makes the check part of that
// transaction.
type WeightLedger struct {
	indicators performance.IndicatorRepository
}

// NewWeightLedger creates a WeightLedger over the given repository.
func NewWeightLedger(indicators performance.IndicatorRepository) *WeightLedger {
	return &WeightLedger{indicators: indicators}
}

// Reserve checks that adding weight for the role keeps the total active
// allocation within the budget. excludeID omits an existing indicator from
// the current total, which is how edits avoid counting their own old weight.
// Returns a WeightExceededError carrying the would-be total on violation.
func (l *WeightLedger) Reserve(ctx context.Context, role identity.Role, weight int, excludeID *uuid.UUID) error {
	allocated, err := l.indicators.SumActiveWeightByRole(ctx, role, excludeID)
	if err != nil {
		return err
	}

	if wouldBe := allocated + weight; wouldBe > performance.MaxRoleWeight {
		return performance.NewWeightExceededError(role, wouldBe)
	}
	return nil
}

// Allocation returns the total weight currently allocated to the role's
// active indicators.
func (l *WeightLedger) Allocation(ctx context.Context, role identity.Role) (int, error) {
	return l.indicators.SumActiveWeightByRole(ctx, role, nil)
}

// IsFullyAllocated reports whether the role's active indicators consume the
// entire budget. A role whose set is not fully allocated can still receive
// score submissions; completeness is advisory.
func (l *WeightLedger) IsFullyAllocated(ctx context.Context, role identity.Role) (bool, error) {
	allocated, err := l.Allocation(ctx, role)
	if err != nil {
		return false, err
	}
	return allocated == performance.MaxRoleWeight, nil
}
