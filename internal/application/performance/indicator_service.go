package performance

import (
	"context"

	"github.com/google/uuid"

	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/domain/performance"
	"github.com/perfhub/backend/internal/domain/shared"
)

// IndicatorService handles indicator definition and weight budget management.
// Every write that can grow a role's allocated weight runs through the
// transaction scope under that role's lock, so the budget check and the write
// commit atomically.
type IndicatorService struct {
	indicators performance.IndicatorRepository
	txScope    IndicatorTxScope
}

// NewIndicatorService creates a new IndicatorService
func NewIndicatorService(indicators performance.IndicatorRepository, txScope IndicatorTxScope) *IndicatorService {
	return &IndicatorService{
		indicators: indicators,
		txScope:    txScope,
	}
}

// Create defines a new indicator for a role, reserving its weight against the
// role's budget.
func (s *IndicatorService) Create(ctx context.Context, actor Actor, req CreateIndicatorRequest) (*IndicatorResponse, error) {
	if !actor.Role.CanManageIndicators() {
		return nil, shared.ErrForbidden
	}

	role, err := identity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	ind, err := performance.NewIndicator(req.Name, req.Weight, performance.IndicatorKind(req.Kind), req.Target, role)
	if err != nil {
		return nil, err
	}
	if req.Unit != "" {
		ind.SetUnit(req.Unit)
	}
	if req.Category != "" {
		ind.SetCategory(req.Category)
	}
	ind.SetCreatedBy(actor.ID)

	err = s.txScope.ExecuteWithRoleLock(ctx, role, func(indicators performance.IndicatorRepository) error {
		if err := NewWeightLedger(indicators).Reserve(ctx, role, ind.Weight, nil); err != nil {
			return err
		}
		return indicators.Create(ctx, ind)
	})
	if err != nil {
		return nil, err
	}

	resp := ToIndicatorResponse(ind)
	return &resp, nil
}

// Update changes an indicator's definition. A weight change re-reserves the
// new weight with the indicator's current weight excluded from the total.
func (s *IndicatorService) Update(ctx context.Context, actor Actor, id uuid.UUID, req UpdateIndicatorRequest) (*IndicatorResponse, error) {
	if !actor.Role.CanManageIndicators() {
		return nil, shared.ErrForbidden
	}

	var updated *performance.Indicator

	err := s.lockedByIndicator(ctx, id, func(indicators performance.IndicatorRepository, ind *performance.Indicator) error {
		name := ind.Name
		weight := ind.Weight
		target := ind.Target
		if req.Name != nil {
			name = *req.Name
		}
		if req.Weight != nil {
			weight = *req.Weight
		}
		if req.Target != nil {
			target = *req.Target
		}

		if ind.Active && weight != ind.Weight {
			if err := NewWeightLedger(indicators).Reserve(ctx, ind.Role, weight, &ind.ID); err != nil {
				return err
			}
		}

		if err := ind.Update(name, weight, target); err != nil {
			return err
		}
		if req.Unit != nil {
			ind.SetUnit(*req.Unit)
		}
		if req.Category != nil {
			ind.SetCategory(*req.Category)
		}

		if err := indicators.Update(ctx, ind); err != nil {
			return err
		}
		updated = ind
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToIndicatorResponse(updated)
	return &resp, nil
}

// Activate re-activates an indicator, which re-reserves its weight.
func (s *IndicatorService) Activate(ctx context.Context, actor Actor, id uuid.UUID) (*IndicatorResponse, error) {
	if !actor.Role.CanManageIndicators() {
		return nil, shared.ErrForbidden
	}

	var updated *performance.Indicator

	err := s.lockedByIndicator(ctx, id, func(indicators performance.IndicatorRepository, ind *performance.Indicator) error {
		if err := NewWeightLedger(indicators).Reserve(ctx, ind.Role, ind.Weight, &ind.ID); err != nil {
			return err
		}
		if err := ind.Activate(); err != nil {
			return err
		}
		if err := indicators.Update(ctx, ind); err != nil {
			return err
		}
		updated = ind
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToIndicatorResponse(updated)
	return &resp, nil
}

// Deactivate retires an indicator, freeing its weight for the role. Existing
// score records keep their snapshots.
func (s *IndicatorService) Deactivate(ctx context.Context, actor Actor, id uuid.UUID) (*IndicatorResponse, error) {
	if !actor.Role.CanManageIndicators() {
		return nil, shared.ErrForbidden
	}

	var updated *performance.Indicator

	err := s.lockedByIndicator(ctx, id, func(indicators performance.IndicatorRepository, ind *performance.Indicator) error {
		if err := ind.Deactivate(); err != nil {
			return err
		}
		if err := indicators.Update(ctx, ind); err != nil {
			return err
		}
		updated = ind
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToIndicatorResponse(updated)
	return &resp, nil
}

// GetByID returns a single indicator
func (s *IndicatorService) GetByID(ctx context.Context, id uuid.UUID) (*IndicatorResponse, error) {
	ind, err := s.indicators.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToIndicatorResponse(ind)
	return &resp, nil
}

// List returns indicators, optionally filtered by role
func (s *IndicatorService) List(ctx context.Context, filter IndicatorListFilter) ([]IndicatorResponse, error) {
	var role *identity.Role
	if filter.Role != "" {
		parsed, err := identity.ParseRole(filter.Role)
		if err != nil {
			return nil, err
		}
		role = &parsed
	}

	inds, err := s.indicators.FindAll(ctx, role, filter.IncludeInactive)
	if err != nil {
		return nil, err
	}

	resp := make([]IndicatorResponse, 0, len(inds))
	for _, ind := range inds {
		resp = append(resp, ToIndicatorResponse(ind))
	}
	return resp, nil
}

// Allocation reports a role's weight budget usage
func (s *IndicatorService) Allocation(ctx context.Context, roleStr string) (*WeightAllocationResponse, error) {
	role, err := identity.ParseRole(roleStr)
	if err != nil {
		return nil, err
	}

	allocated, err := NewWeightLedger(s.indicators).Allocation(ctx, role)
	if err != nil {
		return nil, err
	}

	return &WeightAllocationResponse{
		Role:           string(role),
		Allocated:      allocated,
		Budget:         performance.MaxRoleWeight,
		Remaining:      performance.MaxRoleWeight - allocated,
		FullyAllocated: allocated == performance.MaxRoleWeight,
	}, nil
}

// lockedByIndicator loads the indicator once to learn its role, then re-loads
// it under that role's lock so concurrent edits serialize with budget checks.
func (s *IndicatorService) lockedByIndicator(ctx context.Context, id uuid.UUID, fn func(indicators performance.IndicatorRepository, ind *performance.Indicator) error) error {
	probe, err := s.indicators.FindByID(ctx, id)
	if err != nil {
		return err
	}

	return s.txScope.ExecuteWithRoleLock(ctx, probe.Role, func(indicators performance.IndicatorRepository) error {
		ind, err := indicators.FindByID(ctx, id)
		if err != nil {
			return err
		}
		return fn(indicators, ind)
	})
}
