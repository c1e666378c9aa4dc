package performance

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/domain/performance"
)

func TestWeightLedger_Reserve(t *testing.T) {
	ctx := context.Background()

	t.Run("allows allocation within budget", func(t *testing.T) {
		repo := new(MockIndicatorRepository)
		repo.On("SumActiveWeightByRole", ctx, identity.RoleEmployee, (*uuid.UUID)(nil)).Return(70, nil)

		err := NewWeightLedger(repo).Reserve(ctx, identity.RoleEmployee, 30, nil)
		require.NoError(t, err)
	})

	t.Run("rejects allocation over budget with would-be total", func(t *testing.T) {
		repo := new(MockIndicatorRepository)
		repo.On("SumActiveWeightByRole", ctx, identity.RoleEmployee, (*uuid.UUID)(nil)).Return(90, nil)

		err := NewWeightLedger(repo).Reserve(ctx, identity.RoleEmployee, 20, nil)
		require.Error(t, err)

		var weightErr *performance.WeightExceededError
		require.True(t, errors.As(err, &weightErr))
		assert.Equal(t, identity.RoleEmployee, weightErr.Role)
		assert.Equal(t, 110, weightErr.WouldBeTotal)
	})

	t.Run("excludes an indicator's own weight when editing", func(t *testing.T) {
		excludeID := uuid.New()
		repo := new(MockIndicatorRepository)
		repo.On("SumActiveWeightByRole", ctx, identity.RoleEmployee, &excludeID).Return(60, nil)

		// 60 allocated without the edited indicator; raising it to 40 fits
		err := NewWeightLedger(repo).Reserve(ctx, identity.RoleEmployee, 40, &excludeID)
		require.NoError(t, err)
	})

	t.Run("exact budget is allowed", func(t *testing.T) {
		repo := new(MockIndicatorRepository)
		repo.On("SumActiveWeightByRole", ctx, identity.RoleEmployee, (*uuid.UUID)(nil)).Return(80, nil)

		err := NewWeightLedger(repo).Reserve(ctx, identity.RoleEmployee, 20, nil)
		require.NoError(t, err)
	})
}

func TestWeightLedger_IsFullyAllocated(t *testing.T) {
	ctx := context.Background()

	t.Run("partial allocation is not fully allocated", func(t *testing.T) {
		repo := new(MockIndicatorRepository)
		repo.On("SumActiveWeightByRole", ctx, identity.RoleManager, (*uuid.UUID)(nil)).Return(70, nil)

		full, err := NewWeightLedger(repo).IsFullyAllocated(ctx, identity.RoleManager)
		require.NoError(t, err)
		assert.False(t, full)
	})

	t.Run("exact budget is fully allocated", func(t *testing.T) {
		repo := new(MockIndicatorRepository)
		repo.On("SumActiveWeightByRole", ctx, identity.RoleManager, (*uuid.UUID)(nil)).Return(100, nil)

		full, err := NewWeightLedger(repo).IsFullyAllocated(ctx, identity.RoleManager)
		require.NoError(t, err)
		assert.True(t, full)
	})
}
