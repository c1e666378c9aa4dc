package performance

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/domain/performance"
	"github.com/perfhub/backend/internal/domain/shared"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func adminActor() Actor {
	return Actor{ID: uuid.New(), Role: identity.RoleAdmin, DepartmentID: uuid.New()}
}

func makeIndicator(t *testing.T, role identity.Role, weight int) *performance.Indicator {
	t.Helper()
	ind, err := performance.NewIndicator("Customer Satisfaction", weight, performance.KindQuantitative, dec("90"), role)
	require.NoError(t, err)
	ind.ClearDomainEvents()
	return ind
}

func TestIndicatorService_Create(t *testing.T) {
	ctx := context.Background()

	req := CreateIndicatorRequest{
		Name:   "Customer Satisfaction",
		Weight: 30,
		Kind:   "quantitative",
		Target: dec("90"),
		Role:   "employee",
	}

	t.Run("creates indicator when budget allows", func(t *testing.T) {
		repo := new(MockIndicatorRepository)
		repo.On("SumActiveWeightByRole", ctx, identity.RoleEmployee, (*uuid.UUID)(nil)).Return(70, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*performance.Indicator")).Return(nil)

		svc := NewIndicatorService(repo, NewNoOpIndicatorTxScope(repo))
		resp, err := svc.Create(ctx, adminActor(), req)
		require.NoError(t, err)
		require.NotNil(t, resp)

		assert.Equal(t, "Customer Satisfaction", resp.Name)
		assert.Equal(t, 30, resp.Weight)
		assert.Equal(t, "employee", resp.Role)
		assert.True(t, resp.Active)
		repo.AssertExpectations(t)
	})

	t.Run("rejects indicator that blows the budget", func(t *testing.T) {
		repo := new(MockIndicatorRepository)
		repo.On("SumActiveWeightByRole", ctx, identity.RoleEmployee, (*uuid.UUID)(nil)).Return(90, nil)

		svc := NewIndicatorService(repo, NewNoOpIndicatorTxScope(repo))
		_, err := svc.Create(ctx, adminActor(), req)
		require.Error(t, err)

		var weightErr *performance.WeightExceededError
		require.True(t, errors.As(err, &weightErr))
		assert.Equal(t, 120, weightErr.WouldBeTotal)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("only admins can define indicators", func(t *testing.T) {
		repo := new(MockIndicatorRepository)
		svc := NewIndicatorService(repo, NewNoOpIndicatorTxScope(repo))

		for _, role := range []identity.Role{identity.RoleEmployee, identity.RoleManager} {
			actor := Actor{ID: uuid.New(), Role: role, DepartmentID: uuid.New()}
			_, err := svc.Create(ctx, actor, req)
			assert.ErrorIs(t, err, shared.ErrForbidden)
		}
		repo.AssertNotCalled(t, "SumActiveWeightByRole", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestIndicatorService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("weight change re-reserves excluding the indicator itself", func(t *testing.T) {
		ind := makeIndicator(t, identity.RoleEmployee, 30)

		repo := new(MockIndicatorRepository)
		repo.On("FindByID", ctx, ind.ID).Return(ind, nil)
		repo.On("SumActiveWeightByRole", ctx, identity.RoleEmployee, &ind.ID).Return(60, nil)
		repo.On("Update", ctx, ind).Return(nil)

		newWeight := 40
		svc := NewIndicatorService(repo, NewNoOpIndicatorTxScope(repo))
		resp, err := svc.Update(ctx, adminActor(), ind.ID, UpdateIndicatorRequest{Weight: &newWeight})
		require.NoError(t, err)

		assert.Equal(t, 40, resp.Weight)
		repo.AssertExpectations(t)
	})

	t.Run("unchanged weight skips the budget check", func(t *testing.T) {
		ind := makeIndicator(t, identity.RoleEmployee, 30)

		repo := new(MockIndicatorRepository)
		repo.On("FindByID", ctx, ind.ID).Return(ind, nil)
		repo.On("Update", ctx, ind).Return(nil)

		name := "Net Promoter Score"
		svc := NewIndicatorService(repo, NewNoOpIndicatorTxScope(repo))
		resp, err := svc.Update(ctx, adminActor(), ind.ID, UpdateIndicatorRequest{Name: &name})
		require.NoError(t, err)

		assert.Equal(t, "Net Promoter Score", resp.Name)
		repo.AssertNotCalled(t, "SumActiveWeightByRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects weight change over budget", func(t *testing.T) {
		ind := makeIndicator(t, identity.RoleEmployee, 30)

		repo := new(MockIndicatorRepository)
		repo.On("FindByID", ctx, ind.ID).Return(ind, nil)
		repo.On("SumActiveWeightByRole", ctx, identity.RoleEmployee, &ind.ID).Return(70, nil)

		newWeight := 40
		svc := NewIndicatorService(repo, NewNoOpIndicatorTxScope(repo))
		_, err := svc.Update(ctx, adminActor(), ind.ID, UpdateIndicatorRequest{Weight: &newWeight})
		require.Error(t, err)

		var weightErr *performance.WeightExceededError
		require.True(t, errors.As(err, &weightErr))
		assert.Equal(t, 30, ind.Weight, "failed update must not mutate the stored weight")
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestIndicatorService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivate frees weight without a budget check", func(t *testing.T) {
		ind := makeIndicator(t, identity.RoleEmployee, 30)

		repo := new(MockIndicatorRepository)
		repo.On("FindByID", ctx, ind.ID).Return(ind, nil)
		repo.On("Update", ctx, ind).Return(nil)

		svc := NewIndicatorService(repo, NewNoOpIndicatorTxScope(repo))
		resp, err := svc.Deactivate(ctx, adminActor(), ind.ID)
		require.NoError(t, err)

		assert.False(t, resp.Active)
		repo.AssertNotCalled(t, "SumActiveWeightByRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("activate re-reserves the weight", func(t *testing.T) {
		ind := makeIndicator(t, identity.RoleEmployee, 30)
		require.NoError(t, ind.Deactivate())

		repo := new(MockIndicatorRepository)
		repo.On("FindByID", ctx, ind.ID).Return(ind, nil)
		repo.On("SumActiveWeightByRole", ctx, identity.RoleEmployee, &ind.ID).Return(80, nil)

		svc := NewIndicatorService(repo, NewNoOpIndicatorTxScope(repo))
		_, err := svc.Activate(ctx, adminActor(), ind.ID)
		require.Error(t, err)

		var weightErr *performance.WeightExceededError
		require.True(t, errors.As(err, &weightErr))
		assert.Equal(t, 110, weightErr.WouldBeTotal)
		assert.False(t, ind.Active)
	})
}

func TestIndicatorService_Allocation(t *testing.T) {
	ctx := context.Background()

	repo := new(MockIndicatorRepository)
	repo.On("SumActiveWeightByRole", ctx, identity.RoleEmployee, (*uuid.UUID)(nil)).Return(70, nil)

	svc := NewIndicatorService(repo, NewNoOpIndicatorTxScope(repo))
	resp, err := svc.Allocation(ctx, "employee")
	require.NoError(t, err)

	assert.Equal(t, 70, resp.Allocated)
	assert.Equal(t, 100, resp.Budget)
	assert.Equal(t, 30, resp.Remaining)
	assert.False(t, resp.FullyAllocated)
}
