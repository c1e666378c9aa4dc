package performance

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/domain/shared"
)

func TestVisibilityResolver_CanView(t *testing.T) {
	ctx := context.Background()
	deptID := uuid.New()

	t.Run("everyone sees themselves", func(t *testing.T) {
		users := new(MockUserRepository)
		resolver := NewVisibilityResolver(users)

		actor := Actor{ID: uuid.New(), Role: identity.RoleEmployee, DepartmentID: deptID}
		ok, err := resolver.CanView(ctx, actor, actor.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("employees see nobody else", func(t *testing.T) {
		users := new(MockUserRepository)
		resolver := NewVisibilityResolver(users)

		actor := Actor{ID: uuid.New(), Role: identity.RoleEmployee, DepartmentID: deptID}
		ok, err := resolver.CanView(ctx, actor, uuid.New())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("managers see their department only", func(t *testing.T) {
		teammate := makeUser(t, identity.RoleEmployee, deptID)
		outsider := makeUser(t, identity.RoleEmployee, uuid.New())

		users := new(MockUserRepository)
		users.On("FindByID", ctx, teammate.ID).Return(teammate, nil)
		users.On("FindByID", ctx, outsider.ID).Return(outsider, nil)

		resolver := NewVisibilityResolver(users)
		manager := Actor{ID: uuid.New(), Role: identity.RoleManager, DepartmentID: deptID}

		ok, err := resolver.CanView(ctx, manager, teammate.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = resolver.CanView(ctx, manager, outsider.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("admins see everyone", func(t *testing.T) {
		users := new(MockUserRepository)
		resolver := NewVisibilityResolver(users)

		admin := Actor{ID: uuid.New(), Role: identity.RoleAdmin, DepartmentID: deptID}
		ok, err := resolver.CanView(ctx, admin, uuid.New())
		require.NoError(t, err)
		assert.True(t, ok)
		users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestVisibilityResolver_VisibleSubjects(t *testing.T) {
	ctx := context.Background()
	deptID := uuid.New()

	t.Run("self scope is just the actor", func(t *testing.T) {
		users := new(MockUserRepository)
		resolver := NewVisibilityResolver(users)

		actor := Actor{ID: uuid.New(), Role: identity.RoleEmployee, DepartmentID: deptID}
		ids, err := resolver.VisibleSubjects(ctx, actor, ScopeSelf)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{actor.ID}, ids)
	})

	t.Run("team scope includes the manager themselves", func(t *testing.T) {
		manager := Actor{ID: uuid.New(), Role: identity.RoleManager, DepartmentID: deptID}
		teamIDs := []uuid.UUID{manager.ID, uuid.New(), uuid.New()}

		users := new(MockUserRepository)
		users.On("FindIDsByDepartment", ctx, deptID).Return(teamIDs, nil)

		resolver := NewVisibilityResolver(users)
		ids, err := resolver.VisibleSubjects(ctx, manager, ScopeTeam)
		require.NoError(t, err)
		assert.Contains(t, ids, manager.ID)
		assert.Len(t, ids, 3)
	})

	t.Run("team scope resolves an employee's own department", func(t *testing.T) {
		actor := Actor{ID: uuid.New(), Role: identity.RoleEmployee, DepartmentID: deptID}
		teamIDs := []uuid.UUID{actor.ID, uuid.New()}

		users := new(MockUserRepository)
		users.On("FindIDsByDepartment", ctx, deptID).Return(teamIDs, nil)

		resolver := NewVisibilityResolver(users)
		ids, err := resolver.VisibleSubjects(ctx, actor, ScopeTeam)
		require.NoError(t, err)
		assert.Equal(t, teamIDs, ids)
	})

	t.Run("org scope is admin only", func(t *testing.T) {
		allIDs := []uuid.UUID{uuid.New(), uuid.New()}

		users := new(MockUserRepository)
		users.On("FindAllIDs", ctx).Return(allIDs, nil)

		resolver := NewVisibilityResolver(users)

		admin := Actor{ID: uuid.New(), Role: identity.RoleAdmin, DepartmentID: deptID}
		ids, err := resolver.VisibleSubjects(ctx, admin, ScopeOrg)
		require.NoError(t, err)
		assert.Equal(t, allIDs, ids)

		manager := Actor{ID: uuid.New(), Role: identity.RoleManager, DepartmentID: deptID}
		_, err = resolver.VisibleSubjects(ctx, manager, ScopeOrg)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestParseScope(t *testing.T) {
	scope, err := ParseScope("")
	require.NoError(t, err)
	assert.Equal(t, ScopeSelf, scope)

	for _, s := range []string{"self", "team", "org"} {
		scope, err := ParseScope(s)
		require.NoError(t, err)
		assert.Equal(t, Scope(s), scope)
	}

	_, err = ParseScope("galaxy")
	require.Error(t, err)
}
