package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	deptID := uuid.New()

	t.Run("creates user with valid inputs", func(t *testing.T) {
		user, err := NewUser("jane.doe", "Jane Doe", RoleEmployee, deptID)
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, "jane.doe", user.Username)
		assert.Equal(t, "Jane Doe", user.DisplayName)
		assert.Equal(t, RoleEmployee, user.Role)
		assert.Equal(t, deptID, user.DepartmentID)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.True(t, user.IsActive())
	})

	t.Run("normalizes username to lowercase", func(t *testing.T) {
		user, err := NewUser("  Jane.Doe  ", "Jane", RoleEmployee, deptID)
		require.NoError(t, err)
		assert.Equal(t, "jane.doe", user.Username)
	})

	t.Run("defaults display name to username", func(t *testing.T) {
		user, err := NewUser("jane", "  ", RoleEmployee, deptID)
		require.NoError(t, err)
		assert.Equal(t, "jane", user.DisplayName)
	})

	t.Run("publishes UserCreated event", func(t *testing.T) {
		user, err := NewUser("jane", "Jane", RoleEmployee, deptID)
		require.NoError(t, err)

		events := user.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeUserCreated, events[0].EventType())
	})

	t.Run("fails with short username", func(t *testing.T) {
		_, err := NewUser("jd", "Jane", RoleEmployee, deptID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 3 characters")
	})

	t.Run("fails with invalid username characters", func(t *testing.T) {
		_, err := NewUser("jane doe", "Jane", RoleEmployee, deptID)
		require.Error(t, err)
	})

	t.Run("fails with unknown role", func(t *testing.T) {
		_, err := NewUser("jane", "Jane", Role("intern"), deptID)
		require.Error(t, err)
	})

	t.Run("fails without department", func(t *testing.T) {
		_, err := NewUser("jane", "Jane", RoleEmployee, uuid.Nil)
		require.Error(t, err)
	})
}

func TestUser_Password(t *testing.T) {
	user, err := NewUser("jane", "Jane", RoleEmployee, uuid.New())
	require.NoError(t, err)

	t.Run("rejects short passwords", func(t *testing.T) {
		err := user.SetPassword("short")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("hashes and verifies", func(t *testing.T) {
		require.NoError(t, user.SetPassword("correct-horse"))
		assert.NotEqual(t, "correct-horse", user.PasswordHash)
		assert.True(t, user.CheckPassword("correct-horse"))
		assert.False(t, user.CheckPassword("wrong-horse"))
	})
}

func TestUser_Mutations(t *testing.T) {
	newUser := func(t *testing.T) *User {
		user, err := NewUser("jane", "Jane", RoleEmployee, uuid.New())
		require.NoError(t, err)
		return user
	}

	t.Run("changes role", func(t *testing.T) {
		user := newUser(t)
		require.NoError(t, user.ChangeRole(RoleManager))
		assert.Equal(t, RoleManager, user.Role)

		require.Error(t, user.ChangeRole(Role("intern")))
		assert.Equal(t, RoleManager, user.Role)
	})

	t.Run("moves between departments", func(t *testing.T) {
		user := newUser(t)
		target := uuid.New()
		require.NoError(t, user.MoveToDepartment(target))
		assert.Equal(t, target, user.DepartmentID)

		require.Error(t, user.MoveToDepartment(uuid.Nil))
	})

	t.Run("validates email", func(t *testing.T) {
		user := newUser(t)
		require.NoError(t, user.SetEmail("jane@example.com"))
		assert.Equal(t, "jane@example.com", user.Email)

		require.Error(t, user.SetEmail("not-an-email"))
	})

	t.Run("records login", func(t *testing.T) {
		user := newUser(t)
		at := time.Now()
		user.RecordLogin(at)
		require.NotNil(t, user.LastLoginAt)
		assert.Equal(t, at, *user.LastLoginAt)
	})

	t.Run("deactivate then activate", func(t *testing.T) {
		user := newUser(t)
		require.NoError(t, user.Deactivate())
		assert.False(t, user.IsActive())
		require.Error(t, user.Deactivate())

		require.NoError(t, user.Activate())
		assert.True(t, user.IsActive())
		require.Error(t, user.Activate())
	})
}

func TestRole(t *testing.T) {
	t.Run("parses known roles", func(t *testing.T) {
		for _, s := range []string{"employee", "manager", "admin"} {
			role, err := ParseRole(s)
			require.NoError(t, err)
			assert.True(t, role.IsValid())
		}
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		_, err := ParseRole("intern")
		require.Error(t, err)
		assert.False(t, Role("intern").IsValid())
	})

	t.Run("permission matrix", func(t *testing.T) {
		assert.False(t, RoleEmployee.HasOrgWideRead())
		assert.False(t, RoleManager.HasOrgWideRead())
		assert.True(t, RoleAdmin.HasOrgWideRead())

		assert.False(t, RoleEmployee.CanVerifyScores())
		assert.True(t, RoleManager.CanVerifyScores())
		assert.True(t, RoleAdmin.CanVerifyScores())

		assert.False(t, RoleEmployee.CanManageIndicators())
		assert.False(t, RoleManager.CanManageIndicators())
		assert.True(t, RoleAdmin.CanManageIndicators())
	})
}
