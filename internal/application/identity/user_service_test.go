package identity

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

func newTestDepartment(t *testing.T) *identity.Department {
	t.Helper()
	dept, err := identity.NewDepartment("ENG", "Engineering")
	require.NoError(t, err)
	dept.ClearDomainEvents()
	return dept
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	req := CreateUserRequest{
		Username:    "jane.doe",
		Password:    "correct-horse",
		DisplayName: "Jane Doe",
		Role:        "employee",
	}

	t.Run("creates a user in an active department", func(t *testing.T) {
		dept := newTestDepartment(t)
		req := req
		req.DepartmentID = dept.ID

		userRepo := new(MockUserRepository)
		deptRepo := new(MockDepartmentRepository)
		userRepo.On("ExistsByUsername", ctx, "jane.doe").Return(false, nil)
		deptRepo.On("FindByID", ctx, dept.ID).Return(dept, nil)
		userRepo.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		svc := NewUserService(userRepo, deptRepo)
		resp, err := svc.Create(ctx, identity.RoleAdmin, req)
		require.NoError(t, err)

		assert.Equal(t, "jane.doe", resp.Username)
		assert.Equal(t, "employee", resp.Role)
		assert.Equal(t, dept.ID, resp.DepartmentID)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		deptRepo := new(MockDepartmentRepository)
		userRepo.On("ExistsByUsername", ctx, "jane.doe").Return(true, nil)

		svc := NewUserService(userRepo, deptRepo)
		_, err := svc.Create(ctx, identity.RoleAdmin, req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already taken")
	})

	t.Run("rejects inactive department", func(t *testing.T) {
		dept := newTestDepartment(t)
		require.NoError(t, dept.Deactivate())
		req := req
		req.DepartmentID = dept.ID

		userRepo := new(MockUserRepository)
		deptRepo := new(MockDepartmentRepository)
		userRepo.On("ExistsByUsername", ctx, "jane.doe").Return(false, nil)
		deptRepo.On("FindByID", ctx, dept.ID).Return(dept, nil)

		svc := NewUserService(userRepo, deptRepo)
		_, err := svc.Create(ctx, identity.RoleAdmin, req)
		require.Error(t, err)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("only admins create users", func(t *testing.T) {
		svc := NewUserService(new(MockUserRepository), new(MockDepartmentRepository))

		for _, role := range []identity.Role{identity.RoleEmployee, identity.RoleManager} {
			_, err := svc.Create(ctx, role, req)
			assert.ErrorIs(t, err, shared.ErrForbidden)
		}
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("changes role and department", func(t *testing.T) {
		dept := newTestDepartment(t)
		user, err := identity.NewUser("jane.doe", "Jane", identity.RoleEmployee, uuid.New())
		require.NoError(t, err)

		userRepo := new(MockUserRepository)
		deptRepo := new(MockDepartmentRepository)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		deptRepo.On("FindByID", ctx, dept.ID).Return(dept, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		newRole := "manager"
		svc := NewUserService(userRepo, deptRepo)
		resp, err := svc.Update(ctx, identity.RoleAdmin, user.ID, UpdateUserRequest{
			Role:         &newRole,
			DepartmentID: &dept.ID,
		})
		require.NoError(t, err)

		assert.Equal(t, "manager", resp.Role)
		assert.Equal(t, dept.ID, resp.DepartmentID)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		user, err := identity.NewUser("jane.doe", "Jane", identity.RoleEmployee, uuid.New())
		require.NoError(t, err)

		userRepo := new(MockUserRepository)
		deptRepo := new(MockDepartmentRepository)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		badRole := "intern"
		svc := NewUserService(userRepo, deptRepo)
		_, err = svc.Update(ctx, identity.RoleAdmin, user.ID, UpdateUserRequest{Role: &badRole})
		require.Error(t, err)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestUserService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	user, err := identity.NewUser("jane.doe", "Jane", identity.RoleEmployee, uuid.New())
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	deptRepo := new(MockDepartmentRepository)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Update", ctx, user).Return(nil)

	svc := NewUserService(userRepo, deptRepo)

	resp, err := svc.Deactivate(ctx, identity.RoleAdmin, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "inactive", resp.Status)

	resp, err = svc.Activate(ctx, identity.RoleAdmin, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)

	_, err = svc.Deactivate(ctx, identity.RoleManager, user.ID)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestDepartmentService(t *testing.T) {
	ctx := context.Background()

	t.Run("creates department with unique code", func(t *testing.T) {
		deptRepo := new(MockDepartmentRepository)
		deptRepo.On("ExistsByCode", ctx, "SALES").Return(false, nil)
		deptRepo.On("Create", ctx, mock.AnythingOfType("*identity.Department")).Return(nil)

		svc := NewDepartmentService(deptRepo)
		resp, err := svc.Create(ctx, identity.RoleAdmin, CreateDepartmentRequest{
			Code: "SALES",
			Name: "Sales Team",
		})
		require.NoError(t, err)
		assert.Equal(t, "SALES", resp.Code)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		deptRepo := new(MockDepartmentRepository)
		deptRepo.On("ExistsByCode", ctx, "SALES").Return(true, nil)

		svc := NewDepartmentService(deptRepo)
		_, err := svc.Create(ctx, identity.RoleAdmin, CreateDepartmentRequest{
			Code: "SALES",
			Name: "Sales Team",
		})
		require.Error(t, err)
		deptRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("non-admins cannot manage departments", func(t *testing.T) {
		svc := NewDepartmentService(new(MockDepartmentRepository))

		_, err := svc.Create(ctx, identity.RoleManager, CreateDepartmentRequest{Code: "OPS", Name: "Ops"})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}
