package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/domain/shared"
)

// UserService handles user management. All writes are admin-only.
type UserService struct {
	userRepo identity.UserRepository
	deptRepo identity.DepartmentRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, deptRepo identity.DepartmentRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		deptRepo: deptRepo,
	}
}

// Create creates a new user account
func (s *UserService) Create(ctx context.Context, actorRole identity.Role, req CreateUserRequest) (*UserResponse, error) {
	if !actorRole.CanManageOrg() {
		return nil, shared.ErrForbidden
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	role, err := identity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	dept, err := s.deptRepo.FindByID(ctx, req.DepartmentID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_DEPARTMENT", "Department not found")
		}
		return nil, err
	}
	if !dept.IsActive() {
		return nil, shared.NewDomainError("INVALID_DEPARTMENT", "Department is inactive")
	}

	user, err := identity.NewUser(req.Username, req.DisplayName, role, dept.ID)
	if err != nil {
		return nil, err
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	if req.Email != "" {
		if err := user.SetEmail(req.Email); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Update changes a user's profile, role, or department
func (s *UserService) Update(ctx context.Context, actorRole identity.Role, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	if !actorRole.CanManageOrg() {
		return nil, shared.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Email != nil {
		if err := user.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.Role != nil {
		role, err := identity.ParseRole(*req.Role)
		if err != nil {
			return nil, err
		}
		if err := user.ChangeRole(role); err != nil {
			return nil, err
		}
	}
	if req.DepartmentID != nil {
		dept, err := s.deptRepo.FindByID(ctx, *req.DepartmentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_DEPARTMENT", "Department not found")
			}
			return nil, err
		}
		if err := user.MoveToDepartment(dept.ID); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Activate re-enables a user account
func (s *UserService) Activate(ctx context.Context, actorRole identity.Role, id uuid.UUID) (*UserResponse, error) {
	return s.setStatus(ctx, actorRole, id, func(u *identity.User) error { return u.Activate() })
}

// Deactivate disables a user account. Their historical score records remain.
func (s *UserService) Deactivate(ctx context.Context, actorRole identity.Role, id uuid.UUID) (*UserResponse, error) {
	return s.setStatus(ctx, actorRole, id, func(u *identity.User) error { return u.Deactivate() })
}

// GetByID returns a single user
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// List returns users, newest first, paginated
func (s *UserService) List(ctx context.Context, filter UserListFilter) ([]UserResponse, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	users, total, err := s.userRepo.FindAll(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, ToUserResponse(user))
	}
	return resp, total, nil
}

func (s *UserService) setStatus(ctx context.Context, actorRole identity.Role, id uuid.UUID, change func(*identity.User) error) (*UserResponse, error) {
	if !actorRole.CanManageOrg() {
		return nil, shared.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := change(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}
