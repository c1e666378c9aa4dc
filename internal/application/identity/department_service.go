package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/domain/shared"
)

// DepartmentService handles department management. All writes are admin-only.
type DepartmentService struct {
	deptRepo identity.DepartmentRepository
}

// NewDepartmentService creates a new DepartmentService
func NewDepartmentService(deptRepo identity.DepartmentRepository) *DepartmentService {
	return &DepartmentService{deptRepo: deptRepo}
}

// Create creates a new department
func (s *DepartmentService) Create(ctx context.Context, actorRole identity.Role, req CreateDepartmentRequest) (*DepartmentResponse, error) {
	if !actorRole.CanManageOrg() {
		return nil, shared.ErrForbidden
	}

	exists, err := s.deptRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Department with this code already exists")
	}

	dept, err := identity.NewDepartment(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := dept.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}

	if err := s.deptRepo.Create(ctx, dept); err != nil {
		return nil, err
	}

	resp := ToDepartmentResponse(dept)
	return &resp, nil
}

// Update updates a department's name and description
func (s *DepartmentService) Update(ctx context.Context, actorRole identity.Role, id uuid.UUID, req UpdateDepartmentRequest) (*DepartmentResponse, error) {
	if !actorRole.CanManageOrg() {
		return nil, shared.ErrForbidden
	}

	dept, err := s.deptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := dept.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.deptRepo.Update(ctx, dept); err != nil {
		return nil, err
	}

	resp := ToDepartmentResponse(dept)
	return &resp, nil
}

// Activate re-enables a department
func (s *DepartmentService) Activate(ctx context.Context, actorRole identity.Role, id uuid.UUID) (*DepartmentResponse, error) {
	return s.setStatus(ctx, actorRole, id, func(d *identity.Department) error { return d.Activate() })
}

// Deactivate disables a department
func (s *DepartmentService) Deactivate(ctx context.Context, actorRole identity.Role, id uuid.UUID) (*DepartmentResponse, error) {
	return s.setStatus(ctx, actorRole, id, func(d *identity.Department) error { return d.Deactivate() })
}

// GetByID returns a single department
func (s *DepartmentService) GetByID(ctx context.Context, id uuid.UUID) (*DepartmentResponse, error) {
	dept, err := s.deptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToDepartmentResponse(dept)
	return &resp, nil
}

// List returns all departments
func (s *DepartmentService) List(ctx context.Context) ([]DepartmentResponse, error) {
	depts, err := s.deptRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]DepartmentResponse, 0, len(depts))
	for _, dept := range depts {
		resp = append(resp, ToDepartmentResponse(dept))
	}
	return resp, nil
}

func (s *DepartmentService) setStatus(ctx context.Context, actorRole identity.Role, id uuid.UUID, change func(*identity.Department) error) (*DepartmentResponse, error) {
	if !actorRole.CanManageOrg() {
		return nil, shared.ErrForbidden
	}

	dept, err := s.deptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := change(dept); err != nil {
		return nil, err
	}
	if err := s.deptRepo.Update(ctx, dept); err != nil {
		return nil, err
	}

	resp := ToDepartmentResponse(dept)
	return &resp, nil
}
