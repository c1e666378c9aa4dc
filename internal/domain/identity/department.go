package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/perfhub/backend/internal/domain/shared"
)

// DepartmentStatus represents the status of a department
type DepartmentStatus string

const (
	DepartmentStatusActive   DepartmentStatus = "active"
	DepartmentStatusInactive DepartmentStatus = "inactive"
)

// Department is an organizational unit. Department membership is the team
// partition used by analytics aggregation.
type Department struct {
	shared.BaseAggregateRoot
	Code        string // Unique code (e.g., "SALES", "ENG")
	Name        string // Display name
	Description string // Optional description
	Status      DepartmentStatus
}

// NewDepartment creates a new department with required fields
func NewDepartment(code, name string) (*Department, error) {
	if err := validateDepartmentCode(code); err != nil {
		return nil, err
	}
	if err := validateDepartmentName(name); err != nil {
		return nil, err
	}

	dept := &Department{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(strings.TrimSpace(code)),
		Name:              strings.TrimSpace(name),
		Status:            DepartmentStatusActive,
	}

	dept.AddDomainEvent(NewDepartmentCreatedEvent(dept))

	return dept, nil
}

// Update updates the department's basic information
func (d *Department) Update(name, description string) error {
	if err := validateDepartmentName(name); err != nil {
		return err
	}

	d.Name = strings.TrimSpace(name)
	d.Description = description
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// Activate activates the department
func (d *Department) Activate() error {
	if d.Status == DepartmentStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Department is already active")
	}

	d.Status = DepartmentStatusActive
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// Deactivate deactivates the department
func (d *Department) Deactivate() error {
	if d.Status == DepartmentStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Department is already inactive")
	}

	d.Status = DepartmentStatusInactive
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// IsActive returns true if department is active
func (d *Department) IsActive() bool {
	return d.Status == DepartmentStatusActive
}

func validateDepartmentCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_DEPARTMENT_CODE", "Department code cannot be empty")
	}
	if len(code) < 2 {
		return shared.NewDomainError("INVALID_DEPARTMENT_CODE", "Department code must be at least 2 characters")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_DEPARTMENT_CODE", "Department code cannot exceed 50 characters")
	}

	codeRegex := regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)
	if !codeRegex.MatchString(code) {
		return shared.NewDomainError("INVALID_DEPARTMENT_CODE", "Department code must start with a letter and contain only letters, numbers, underscores, and hyphens")
	}

	return nil
}

func validateDepartmentName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_DEPARTMENT_NAME", "Department name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_DEPARTMENT_NAME", "Department name cannot exceed 200 characters")
	}
	return nil
}
