package identity

import "github.com/perfhub/backend/internal/domain/shared"

// Event types for identity aggregates
const (
	EventTypeUserCreated       = "identity.user.created"
	EventTypeDepartmentCreated = "identity.department.created"
)

// UserCreatedEvent is published when a user is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Username     string `json:"username"`
	Role         Role   `json:"role"`
	DepartmentID string `json:"department_id"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, "User", user.ID),
		Username:        user.Username,
		Role:            user.Role,
		DepartmentID:    user.DepartmentID.String(),
	}
}

// DepartmentCreatedEvent is published when a department is created
type DepartmentCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewDepartmentCreatedEvent creates a new DepartmentCreatedEvent
func NewDepartmentCreatedEvent(dept *Department) *DepartmentCreatedEvent {
	return &DepartmentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDepartmentCreated, "Department", dept.ID),
		Code:            dept.Code,
		Name:            dept.Name,
	}
}
