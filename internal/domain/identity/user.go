package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/perfhub/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User is a subject whose performance is measured. Every user has exactly one
// role and one department; the role selects which indicators apply, the
// department selects the team used by analytics aggregation.
type User struct {
	shared.BaseAggregateRoot
	Username     string
	PasswordHash string
	DisplayName  string
	Email        string
	Role         Role
	DepartmentID uuid.UUID
	Status       UserStatus
	LastLoginAt  *time.Time
}

// NewUser creates a new user with required fields
func NewUser(username, displayName string, role Role, departmentID uuid.UUID) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role: "+string(role))
	}
	if departmentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DEPARTMENT", "User must belong to a department")
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = username
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          strings.ToLower(strings.TrimSpace(username)),
		DisplayName:       displayName,
		Role:              role,
		DepartmentID:      departmentID,
		Status:            UserStatusActive,
	}

	user.AddDomainEvent(NewUserCreatedEvent(user))

	return user, nil
}

// SetPassword hashes and stores the given plaintext password
func (u *User) SetPassword(plaintext string) error {
	if len(plaintext) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) == nil
}

// SetEmail sets the user's email address
func (u *User) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email != "" && !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email address format")
	}

	u.Email = email
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// ChangeRole changes the user's role
func (u *User) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role: "+string(role))
	}

	u.Role = role
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// MoveToDepartment moves the user to another department
func (u *User) MoveToDepartment(departmentID uuid.UUID) error {
	if departmentID == uuid.Nil {
		return shared.NewDomainError("INVALID_DEPARTMENT", "User must belong to a department")
	}

	u.DepartmentID = departmentID
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// RecordLogin records a successful login
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = time.Now()
}

// Activate activates the user account
func (u *User) Activate() error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}

	u.Status = UserStatusActive
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// Deactivate deactivates the user account
func (u *User) Deactivate() error {
	if u.Status == UserStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "User is already inactive")
	}

	u.Status = UserStatusInactive
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// IsActive returns true if the user account is active
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

var (
	usernameRegex = regexp.MustCompile(`^[a-z][a-z0-9._-]*$`)
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

func validateUsername(username string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	if len(username) < 3 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be at least 3 characters")
	}
	if len(username) > 100 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 100 characters")
	}
	if !usernameRegex.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME", "Username must start with a letter and contain only lowercase letters, numbers, dots, underscores, and hyphens")
	}
	return nil
}
