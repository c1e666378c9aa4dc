package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/infrastructure/auth"
)

// LoginInput contains login credentials
type LoginInput struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginResult contains tokens and user info after successful login
type LoginResult struct {
	Tokens *auth.TokenPair `json:"tokens"`
	User   UserResponse    `json:"user"`
}

// RefreshTokenInput contains the refresh token
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutInput identifies the access token being revoked
type LogoutInput struct {
	AccessToken string `json:"-"`
}

// ChangePasswordInput contains old and new passwords
type ChangePasswordInput struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// CreateUserRequest represents a request to create a user
type CreateUserRequest struct {
	Username     string    `json:"username" binding:"required,min=3,max=100"`
	Password     string    `json:"password" binding:"required,min=8,max=128"`
	DisplayName  string    `json:"display_name" binding:"max=200"`
	Email        string    `json:"email" binding:"omitempty,email"`
	Role         string    `json:"role" binding:"required,oneof=employee manager admin"`
	DepartmentID uuid.UUID `json:"department_id" binding:"required"`
}

// UpdateUserRequest represents a request to update a user
type UpdateUserRequest struct {
	DisplayName  *string    `json:"display_name" binding:"omitempty,max=200"`
	Email        *string    `json:"email" binding:"omitempty,email"`
	Role         *string    `json:"role" binding:"omitempty,oneof=employee manager admin"`
	DepartmentID *uuid.UUID `json:"department_id"`
}

// UserListFilter represents filter options for the user list
type UserListFilter struct {
	Page     int `form:"page" binding:"min=1"`
	PageSize int `form:"page_size" binding:"min=1,max=100"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	DisplayName  string     `json:"display_name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	DepartmentID uuid.UUID  `json:"department_id"`
	Status       string     `json:"status"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CreateDepartmentRequest represents a request to create a department
type CreateDepartmentRequest struct {
	Code        string `json:"code" binding:"required,min=2,max=50"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateDepartmentRequest represents a request to update a department
type UpdateDepartmentRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

// DepartmentResponse represents a department in API responses
type DepartmentResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		DisplayName:  u.DisplayName,
		Email:        u.Email,
		Role:         string(u.Role),
		DepartmentID: u.DepartmentID,
		Status:       string(u.Status),
		LastLoginAt:  u.LastLoginAt,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// ToDepartmentResponse converts a domain Department to DepartmentResponse
func ToDepartmentResponse(d *identity.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          d.ID,
		Code:        d.Code,
		Name:        d.Name,
		Description: d.Description,
		Status:      string(d.Status),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
