package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/domain/shared"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Username     string              `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash string              `gorm:"type:varchar(255);not null"`
	DisplayName  string              `gorm:"type:varchar(200);not null"`
	Email        string              `gorm:"type:varchar(200)"`
	Role         identity.Role       `gorm:"type:varchar(20);not null;index"`
	DepartmentID uuid.UUID           `gorm:"type:uuid;not null;index"`
	Status       identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version:   m.Version,
			CreatedBy: m.CreatedBy,
		},
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		DisplayName:  m.DisplayName,
		Email:        m.Email,
		Role:         m.Role,
		DepartmentID: m.DepartmentID,
		Status:       m.Status,
		LastLoginAt:  m.LastLoginAt,
	}
	return user
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Username = u.Username
	m.PasswordHash = u.PasswordHash
	m.DisplayName = u.DisplayName
	m.Email = u.Email
	m.Role = u.Role
	m.DepartmentID = u.DepartmentID
	m.Status = u.Status
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// DepartmentModel is the persistence model for the Department domain entity.
type DepartmentModel struct {
	AggregateModel
	Code        string                    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string                    `gorm:"type:varchar(200);not null"`
	Description string                    `gorm:"type:text"`
	Status      identity.DepartmentStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (DepartmentModel) TableName() string {
	return "departments"
}

// ToDomain converts the persistence model to a domain Department entity.
func (m *DepartmentModel) ToDomain() *identity.Department {
	return &identity.Department{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version:   m.Version,
			CreatedBy: m.CreatedBy,
		},
		Code:        m.Code,
		Name:        m.Name,
		Description: m.Description,
		Status:      m.Status,
	}
}

// FromDomain populates the persistence model from a domain Department entity.
func (m *DepartmentModel) FromDomain(d *identity.Department) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.Code = d.Code
	m.Name = d.Name
	m.Description = d.Description
	m.Status = d.Status
}

// DepartmentModelFromDomain creates a new persistence model from a domain Department entity.
func DepartmentModelFromDomain(d *identity.Department) *DepartmentModel {
	m := &DepartmentModel{}
	m.FromDomain(d)
	return m
}
