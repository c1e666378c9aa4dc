package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/domain/shared"
	"github.com/perfhub/backend/internal/infrastructure/persistence/models"
)

// GormDepartmentRepository implements identity.DepartmentRepository using GORM
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewGormDepartmentRepository creates a new GormDepartmentRepository
func NewGormDepartmentRepository(db *gorm.DB) *GormDepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

// Create saves a new department
func (r *GormDepartmentRepository) Create(ctx context.Context, dept *identity.Department) error {
	model := models.DepartmentModelFromDomain(dept)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update updates an existing department
func (r *GormDepartmentRepository) Update(ctx context.Context, dept *identity.Department) error {
	model := models.DepartmentModelFromDomain(dept)
	result := r.db.WithContext(ctx).Model(&models.DepartmentModel{}).
		Where("id = ?", dept.ID).
		Select("*").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a department by ID
func (r *GormDepartmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Department, error) {
	var model models.DepartmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a department by code
func (r *GormDepartmentRepository) FindByCode(ctx context.Context, code string) (*identity.Department, error) {
	var model models.DepartmentModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all departments ordered by name
func (r *GormDepartmentRepository) FindAll(ctx context.Context) ([]*identity.Department, error) {
	var deptModels []models.DepartmentModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&deptModels).Error; err != nil {
		return nil, err
	}

	depts := make([]*identity.Department, 0, len(deptModels))
	for i := range deptModels {
		depts = append(depts, deptModels[i].ToDomain())
	}
	return depts, nil
}

// ExistsByCode checks if a department code exists
func (r *GormDepartmentRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DepartmentModel{}).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormDepartmentRepository implements identity.DepartmentRepository
var _ identity.DepartmentRepository = (*GormDepartmentRepository)(nil)
