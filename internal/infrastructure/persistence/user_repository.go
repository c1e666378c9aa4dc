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

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create saves a new user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update updates an existing user
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	// Select("*") forces zero-value fields (cleared email, inactive status)
	// to be written as well.
	result := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", user.ID).
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

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("username = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds users by multiple IDs
func (r *GormUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*identity.User, error) {
	if len(ids) == 0 {
		return []*identity.User{}, nil
	}

	var userModels []models.UserModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*identity.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userModels[i].ToDomain())
	}
	return users, nil
}

// FindAll finds all users, newest first, paginated
func (r *GormUserRepository) FindAll(ctx context.Context, page, pageSize int) ([]*identity.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.UserModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Order("created_at DESC")
	if page > 0 && pageSize > 0 {
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var userModels []models.UserModel
	if err := query.Find(&userModels).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*identity.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userModels[i].ToDomain())
	}
	return users, total, nil
}

// FindIDsByDepartment returns the IDs of all active users in a department
func (r *GormUserRepository) FindIDsByDepartment(ctx context.Context, departmentID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("department_id = ? AND status = ?", departmentID, identity.UserStatusActive).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// FindAllIDs returns the IDs of all active users
func (r *GormUserRepository) FindAllIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("status = ?", identity.UserStatusActive).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ExistsByUsername checks if a username is taken
func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("username = ?", strings.ToLower(strings.TrimSpace(username))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormUserRepository implements identity.UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
