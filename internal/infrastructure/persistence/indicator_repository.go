package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/domain/performance"
	"github.com/perfhub/backend/internal/domain/shared"
	"github.com/perfhub/backend/internal/infrastructure/persistence/models"
)

// GormIndicatorRepository implements performance.IndicatorRepository using GORM
type GormIndicatorRepository struct {
	db *gorm.DB
}

// NewGormIndicatorRepository creates a new GormIndicatorRepository
func NewGormIndicatorRepository(db *gorm.DB) *GormIndicatorRepository {
	return &GormIndicatorRepository{db: db}
}

// Create saves a new indicator
func (r *GormIndicatorRepository) Create(ctx context.Context, ind *performance.Indicator) error {
	model := models.IndicatorModelFromDomain(ind)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing indicator
func (r *GormIndicatorRepository) Update(ctx context.Context, ind *performance.Indicator) error {
	model := models.IndicatorModelFromDomain(ind)
	result := r.db.WithContext(ctx).Model(&models.IndicatorModel{}).
		Where("id = ?", ind.ID).
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

// FindByID finds an indicator by ID
func (r *GormIndicatorRepository) FindByID(ctx context.Context, id uuid.UUID) (*performance.Indicator, error) {
	var model models.IndicatorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds indicators by multiple IDs
func (r *GormIndicatorRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*performance.Indicator, error) {
	if len(ids) == 0 {
		return []*performance.Indicator{}, nil
	}

	var indModels []models.IndicatorModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&indModels).Error; err != nil {
		return nil, err
	}
	return toDomainIndicators(indModels), nil
}

// FindAll finds indicators, optionally filtered by role
func (r *GormIndicatorRepository) FindAll(ctx context.Context, role *identity.Role, includeInactive bool) ([]*performance.Indicator, error) {
	query := r.db.WithContext(ctx).Model(&models.IndicatorModel{})
	if role != nil {
		query = query.Where("role = ?", *role)
	}
	if !includeInactive {
		query = query.Where("active = ?", true)
	}

	var indModels []models.IndicatorModel
	if err := query.Order("role ASC, name ASC").Find(&indModels).Error; err != nil {
		return nil, err
	}
	return toDomainIndicators(indModels), nil
}

// FindActiveByRole finds all active indicators for a role
func (r *GormIndicatorRepository) FindActiveByRole(ctx context.Context, role identity.Role) ([]*performance.Indicator, error) {
	var indModels []models.IndicatorModel
	if err := r.db.WithContext(ctx).
		Where("role = ? AND active = ?", role, true).
		Order("name ASC").
		Find(&indModels).Error; err != nil {
		return nil, err
	}
	return toDomainIndicators(indModels), nil
}

// SumActiveWeightByRole sums the weights of a role's active indicators,
// excluding excludeID when non-nil
func (r *GormIndicatorRepository) SumActiveWeightByRole(ctx context.Context, role identity.Role, excludeID *uuid.UUID) (int, error) {
	query := r.db.WithContext(ctx).
		Model(&models.IndicatorModel{}).
		Where("role = ? AND active = ?", role, true)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var total *int
	if err := query.Select("SUM(weight)").Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		// SUM over zero rows is NULL
		return 0, nil
	}
	return *total, nil
}

func toDomainIndicators(indModels []models.IndicatorModel) []*performance.Indicator {
	indicators := make([]*performance.Indicator, 0, len(indModels))
	for i := range indModels {
		indicators = append(indicators, indModels[i].ToDomain())
	}
	return indicators
}

// Ensure GormIndicatorRepository implements performance.IndicatorRepository
var _ performance.IndicatorRepository = (*GormIndicatorRepository)(nil)
