package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/perfhub/backend/internal/domain/performance"
	"github.com/perfhub/backend/internal/domain/shared"
	"github.com/perfhub/backend/internal/infrastructure/persistence/models"
)

// GormScoreRecordRepository implements performance.ScoreRecordRepository using GORM
type GormScoreRecordRepository struct {
	db *gorm.DB
}

// NewGormScoreRecordRepository creates a new GormScoreRecordRepository
func NewGormScoreRecordRepository(db *gorm.DB) *GormScoreRecordRepository {
	return &GormScoreRecordRepository{db: db}
}

// Create saves a new score record. The unique index over
// (subject_id, indicator_id, period_month, period_year) makes concurrent
// duplicate submissions race-safe: exactly one insert wins, the rest get
// ErrDuplicatePeriod.
func (r *GormScoreRecordRepository) Create(ctx context.Context, rec *performance.ScoreRecord) error {
	model := models.ScoreRecordModelFromDomain(rec)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return performance.ErrDuplicatePeriod
		}
		return err
	}
	return nil
}

// Update persists a corrected score record. The verified = false condition
// makes the write race-safe against concurrent verification: once a record is
// verified its value and final score stay frozen, even when the caller read
// the record before the verifier won.
func (r *GormScoreRecordRepository) Update(ctx context.Context, rec *performance.ScoreRecord) error {
	model := models.ScoreRecordModelFromDomain(rec)
	result := r.db.WithContext(ctx).Model(&models.ScoreRecordModel{}).
		Where("id = ? AND verified = ?", rec.ID, false).
		Select("*").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing record from one already verified
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.ScoreRecordModel{}).
			Where("id = ?", rec.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return performance.ErrAlreadyVerified
	}
	return nil
}

// FindByID finds a score record by ID
func (r *GormScoreRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*performance.ScoreRecord, error) {
	var model models.ScoreRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List finds score records matching the filter, newest first, paginated
func (r *GormScoreRecordRepository) List(ctx context.Context, filter performance.ScoreFilter, page, pageSize int) ([]*performance.ScoreRecord, int64, error) {
	var total int64
	if err := applyScoreFilter(r.db.WithContext(ctx).Model(&models.ScoreRecordModel{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := applyScoreFilter(r.db.WithContext(ctx).Model(&models.ScoreRecordModel{}), filter).
		Order("period_year DESC, period_month DESC, created_at DESC")
	if page > 0 && pageSize > 0 {
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var recModels []models.ScoreRecordModel
	if err := query.Find(&recModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainScoreRecords(recModels), total, nil
}

// FindForSubjects finds all score records belonging to the given subjects
func (r *GormScoreRecordRepository) FindForSubjects(ctx context.Context, subjectIDs []uuid.UUID, filter performance.ScoreFilter) ([]*performance.ScoreRecord, error) {
	if len(subjectIDs) == 0 {
		return []*performance.ScoreRecord{}, nil
	}

	query := applyScoreFilter(
		r.db.WithContext(ctx).Model(&models.ScoreRecordModel{}).
			Where("subject_id IN ?", subjectIDs),
		filter,
	)

	var recModels []models.ScoreRecordModel
	if err := query.Find(&recModels).Error; err != nil {
		return nil, err
	}
	return toDomainScoreRecords(recModels), nil
}

// MarkVerified atomically flips verified from false to true. The
// verified = false condition makes concurrent verification race-safe:
// exactly one verifier wins, the rest get ErrAlreadyVerified.
func (r *GormScoreRecordRepository) MarkVerified(ctx context.Context, id, verifier uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.ScoreRecordModel{}).
		Where("id = ? AND verified = ?", id, false).
		Updates(map[string]interface{}{
			"verified":    true,
			"verified_by": verifier,
			"verified_at": at,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing record from one already verified
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.ScoreRecordModel{}).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return performance.ErrAlreadyVerified
	}
	return nil
}

// applyScoreFilter applies the score filter conditions to the query
func applyScoreFilter(query *gorm.DB, filter performance.ScoreFilter) *gorm.DB {
	if filter.SubjectID != nil {
		query = query.Where("subject_id = ?", *filter.SubjectID)
	}
	if filter.IndicatorID != nil {
		query = query.Where("indicator_id = ?", *filter.IndicatorID)
	}
	if filter.Month != nil {
		query = query.Where("period_month = ?", *filter.Month)
	}
	if filter.Year != nil {
		query = query.Where("period_year = ?", *filter.Year)
	}
	if filter.Verified != nil {
		query = query.Where("verified = ?", *filter.Verified)
	}
	return query
}

func toDomainScoreRecords(recModels []models.ScoreRecordModel) []*performance.ScoreRecord {
	records := make([]*performance.ScoreRecord, 0, len(recModels))
	for i := range recModels {
		records = append(records, recModels[i].ToDomain())
	}
	return records
}

// Ensure GormScoreRecordRepository implements performance.ScoreRecordRepository
var _ performance.ScoreRecordRepository = (*GormScoreRecordRepository)(nil)
