package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/domain/performance"
	"github.com/perfhub/backend/internal/domain/shared"
)

// IndicatorModel is the persistence model for the Indicator domain entity.
type IndicatorModel struct {
	AggregateModel
	Name     string                    `gorm:"type:varchar(200);not null"`
	Weight   int                       `gorm:"not null"`
	Kind     performance.IndicatorKind `gorm:"type:varchar(20);not null"`
	Unit     string                    `gorm:"type:varchar(50)"`
	Target   decimal.Decimal           `gorm:"type:decimal(12,4);not null"`
	Role     identity.Role             `gorm:"type:varchar(20);not null;index"`
	Category string                    `gorm:"type:varchar(100)"`
	Active   bool                      `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (IndicatorModel) TableName() string {
	return "indicators"
}

// ToDomain converts the persistence model to a domain Indicator entity.
func (m *IndicatorModel) ToDomain() *performance.Indicator {
	return &performance.Indicator{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version:   m.Version,
			CreatedBy: m.CreatedBy,
		},
		Name:     m.Name,
		Weight:   m.Weight,
		Kind:     m.Kind,
		Unit:     m.Unit,
		Target:   m.Target,
		Role:     m.Role,
		Category: m.Category,
		Active:   m.Active,
	}
}

// FromDomain populates the persistence model from a domain Indicator entity.
func (m *IndicatorModel) FromDomain(i *performance.Indicator) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.Name = i.Name
	m.Weight = i.Weight
	m.Kind = i.Kind
	m.Unit = i.Unit
	m.Target = i.Target
	m.Role = i.Role
	m.Category = i.Category
	m.Active = i.Active
}

// IndicatorModelFromDomain creates a new persistence model from a domain Indicator entity.
func IndicatorModelFromDomain(i *performance.Indicator) *IndicatorModel {
	m := &IndicatorModel{}
	m.FromDomain(i)
	return m
}

// ScoreRecordModel is the persistence model for the ScoreRecord domain entity.
// The composite unique index over (subject, indicator, period) is the
// authoritative guard against duplicate submissions for the same period.
type ScoreRecordModel struct {
	AggregateModel
	SubjectID      uuid.UUID                 `gorm:"type:uuid;not null;index;uniqueIndex:idx_score_subject_indicator_period"`
	IndicatorID    uuid.UUID                 `gorm:"type:uuid;not null;index;uniqueIndex:idx_score_subject_indicator_period"`
	Value          decimal.Decimal           `gorm:"type:decimal(12,4);not null"`
	TargetSnapshot decimal.Decimal           `gorm:"type:decimal(12,4);not null"`
	WeightSnapshot int                       `gorm:"not null"`
	Kind           performance.IndicatorKind `gorm:"type:varchar(20);not null"`
	PeriodMonth    int                       `gorm:"not null;uniqueIndex:idx_score_subject_indicator_period"`
	PeriodYear     int                       `gorm:"not null;uniqueIndex:idx_score_subject_indicator_period"`
	FinalScore     decimal.Decimal           `gorm:"type:decimal(8,4);not null"`
	Verified       bool                      `gorm:"not null;default:false;index"`
	VerifiedBy     *uuid.UUID                `gorm:"type:uuid"`
	VerifiedAt     *time.Time
}

// TableName returns the table name for GORM
func (ScoreRecordModel) TableName() string {
	return "score_records"
}

// ToDomain converts the persistence model to a domain ScoreRecord entity.
func (m *ScoreRecordModel) ToDomain() *performance.ScoreRecord {
	return &performance.ScoreRecord{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version:   m.Version,
			CreatedBy: m.CreatedBy,
		},
		SubjectID:      m.SubjectID,
		IndicatorID:    m.IndicatorID,
		Value:          m.Value,
		TargetSnapshot: m.TargetSnapshot,
		WeightSnapshot: m.WeightSnapshot,
		Kind:           m.Kind,
		Period:         performance.Period{Month: m.PeriodMonth, Year: m.PeriodYear},
		FinalScore:     m.FinalScore,
		Verified:       m.Verified,
		VerifiedBy:     m.VerifiedBy,
		VerifiedAt:     m.VerifiedAt,
	}
}

// FromDomain populates the persistence model from a domain ScoreRecord entity.
func (m *ScoreRecordModel) FromDomain(r *performance.ScoreRecord) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.SubjectID = r.SubjectID
	m.IndicatorID = r.IndicatorID
	m.Value = r.Value
	m.TargetSnapshot = r.TargetSnapshot
	m.WeightSnapshot = r.WeightSnapshot
	m.Kind = r.Kind
	m.PeriodMonth = r.Period.Month
	m.PeriodYear = r.Period.Year
	m.FinalScore = r.FinalScore
	m.Verified = r.Verified
	m.VerifiedBy = r.VerifiedBy
	m.VerifiedAt = r.VerifiedAt
}

// ScoreRecordModelFromDomain creates a new persistence model from a domain ScoreRecord entity.
func ScoreRecordModelFromDomain(r *performance.ScoreRecord) *ScoreRecordModel {
	m := &ScoreRecordModel{}
	m.FromDomain(r)
	return m
}
