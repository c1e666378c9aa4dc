package performance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/perfhub/backend/internal/domain/shared"
)

// ScoreRecord is one subject's measurement against one indicator for one
// period. FinalScore is derived via ComputeFinalScore and recomputed on every
// value change until the record is verified; verification freezes it.
// At most one record exists per (subject, indicator, period) — enforced by a
// unique index in the store, not by this type.
type ScoreRecord struct {
	shared.BaseAggregateRoot
	SubjectID      uuid.UUID
	IndicatorID    uuid.UUID
	Value          decimal.Decimal
	TargetSnapshot decimal.Decimal
	WeightSnapshot int
	Kind           IndicatorKind // carried as metadata for breakdowns
	Period         Period
	FinalScore     decimal.Decimal
	Verified       bool
	VerifiedBy     *uuid.UUID
	VerifiedAt     *time.Time
}

// NewScoreRecord creates a score record for a submission against the given
// indicator, snapshotting the indicator's target and weight and computing the
// final score.
func NewScoreRecord(subjectID uuid.UUID, indicator *Indicator, value decimal.Decimal, period Period) (*ScoreRecord, error) {
	if subjectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Score record requires a subject")
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}
	if value.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VALUE", "Score value cannot be negative")
	}

	final, err := ComputeFinalScore(value, indicator.Target, indicator.Weight)
	if err != nil {
		return nil, err
	}

	rec := &ScoreRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SubjectID:         subjectID,
		IndicatorID:       indicator.ID,
		Value:             value,
		TargetSnapshot:    indicator.Target,
		WeightSnapshot:    indicator.Weight,
		Kind:              indicator.Kind,
		Period:            period,
		FinalScore:        final,
	}

	rec.AddDomainEvent(NewScoreSubmittedEvent(rec))

	return rec, nil
}

// UpdateValue corrects the raw value and recomputes the final score.
// Verified records are immutable; corrections must go through an explicit
// un-verify workflow that this system does not offer.
func (r *ScoreRecord) UpdateValue(value decimal.Decimal) error {
	if r.Verified {
		return shared.NewDomainError("INVALID_STATE", "Cannot change the value of a verified score record")
	}
	if value.IsNegative() {
		return shared.NewDomainError("INVALID_VALUE", "Score value cannot be negative")
	}

	final, err := ComputeFinalScore(value, r.TargetSnapshot, r.WeightSnapshot)
	if err != nil {
		return err
	}

	r.Value = value
	r.FinalScore = final
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// Verify marks the record verified by the given user. Verifying an already
// verified record fails with ErrAlreadyVerified and leaves the original
// verification untouched. The repository additionally guards the persisted
// update with a verified=false condition so two racing verifiers cannot both
// succeed.
func (r *ScoreRecord) Verify(verifier uuid.UUID, at time.Time) error {
	if r.Verified {
		return ErrAlreadyVerified
	}
	if verifier == uuid.Nil {
		return shared.NewDomainError("INVALID_VERIFIER", "Verification requires a verifier")
	}

	r.Verified = true
	r.VerifiedBy = &verifier
	r.VerifiedAt = &at
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewScoreVerifiedEvent(r, verifier))

	return nil
}
