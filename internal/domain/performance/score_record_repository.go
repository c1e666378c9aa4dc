package performance

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ScoreFilter narrows score record queries
type ScoreFilter struct {
	SubjectID   *uuid.UUID
	IndicatorID *uuid.UUID
	Month       *int
	Year        *int
	Verified    *bool
}

// ScoreRecordRepository defines the interface for score record persistence
type ScoreRecordRepository interface {
	// Create saves a new score record. Returns ErrDuplicatePeriod when a
	// record already exists for the same (subject, indicator, period); the
	// store enforces this atomically via a unique index.
	Create(ctx context.Context, rec *ScoreRecord) error

	// Update updates an existing score record
	Update(ctx context.Context, rec *ScoreRecord) error

	// FindByID finds a score record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ScoreRecord, error)

	// List finds score records matching the filter, newest first, paginated
	List(ctx context.Context, filter ScoreFilter, page, pageSize int) ([]*ScoreRecord, int64, error)

	// FindForSubjects finds all score records belonging to the given
	// subjects, optionally narrowed by filter. Used by analytics aggregation.
	FindForSubjects(ctx context.Context, subjectIDs []uuid.UUID, filter ScoreFilter) ([]*ScoreRecord, error)

	// MarkVerified atomically flips verified from false to true for the
	// given record. Returns ErrAlreadyVerified when the record was verified
	// by the time the update ran, or shared.ErrNotFound when it does not
	// exist.
	MarkVerified(ctx context.Context, id, verifier uuid.UUID, at time.Time) error
}
