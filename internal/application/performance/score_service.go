package performance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/domain/performance"
	"github.com/perfhub/backend/internal/domain/shared"
)

// ScoreService handles score submission, correction, and verification.
type ScoreService struct {
	scores     performance.ScoreRecordRepository
	indicators performance.IndicatorRepository
	users      identity.UserRepository
	visibility *VisibilityResolver
	notifier   Notifier
	logger     *zap.Logger
}

// NewScoreService creates a new ScoreService
func NewScoreService(
	scores performance.ScoreRecordRepository,
	indicators performance.IndicatorRepository,
	users identity.UserRepository,
	visibility *VisibilityResolver,
	notifier Notifier,
	logger *zap.Logger,
) *ScoreService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScoreService{
		scores:     scores,
		indicators: indicators,
		users:      users,
		visibility: visibility,
		notifier:   notifier,
		logger:     logger,
	}
}

// Submit records a measurement for a subject against an indicator for one
// period. The indicator must be active and defined for the subject's role,
// and at most one record may exist per (subject, indicator, period).
func (s *ScoreService) Submit(ctx context.Context, actor Actor, req SubmitScoreRequest) (*ScoreRecordResponse, error) {
	if err := s.visibility.RequireView(ctx, actor, req.SubjectID); err != nil {
		return nil, err
	}

	subject, err := s.users.FindByID(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}
	if !subject.IsActive() {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Cannot submit scores for an inactive user")
	}

	ind, err := s.indicators.FindByID(ctx, req.IndicatorID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, performance.ErrIndicatorNotFound
		}
		return nil, err
	}
	if !ind.Active {
		return nil, performance.ErrIndicatorNotFound
	}
	if !ind.AppliesTo(subject.Role) {
		return nil, performance.ErrRoleMismatch
	}

	period, err := performance.NewPeriod(req.Month, req.Year)
	if err != nil {
		return nil, err
	}

	rec, err := performance.NewScoreRecord(subject.ID, ind, req.Value, period)
	if err != nil {
		return nil, err
	}
	rec.SetCreatedBy(actor.ID)

	// The unique index on (subject, indicator, period) is the authoritative
	// duplicate guard; Create surfaces it as ErrDuplicatePeriod.
	if err := s.scores.Create(ctx, rec); err != nil {
		return nil, err
	}

	_ = s.notifier.Notify(ctx, ScoreSubmittedNotification{
		RecordID:      rec.ID,
		SubjectID:     rec.SubjectID,
		IndicatorID:   rec.IndicatorID,
		IndicatorName: ind.Name,
		Period:        rec.Period,
		SubmittedBy:   actor.ID,
	})

	resp := ToScoreRecordResponse(rec)
	return &resp, nil
}

// UpdateValue corrects the measured value of an unverified record. The final
// score is recomputed from the record's frozen weight and target snapshots.
func (s *ScoreService) UpdateValue(ctx context.Context, actor Actor, id uuid.UUID, req UpdateScoreRequest) (*ScoreRecordResponse, error) {
	rec, err := s.scores.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.visibility.RequireView(ctx, actor, rec.SubjectID); err != nil {
		return nil, err
	}

	if err := rec.UpdateValue(req.Value); err != nil {
		return nil, err
	}
	if err := s.scores.Update(ctx, rec); err != nil {
		return nil, err
	}

	resp := ToScoreRecordResponse(rec)
	return &resp, nil
}

// Verify marks a record as verified, freezing it against further edits.
// Verification is a one-way, one-time transition enforced atomically by the
// store, so two concurrent verifiers cannot both succeed.
func (s *ScoreService) Verify(ctx context.Context, actor Actor, id uuid.UUID) (*ScoreRecordResponse, error) {
	if !actor.Role.CanVerifyScores() {
		return nil, shared.ErrForbidden
	}

	rec, err := s.scores.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.visibility.RequireView(ctx, actor, rec.SubjectID); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.scores.MarkVerified(ctx, id, actor.ID, now); err != nil {
		return nil, err
	}

	rec, err = s.scores.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var indicatorName string
	if ind, err := s.indicators.FindByID(ctx, rec.IndicatorID); err == nil {
		indicatorName = ind.Name
	} else {
		// Notification still goes out, just without the display name.
		s.logger.Warn("Failed to resolve indicator name for verification notification",
			zap.String("record_id", rec.ID.String()),
			zap.String("indicator_id", rec.IndicatorID.String()),
			zap.Error(err),
		)
	}

	_ = s.notifier.Notify(ctx, ScoreVerifiedNotification{
		RecordID:      rec.ID,
		SubjectID:     rec.SubjectID,
		IndicatorID:   rec.IndicatorID,
		IndicatorName: indicatorName,
		Period:        rec.Period,
		VerifiedBy:    actor.ID,
	})

	resp := ToScoreRecordResponse(rec)
	return &resp, nil
}

// GetByID returns a single score record the actor may see
func (s *ScoreService) GetByID(ctx context.Context, actor Actor, id uuid.UUID) (*ScoreRecordResponse, error) {
	rec, err := s.scores.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.visibility.RequireView(ctx, actor, rec.SubjectID); err != nil {
		return nil, err
	}

	resp := ToScoreRecordResponse(rec)
	return &resp, nil
}

// List returns score records matching the filter, restricted to what the
// actor may see. Without an explicit subject filter, employees are narrowed
// to themselves; managers and admins get the unfiltered view their role
// allows, enforced per record by the repository filter.
func (s *ScoreService) List(ctx context.Context, actor Actor, filter ScoreListFilter) ([]ScoreRecordResponse, int64, error) {
	if filter.SubjectID != nil {
		if err := s.visibility.RequireView(ctx, actor, *filter.SubjectID); err != nil {
			return nil, 0, err
		}
	} else if !actor.Role.HasOrgWideRead() && actor.Role != identity.RoleManager {
		filter.SubjectID = &actor.ID
	}

	domainFilter := performance.ScoreFilter{
		SubjectID:   filter.SubjectID,
		IndicatorID: filter.IndicatorID,
		Month:       filter.Month,
		Year:        filter.Year,
		Verified:    filter.Verified,
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var recs []*performance.ScoreRecord
	var total int64
	var err error

	if filter.SubjectID == nil && actor.Role == identity.RoleManager {
		// Managers without an explicit subject see their whole department.
		subjectIDs, err := s.users.FindIDsByDepartment(ctx, actor.DepartmentID)
		if err != nil {
			return nil, 0, err
		}
		all, err := s.scores.FindForSubjects(ctx, subjectIDs, domainFilter)
		if err != nil {
			return nil, 0, err
		}
		total = int64(len(all))
		recs = paginate(all, page, pageSize)
	} else {
		recs, total, err = s.scores.List(ctx, domainFilter, page, pageSize)
		if err != nil {
			return nil, 0, err
		}
	}

	resp := make([]ScoreRecordResponse, 0, len(recs))
	for _, rec := range recs {
		resp = append(resp, ToScoreRecordResponse(rec))
	}
	return resp, total, nil
}

func paginate(recs []*performance.ScoreRecord, page, pageSize int) []*performance.ScoreRecord {
	start := (page - 1) * pageSize
	if start >= len(recs) {
		return nil
	}
	end := start + pageSize
	if end > len(recs) {
		end = len(recs)
	}
	return recs[start:end]
}
