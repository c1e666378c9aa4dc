package performance

import (
	"github.com/google/uuid"

	"github.com/perfhub/backend/internal/domain/shared"
)

// Event types for performance aggregates
const (
	EventTypeIndicatorCreated = "performance.indicator.created"
	EventTypeIndicatorUpdated = "performance.indicator.updated"
	EventTypeScoreSubmitted   = "performance.score.submitted"
	EventTypeScoreVerified    = "performance.score.verified"
)

// IndicatorCreatedEvent is published when an indicator is defined
type IndicatorCreatedEvent struct {
	shared.BaseDomainEvent
	Name   string `json:"name"`
	Role   string `json:"role"`
	Weight int    `json:"weight"`
}

// NewIndicatorCreatedEvent creates a new IndicatorCreatedEvent
func NewIndicatorCreatedEvent(ind *Indicator) *IndicatorCreatedEvent {
	return &IndicatorCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeIndicatorCreated, "Indicator", ind.ID),
		Name:            ind.Name,
		Role:            string(ind.Role),
		Weight:          ind.Weight,
	}
}

// IndicatorUpdatedEvent is published when an indicator definition changes
type IndicatorUpdatedEvent struct {
	shared.BaseDomainEvent
	Name   string `json:"name"`
	Role   string `json:"role"`
	Weight int    `json:"weight"`
}

// NewIndicatorUpdatedEvent creates a new IndicatorUpdatedEvent
func NewIndicatorUpdatedEvent(ind *Indicator) *IndicatorUpdatedEvent {
	return &IndicatorUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeIndicatorUpdated, "Indicator", ind.ID),
		Name:            ind.Name,
		Role:            string(ind.Role),
		Weight:          ind.Weight,
	}
}

// ScoreSubmittedEvent is published when a measurement is submitted
type ScoreSubmittedEvent struct {
	shared.BaseDomainEvent
	SubjectID   uuid.UUID `json:"subject_id"`
	IndicatorID uuid.UUID `json:"indicator_id"`
	Period      Period    `json:"period"`
}

// NewScoreSubmittedEvent creates a new ScoreSubmittedEvent
func NewScoreSubmittedEvent(rec *ScoreRecord) *ScoreSubmittedEvent {
	return &ScoreSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeScoreSubmitted, "ScoreRecord", rec.ID),
		SubjectID:       rec.SubjectID,
		IndicatorID:     rec.IndicatorID,
		Period:          rec.Period,
	}
}

// ScoreVerifiedEvent is published when a score record is verified
type ScoreVerifiedEvent struct {
	shared.BaseDomainEvent
	SubjectID   uuid.UUID `json:"subject_id"`
	IndicatorID uuid.UUID `json:"indicator_id"`
	Period      Period    `json:"period"`
	VerifiedBy  uuid.UUID `json:"verified_by"`
}

// NewScoreVerifiedEvent creates a new ScoreVerifiedEvent
func NewScoreVerifiedEvent(rec *ScoreRecord, verifier uuid.UUID) *ScoreVerifiedEvent {
	return &ScoreVerifiedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeScoreVerified, "ScoreRecord", rec.ID),
		SubjectID:       rec.SubjectID,
		IndicatorID:     rec.IndicatorID,
		Period:          rec.Period,
		VerifiedBy:      verifier,
	}
}
